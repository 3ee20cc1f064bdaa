package bal

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// actualOneAccount builds an actual list with a single account 0xaa holding
// nonce_changes=[(1,5)].
func actualOneAccount() BlockAccessList {
	a := NewAccountChange(common.HexToAddress("0xaa"))
	a.AddNonceChange(1, 5)
	return BlockAccessList{a}
}

func TestVerifyExactNonceMatch(t *testing.T) {
	exp := NewExpectation().ExpectAccount(common.HexToAddress("0xaa"), AccountExpectation{
		NonceChanges: ExpectValues(NonceChange{TxIndex: 1, PostNonce: 5}),
	})
	if err := Verify(actualOneAccount(), exp); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestVerifyNonceValueMismatch(t *testing.T) {
	exp := NewExpectation().ExpectAccount(common.HexToAddress("0xaa"), AccountExpectation{
		NonceChanges: ExpectValues(NonceChange{TxIndex: 1, PostNonce: 6}),
	})
	err := Verify(actualOneAccount(), exp)
	assertValidationError(t, err, common.HexToAddress("0xaa"), CategoryNonceChanges)
	if !strings.Contains(err.Error(), "(1,6) not found") {
		t.Fatalf("error does not name the unmatched entry: %v", err)
	}
	if !strings.Contains(err.Error(), "(1,5)") {
		t.Fatalf("error does not report the actual list: %v", err)
	}
}

func TestVerifyStorageSubsequence(t *testing.T) {
	addr := common.HexToAddress("0xaa")
	a := NewAccountChange(addr)
	a.AddStorageChange(common.HexToHash("0x01"), 0, common.HexToHash("0x01"))
	a.AddStorageChange(common.HexToHash("0x01"), 2, common.HexToHash("0x02"))
	actual := BlockAccessList{a}

	exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
		StorageChanges: ExpectValues(StorageSlotChanges{
			Slot:    common.HexToHash("0x01"),
			Changes: []StorageValueChange{{TxIndex: 2, PostValue: common.HexToHash("0x02")}},
		}),
	})
	if err := Verify(actual, exp); err != nil {
		t.Fatalf("subsequence storage match failed: %v", err)
	}
}

func TestVerifyStructuralFailureFirst(t *testing.T) {
	list := BlockAccessList{
		NewAccountChange(common.HexToAddress("0xbb")),
		NewAccountChange(common.HexToAddress("0xaa")),
	}
	// The expectation would pass; the ordering violation must win.
	exp := NewExpectation().ExpectAccount(common.HexToAddress("0xbb"), AccountExpectation{})
	assertValidationError(t, Verify(list, exp), common.HexToAddress("0xaa"), CategoryAddress)
}

func TestVerifyPartialByDesign(t *testing.T) {
	// Account 0xbb is present in actual but never declared; it must not be
	// inspected.
	a := NewAccountChange(common.HexToAddress("0xaa"))
	a.AddNonceChange(1, 5)
	b := NewAccountChange(common.HexToAddress("0xbb"))
	b.AddNonceChange(0, 99)
	actual := BlockAccessList{a, b}

	exp := NewExpectation().ExpectAccount(common.HexToAddress("0xaa"), AccountExpectation{
		NonceChanges: ExpectValues(NonceChange{TxIndex: 1, PostNonce: 5}),
	})
	if err := Verify(actual, exp); err != nil {
		t.Fatalf("undeclared account was inspected: %v", err)
	}
}

func TestVerifyNilExpectationOnlyValidates(t *testing.T) {
	if err := Verify(validList(), nil); err != nil {
		t.Fatalf("nil expectation failed on valid list: %v", err)
	}
}

func TestVerifyAccountAbsencePresence(t *testing.T) {
	addr := common.HexToAddress("0xaa")

	t.Run("must be absent but present", func(t *testing.T) {
		exp := NewExpectation().ExpectAbsent(addr)
		err := Verify(actualOneAccount(), exp)
		assertValidationError(t, err, addr, CategoryAccount)
		if !strings.Contains(err.Error(), "unexpected account present") {
			t.Fatalf("unexpected message: %v", err)
		}
	})

	t.Run("must be absent and absent", func(t *testing.T) {
		exp := NewExpectation().ExpectAbsent(common.HexToAddress("0xbb"))
		if err := Verify(actualOneAccount(), exp); err != nil {
			t.Fatalf("absent account failed: %v", err)
		}
	})

	t.Run("expected but missing", func(t *testing.T) {
		missing := common.HexToAddress("0xcc")
		exp := NewExpectation().ExpectAccount(missing, AccountExpectation{})
		err := Verify(actualOneAccount(), exp)
		assertValidationError(t, err, missing, CategoryAccount)
		if !strings.Contains(err.Error(), "expected account missing") {
			t.Fatalf("unexpected message: %v", err)
		}
	})
}

func TestVerifyExplicitlyEmpty(t *testing.T) {
	addr := common.HexToAddress("0xaa")

	empty := NewExpectation().ExpectAccount(addr, AccountExpectation{
		BalanceChanges: ExpectEmpty[BalanceChange](),
	})
	if err := Verify(actualOneAccount(), empty); err != nil {
		t.Fatalf("empty balance expectation failed on account without balance changes: %v", err)
	}

	emptyNonce := NewExpectation().ExpectAccount(addr, AccountExpectation{
		NonceChanges: ExpectEmpty[NonceChange](),
	})
	assertValidationError(t, Verify(actualOneAccount(), emptyNonce), addr, CategoryNonceChanges)
}

func TestVerifySubsequenceLaw(t *testing.T) {
	addr := common.HexToAddress("0xaa")
	a := NewAccountChange(addr)
	a.AddNonceChange(0, 1)
	a.AddNonceChange(1, 2)
	a.AddNonceChange(3, 4)
	a.AddNonceChange(5, 6)
	actual := BlockAccessList{a}

	// Order-preserving sub-list succeeds regardless of interleaved entries.
	exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
		NonceChanges: ExpectValues(
			NonceChange{TxIndex: 0, PostNonce: 1},
			NonceChange{TxIndex: 3, PostNonce: 4},
		),
	})
	if err := Verify(actual, exp); err != nil {
		t.Fatalf("subsequence match failed: %v", err)
	}

	// The same entries out of order must fail.
	reversed := NewExpectation().ExpectAccount(addr, AccountExpectation{
		NonceChanges: ExpectValues(
			NonceChange{TxIndex: 3, PostNonce: 4},
			NonceChange{TxIndex: 0, PostNonce: 1},
		),
	})
	assertValidationError(t, Verify(actual, reversed), addr, CategoryNonceChanges)

	// A missing entry must fail.
	missing := NewExpectation().ExpectAccount(addr, AccountExpectation{
		NonceChanges: ExpectValues(NonceChange{TxIndex: 7, PostNonce: 8}),
	})
	assertValidationError(t, Verify(actual, missing), addr, CategoryNonceChanges)
}

func TestVerifyStorageNesting(t *testing.T) {
	addr := common.HexToAddress("0xaa")
	a := NewAccountChange(addr)
	a.AddStorageChange(common.HexToHash("0x01"), 0, common.HexToHash("0x10"))
	a.AddStorageChange(common.HexToHash("0x02"), 1, common.HexToHash("0x20"))
	a.AddStorageChange(common.HexToHash("0x03"), 2, common.HexToHash("0x30"))
	actual := BlockAccessList{a}

	t.Run("slot presence only", func(t *testing.T) {
		exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
			StorageChanges: ExpectValues(StorageSlotChanges{Slot: common.HexToHash("0x02")}),
		})
		if err := Verify(actual, exp); err != nil {
			t.Fatalf("presence-only slot expectation failed: %v", err)
		}
	})

	t.Run("slot subsequence", func(t *testing.T) {
		exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
			StorageChanges: ExpectValues(
				StorageSlotChanges{Slot: common.HexToHash("0x01")},
				StorageSlotChanges{Slot: common.HexToHash("0x03")},
			),
		})
		if err := Verify(actual, exp); err != nil {
			t.Fatalf("slot subsequence failed: %v", err)
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
			StorageChanges: ExpectValues(StorageSlotChanges{Slot: common.HexToHash("0x04")}),
		})
		assertValidationError(t, Verify(actual, exp), addr, CategoryStorageChanges)
	})

	t.Run("inner change mismatch", func(t *testing.T) {
		exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
			StorageChanges: ExpectValues(StorageSlotChanges{
				Slot:    common.HexToHash("0x01"),
				Changes: []StorageValueChange{{TxIndex: 0, PostValue: common.HexToHash("0xff")}},
			}),
		})
		assertValidationError(t, Verify(actual, exp), addr, CategoryStorageChanges)
	})

	t.Run("slots out of order", func(t *testing.T) {
		exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
			StorageChanges: ExpectValues(
				StorageSlotChanges{Slot: common.HexToHash("0x03")},
				StorageSlotChanges{Slot: common.HexToHash("0x01")},
			),
		})
		assertValidationError(t, Verify(actual, exp), addr, CategoryStorageChanges)
	})
}

func TestVerifyStorageReads(t *testing.T) {
	addr := common.HexToAddress("0xaa")
	a := NewAccountChange(addr)
	a.AddStorageRead(common.HexToHash("0x01"))
	a.AddStorageRead(common.HexToHash("0x02"))
	a.AddStorageRead(common.HexToHash("0x03"))
	actual := BlockAccessList{a}

	exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
		StorageReads: ExpectValues(common.HexToHash("0x01"), common.HexToHash("0x03")),
	})
	if err := Verify(actual, exp); err != nil {
		t.Fatalf("storage read subsequence failed: %v", err)
	}

	miss := NewExpectation().ExpectAccount(addr, AccountExpectation{
		StorageReads: ExpectValues(common.HexToHash("0x04")),
	})
	assertValidationError(t, Verify(actual, miss), addr, CategoryStorageReads)
}

func TestVerifyErrorCarriesAccountContext(t *testing.T) {
	// Field-level failures must surface with the owning account's address.
	addr := common.HexToAddress("0xdd")
	a := NewAccountChange(addr)
	a.AddBalanceChange(0, u(7))
	actual := BlockAccessList{a}

	exp := NewExpectation().ExpectAccount(addr, AccountExpectation{
		BalanceChanges: ExpectValues(BalanceChange{TxIndex: 0, PostBalance: *u(8)}),
	})
	err := Verify(actual, exp)
	assertValidationError(t, err, addr, CategoryBalanceChanges)
	if !strings.Contains(err.Error(), addr.Hex()) {
		t.Fatalf("error does not name the account: %v", err)
	}
}
