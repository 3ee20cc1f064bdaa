// verify.go implements the verification engine: structural validation of the
// reported list, presence and absence checks for every declared address, and
// per-field subsequence comparison of the declared entries against the
// actual lists. Field-level failures are re-wrapped with the owning
// account's address before they surface, so no error reaches the caller
// without account-level context.
package bal

import (
	"github.com/ethereum/go-ethereum/common"
)

// Verify certifies an actual block access list against a set of declared
// expectations. It runs in four steps: validate the canonical ordering of
// actual, index actual by address, check each declared address for presence
// or required absence, then compare the declared fields. Addresses present
// in actual but never declared are not inspected. The first failure is
// terminal.
func Verify(actual BlockAccessList, expected *Expectation) error {
	if err := ValidateOrdering(actual); err != nil {
		return err
	}
	if expected == nil {
		return nil
	}
	index := make(map[common.Address]*AccountChange, len(actual))
	for i := range actual {
		index[actual[i].Address] = &actual[i]
	}
	for _, addr := range expected.addresses() {
		rule := expected.accounts[addr]
		acct, present := index[addr]
		if rule.mustBeAbsent {
			if present {
				return &ValidationError{
					Address:  addr,
					Category: CategoryAccount,
					Msg:      "unexpected account present",
				}
			}
			continue
		}
		if !present {
			return &ValidationError{
				Address:  addr,
				Category: CategoryAccount,
				Msg:      "expected account missing",
			}
		}
		if ve := verifyAccount(acct, rule.expectation); ve != nil {
			ve.Address = addr
			return ve
		}
	}
	return nil
}

// verifyAccount compares every declared field of one expectation against the
// actual account. Returned errors carry category and detail but no address;
// the caller fills that in.
func verifyAccount(actual *AccountChange, exp AccountExpectation) *ValidationError {
	if ve := compareField(CategoryNonceChanges, "nonce change", exp.NonceChanges,
		actual.NonceChanges, func(a, b NonceChange) bool { return a == b }); ve != nil {
		return ve
	}
	if ve := compareField(CategoryBalanceChanges, "balance change", exp.BalanceChanges,
		actual.BalanceChanges, func(a, b BalanceChange) bool { return a == b }); ve != nil {
		return ve
	}
	if ve := compareField(CategoryCodeChanges, "code change", exp.CodeChanges,
		actual.CodeChanges, CodeChange.Equal); ve != nil {
		return ve
	}
	if ve := compareStorageChanges(exp.StorageChanges, actual.StorageChanges); ve != nil {
		return ve
	}
	if ve := compareField(CategoryStorageReads, "storage read", exp.StorageReads,
		actual.StorageReads, func(a, b common.Hash) bool { return a == b }); ve != nil {
		return ve
	}
	return nil
}

// compareField applies the three-way field semantics: unset is skipped,
// empty demands an empty actual list, and values demands an ordered
// subsequence match. On a failed match the error reports the unmatched
// entry together with the full actual list.
func compareField[T any](cat FieldCategory, kind string, f Field[T], actual []T, eq func(a, b T) bool) *ValidationError {
	switch f.state {
	case FieldUnset:
		return nil
	case FieldEmpty:
		if len(actual) != 0 {
			return validationErrorf(cat, "expected no %ss, found %d", kind, len(actual))
		}
		return nil
	}
	if i := firstUnmatched(f.values, actual, eq); i >= 0 {
		return validationErrorf(cat, "%s %v not found in actual %v", kind, f.values[i], actual)
	}
	return nil
}

// firstUnmatched scans actual once with a forward cursor, consuming one
// match per expected entry. It returns the index of the first expected entry
// that cannot be matched in order, or -1 if every entry matched.
func firstUnmatched[T any](expected, actual []T, eq func(a, b T) bool) int {
	cursor := 0
	for i := range expected {
		found := false
		for cursor < len(actual) {
			match := eq(expected[i], actual[cursor])
			cursor++
			if match {
				found = true
				break
			}
		}
		if !found {
			return i
		}
	}
	return -1
}

// compareStorageChanges nests the subsequence algorithm one level: expected
// slots must appear, in order, as a subsequence of the actual slots matched
// by key; within each matched slot whose expected change list is non-empty,
// the changes must appear as a subsequence matched by (tx_index, value). An
// expected slot with no changes only asserts the slot's presence.
func compareStorageChanges(f Field[StorageSlotChanges], actual []StorageSlotChanges) *ValidationError {
	switch f.state {
	case FieldUnset:
		return nil
	case FieldEmpty:
		if len(actual) != 0 {
			return validationErrorf(CategoryStorageChanges, "expected no storage changes, found %d slots", len(actual))
		}
		return nil
	}
	cursor := 0
	for _, want := range f.values {
		matched := -1
		for cursor < len(actual) {
			i := cursor
			cursor++
			if actual[i].Slot == want.Slot {
				matched = i
				break
			}
		}
		if matched < 0 {
			return validationErrorf(CategoryStorageChanges, "slot %s not found in actual storage changes", want.Slot.Hex())
		}
		if len(want.Changes) == 0 {
			continue
		}
		got := actual[matched].Changes
		eq := func(a, b StorageValueChange) bool { return a == b }
		if i := firstUnmatched(want.Changes, got, eq); i >= 0 {
			return validationErrorf(CategoryStorageChanges,
				"slot %s: storage change %v not found in actual %v", want.Slot.Hex(), want.Changes[i], got)
		}
	}
	return nil
}
