// Package bal implements Block Access Lists: a canonically ordered manifest
// of every account-level read and write a block's execution performed, keyed
// by transaction index. It provides the data model, the structural validator
// enforcing the canonical ordering invariants, the RLP wire codec with its
// content hash, and an expectation-based verification engine for certifying
// a reported list against caller-declared partial expectations.
package bal

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NonceChange records the nonce an account holds after the transaction at
// TxIndex executed.
type NonceChange struct {
	TxIndex   uint64
	PostNonce uint64
}

// BalanceChange records the balance an account holds after the transaction
// at TxIndex executed.
type BalanceChange struct {
	TxIndex     uint64
	PostBalance uint256.Int
}

// CodeChange records a code deployment or replacement caused by the
// transaction at TxIndex.
type CodeChange struct {
	TxIndex uint64
	NewCode []byte
}

// StorageValueChange records the value a storage slot holds after the
// transaction at TxIndex executed.
type StorageValueChange struct {
	TxIndex   uint64
	PostValue common.Hash
}

// StorageSlotChanges groups all writes to a single storage slot, ordered by
// transaction index.
type StorageSlotChanges struct {
	Slot    common.Hash
	Changes []StorageValueChange
}

// AccountChange collects everything a block's execution did to one account:
// nonce, balance and code writes, storage writes grouped per slot, and the
// slots that were only read. All lists follow the canonical ordering
// enforced by ValidateOrdering.
type AccountChange struct {
	Address        common.Address
	NonceChanges   []NonceChange
	BalanceChanges []BalanceChange
	CodeChanges    []CodeChange
	StorageChanges []StorageSlotChanges
	StorageReads   []common.Hash
}

// BlockAccessList is the ordered sequence of per-account changes for one
// block. The sequence itself is the top-level wire value; there is no
// envelope around it.
type BlockAccessList []AccountChange

// NewAccountChange creates an empty change record for the given address.
func NewAccountChange(addr common.Address) AccountChange {
	return AccountChange{Address: addr}
}

// AddNonceChange appends a nonce change.
func (a *AccountChange) AddNonceChange(txIndex, postNonce uint64) {
	a.NonceChanges = append(a.NonceChanges, NonceChange{TxIndex: txIndex, PostNonce: postNonce})
}

// AddBalanceChange appends a balance change.
func (a *AccountChange) AddBalanceChange(txIndex uint64, postBalance *uint256.Int) {
	a.BalanceChanges = append(a.BalanceChanges, BalanceChange{TxIndex: txIndex, PostBalance: *postBalance})
}

// AddCodeChange appends a code change. The code bytes are copied.
func (a *AccountChange) AddCodeChange(txIndex uint64, newCode []byte) {
	a.CodeChanges = append(a.CodeChanges, CodeChange{TxIndex: txIndex, NewCode: bytes.Clone(newCode)})
}

// AddStorageChange appends a value change to the slot's change list,
// creating the slot entry if this is its first write.
func (a *AccountChange) AddStorageChange(slot common.Hash, txIndex uint64, postValue common.Hash) {
	change := StorageValueChange{TxIndex: txIndex, PostValue: postValue}
	for i := range a.StorageChanges {
		if a.StorageChanges[i].Slot == slot {
			a.StorageChanges[i].Changes = append(a.StorageChanges[i].Changes, change)
			return
		}
	}
	a.StorageChanges = append(a.StorageChanges, StorageSlotChanges{
		Slot:    slot,
		Changes: []StorageValueChange{change},
	})
}

// AddStorageRead appends a read-only slot key.
func (a *AccountChange) AddStorageRead(slot common.Hash) {
	a.StorageReads = append(a.StorageReads, slot)
}

// String renders the change as a (tx_index,value) pair for error messages.
func (c NonceChange) String() string {
	return fmt.Sprintf("(%d,%d)", c.TxIndex, c.PostNonce)
}

// String renders the change as a (tx_index,value) pair for error messages.
func (c BalanceChange) String() string {
	return fmt.Sprintf("(%d,%s)", c.TxIndex, c.PostBalance.Dec())
}

// String renders the change as a (tx_index,code) pair for error messages.
func (c CodeChange) String() string {
	return fmt.Sprintf("(%d,0x%x)", c.TxIndex, c.NewCode)
}

// String renders the change as a (tx_index,value) pair for error messages.
func (c StorageValueChange) String() string {
	return fmt.Sprintf("(%d,%s)", c.TxIndex, c.PostValue.Hex())
}

// Equal reports whether two code changes carry the same index and bytes.
func (c CodeChange) Equal(other CodeChange) bool {
	return c.TxIndex == other.TxIndex && bytes.Equal(c.NewCode, other.NewCode)
}

// Equal reports whether two slot-change groups are identical.
func (s StorageSlotChanges) Equal(other StorageSlotChanges) bool {
	if s.Slot != other.Slot || len(s.Changes) != len(other.Changes) {
		return false
	}
	for i := range s.Changes {
		if s.Changes[i] != other.Changes[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two account change records are identical.
func (a AccountChange) Equal(other AccountChange) bool {
	if a.Address != other.Address ||
		len(a.NonceChanges) != len(other.NonceChanges) ||
		len(a.BalanceChanges) != len(other.BalanceChanges) ||
		len(a.CodeChanges) != len(other.CodeChanges) ||
		len(a.StorageChanges) != len(other.StorageChanges) ||
		len(a.StorageReads) != len(other.StorageReads) {
		return false
	}
	for i := range a.NonceChanges {
		if a.NonceChanges[i] != other.NonceChanges[i] {
			return false
		}
	}
	for i := range a.BalanceChanges {
		if a.BalanceChanges[i] != other.BalanceChanges[i] {
			return false
		}
	}
	for i := range a.CodeChanges {
		if !a.CodeChanges[i].Equal(other.CodeChanges[i]) {
			return false
		}
	}
	for i := range a.StorageChanges {
		if !a.StorageChanges[i].Equal(other.StorageChanges[i]) {
			return false
		}
	}
	for i := range a.StorageReads {
		if a.StorageReads[i] != other.StorageReads[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two block access lists are identical.
func (l BlockAccessList) Equal(other BlockAccessList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the list. The copy shares no memory with the
// original, so transforms built on it cannot mutate their input.
func (l BlockAccessList) Copy() BlockAccessList {
	if l == nil {
		return nil
	}
	out := make(BlockAccessList, len(l))
	for i := range l {
		out[i] = l[i].copy()
	}
	return out
}

func (a AccountChange) copy() AccountChange {
	out := AccountChange{Address: a.Address}
	if a.NonceChanges != nil {
		out.NonceChanges = append([]NonceChange(nil), a.NonceChanges...)
	}
	if a.BalanceChanges != nil {
		out.BalanceChanges = append([]BalanceChange(nil), a.BalanceChanges...)
	}
	if a.CodeChanges != nil {
		out.CodeChanges = make([]CodeChange, len(a.CodeChanges))
		for i, c := range a.CodeChanges {
			out.CodeChanges[i] = CodeChange{TxIndex: c.TxIndex, NewCode: bytes.Clone(c.NewCode)}
		}
	}
	if a.StorageChanges != nil {
		out.StorageChanges = make([]StorageSlotChanges, len(a.StorageChanges))
		for i, s := range a.StorageChanges {
			out.StorageChanges[i] = StorageSlotChanges{
				Slot:    s.Slot,
				Changes: append([]StorageValueChange(nil), s.Changes...),
			}
		}
	}
	if a.StorageReads != nil {
		out.StorageReads = append([]common.Hash(nil), a.StorageReads...)
	}
	return out
}

func (c NonceChange) txIndex() uint64        { return c.TxIndex }
func (c BalanceChange) txIndex() uint64      { return c.TxIndex }
func (c CodeChange) txIndex() uint64         { return c.TxIndex }
func (c StorageValueChange) txIndex() uint64 { return c.TxIndex }
