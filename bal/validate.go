// validate.go implements the structural validator. Two semantically equal
// block access lists must serialize byte-identically, so the canonical
// ordering checked here is a correctness requirement of the wire format,
// not a style preference. Violations are reported, never repaired.
package bal

import "bytes"

// txIndexed is satisfied by every change record kind.
type txIndexed interface {
	txIndex() uint64
}

// firstTxOrderBreak returns the index of the first element whose tx index
// fails to strictly ascend over its predecessor, or -1 if the list is in
// canonical order. Strict ascent also rules out duplicate indices.
func firstTxOrderBreak[T txIndexed](items []T) int {
	for i := 1; i < len(items); i++ {
		if items[i].txIndex() <= items[i-1].txIndex() {
			return i
		}
	}
	return -1
}

// ValidateOrdering walks a block access list and asserts every canonical
// ordering invariant: addresses strictly ascending, tx indices strictly
// ascending within each change category, storage slots strictly ascending,
// tx indices strictly ascending within each slot, and read keys strictly
// ascending. It fails fast on the first violation; the returned
// *ValidationError names the offending account and the two colliding
// values. A nil or empty list is valid.
func ValidateOrdering(list BlockAccessList) error {
	for i := range list {
		acct := &list[i]
		if i > 0 {
			prev := list[i-1].Address
			if bytes.Compare(prev[:], acct.Address[:]) >= 0 {
				ve := validationErrorf(CategoryAddress,
					"address %s does not strictly ascend over %s", acct.Address.Hex(), prev.Hex())
				ve.Address = acct.Address
				return ve
			}
		}
		if ve := validateAccountOrdering(acct); ve != nil {
			ve.Address = acct.Address
			return ve
		}
	}
	return nil
}

func validateAccountOrdering(a *AccountChange) *ValidationError {
	if i := firstTxOrderBreak(a.NonceChanges); i >= 0 {
		return validationErrorf(CategoryNonceChanges,
			"tx index not strictly ascending: %s after %s", a.NonceChanges[i], a.NonceChanges[i-1])
	}
	if i := firstTxOrderBreak(a.BalanceChanges); i >= 0 {
		return validationErrorf(CategoryBalanceChanges,
			"tx index not strictly ascending: %s after %s", a.BalanceChanges[i], a.BalanceChanges[i-1])
	}
	if i := firstTxOrderBreak(a.CodeChanges); i >= 0 {
		return validationErrorf(CategoryCodeChanges,
			"tx index not strictly ascending: %s after %s", a.CodeChanges[i], a.CodeChanges[i-1])
	}
	for i := range a.StorageChanges {
		slot := &a.StorageChanges[i]
		if i > 0 {
			prev := a.StorageChanges[i-1].Slot
			if bytes.Compare(prev[:], slot.Slot[:]) >= 0 {
				return validationErrorf(CategoryStorageChanges,
					"slot %s does not strictly ascend over %s", slot.Slot.Hex(), prev.Hex())
			}
		}
		if j := firstTxOrderBreak(slot.Changes); j >= 0 {
			return validationErrorf(CategoryStorageChanges,
				"slot %s: tx index not strictly ascending: %s after %s",
				slot.Slot.Hex(), slot.Changes[j], slot.Changes[j-1])
		}
	}
	for i := 1; i < len(a.StorageReads); i++ {
		prev, cur := a.StorageReads[i-1], a.StorageReads[i]
		if bytes.Compare(prev[:], cur[:]) >= 0 {
			return validationErrorf(CategoryStorageReads,
				"read key %s does not strictly ascend over %s", cur.Hex(), prev.Hex())
		}
	}
	return nil
}
