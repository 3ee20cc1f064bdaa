// absent.go implements the negative assertion mode: a record of specific
// entries that must not appear in an account's change lists, while staying
// silent about everything else in them. This is distinct from declaring a
// field explicitly empty on an AccountExpectation, which forbids the whole
// list; an author who wants an empty list must use that form instead, and
// the constructor here rejects the empty-field shape outright.
package bal

import "github.com/ethereum/go-ethereum/common"

// AccountAbsentValues lists forbidden entries for one account. For storage,
// each StorageSlotChanges entry names a slot and the changes forbidden
// within it; StorageReads names forbidden read keys. A field left nil is
// simply not checked.
type AccountAbsentValues struct {
	NonceChanges   []NonceChange
	BalanceChanges []BalanceChange
	CodeChanges    []CodeChange
	StorageChanges []StorageSlotChanges
	StorageReads   []common.Hash
}

// NewAccountAbsentValues validates an absent-values record's authoring
// rules and returns it ready for use with ValidateAbsent. At least one
// field must carry entries, no field may be a non-nil empty list, and every
// forbidden storage slot must name at least one forbidden change. A
// violation is a *ConfigError: it signals a malformed test definition,
// independent of any data, and is raised here, before any verification.
func NewAccountAbsentValues(av AccountAbsentValues) (*AccountAbsentValues, error) {
	if av.NonceChanges != nil && len(av.NonceChanges) == 0 {
		return nil, configErrorf("absent values: nonce_changes explicitly empty; use an empty field expectation instead")
	}
	if av.BalanceChanges != nil && len(av.BalanceChanges) == 0 {
		return nil, configErrorf("absent values: balance_changes explicitly empty; use an empty field expectation instead")
	}
	if av.CodeChanges != nil && len(av.CodeChanges) == 0 {
		return nil, configErrorf("absent values: code_changes explicitly empty; use an empty field expectation instead")
	}
	if av.StorageChanges != nil && len(av.StorageChanges) == 0 {
		return nil, configErrorf("absent values: storage_changes explicitly empty; use an empty field expectation instead")
	}
	if av.StorageReads != nil && len(av.StorageReads) == 0 {
		return nil, configErrorf("absent values: storage_reads explicitly empty; use an empty field expectation instead")
	}
	if len(av.NonceChanges) == 0 && len(av.BalanceChanges) == 0 && len(av.CodeChanges) == 0 &&
		len(av.StorageChanges) == 0 && len(av.StorageReads) == 0 {
		return nil, configErrorf("absent values: no forbidden entries declared")
	}
	for _, sc := range av.StorageChanges {
		if len(sc.Changes) == 0 {
			return nil, configErrorf("absent values: slot %s declares no forbidden changes", sc.Slot.Hex())
		}
	}
	return &av, nil
}

// ValidateAbsent scans an actual account for any forbidden entry and fails
// on the first exact match. Entries not named in the record are ignored.
// The absent record must come from NewAccountAbsentValues.
func ValidateAbsent(actual *AccountChange, absent *AccountAbsentValues) error {
	if absent == nil {
		return nil
	}
	for _, forbidden := range absent.NonceChanges {
		for _, got := range actual.NonceChanges {
			if got == forbidden {
				return presentError(actual.Address, CategoryNonceChanges, "nonce change %v", forbidden)
			}
		}
	}
	for _, forbidden := range absent.BalanceChanges {
		for _, got := range actual.BalanceChanges {
			if got == forbidden {
				return presentError(actual.Address, CategoryBalanceChanges, "balance change %v", forbidden)
			}
		}
	}
	for _, forbidden := range absent.CodeChanges {
		for _, got := range actual.CodeChanges {
			if got.Equal(forbidden) {
				return presentError(actual.Address, CategoryCodeChanges, "code change %v", forbidden)
			}
		}
	}
	for _, forbiddenSlot := range absent.StorageChanges {
		for i := range actual.StorageChanges {
			if actual.StorageChanges[i].Slot != forbiddenSlot.Slot {
				continue
			}
			for _, forbidden := range forbiddenSlot.Changes {
				for _, got := range actual.StorageChanges[i].Changes {
					if got == forbidden {
						return presentError(actual.Address, CategoryStorageChanges,
							"slot %s: storage change %v", forbiddenSlot.Slot.Hex(), forbidden)
					}
				}
			}
		}
	}
	for _, forbidden := range absent.StorageReads {
		for _, got := range actual.StorageReads {
			if got == forbidden {
				return presentError(actual.Address, CategoryStorageReads, "storage read %s", forbidden.Hex())
			}
		}
	}
	return nil
}

func presentError(addr common.Address, cat FieldCategory, format string, args ...interface{}) *ValidationError {
	ve := validationErrorf(cat, "forbidden "+format+" present", args...)
	ve.Address = addr
	return ve
}
