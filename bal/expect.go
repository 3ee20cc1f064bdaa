// expect.go defines the expectation records the verification engine compares
// a reported block access list against. Expectations are partial: a field
// left unset is never inspected, an explicitly empty field demands the
// matching actual list be empty, and a field with values demands those
// values appear as an ordered subsequence of the actual list. Which of the
// three the author meant is carried explicitly in the field state rather
// than inferred from which setters were called.
package bal

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// FieldState distinguishes the three meanings an expectation field can have.
type FieldState uint8

const (
	// FieldUnset means the field was never declared and is skipped.
	FieldUnset FieldState = iota
	// FieldEmpty means the actual list must contain no entries.
	FieldEmpty
	// FieldValues means the declared entries must appear as an ordered
	// subsequence of the actual list.
	FieldValues
)

// String returns a human-readable label for the field state.
func (s FieldState) String() string {
	switch s {
	case FieldUnset:
		return "unset"
	case FieldEmpty:
		return "empty"
	case FieldValues:
		return "values"
	default:
		return "unknown"
	}
}

// Field holds one expectation field together with its declaration state.
// The zero value is unset.
type Field[T any] struct {
	state  FieldState
	values []T
}

// ExpectValues declares a field whose entries must appear, in order, as a
// subsequence of the actual list.
func ExpectValues[T any](values ...T) Field[T] {
	return Field[T]{state: FieldValues, values: append([]T(nil), values...)}
}

// ExpectEmpty declares a field whose actual list must be empty.
func ExpectEmpty[T any]() Field[T] {
	return Field[T]{state: FieldEmpty}
}

// State returns how the field was declared.
func (f Field[T]) State() FieldState {
	return f.state
}

// Values returns the declared entries. It is nil unless State is FieldValues.
func (f Field[T]) Values() []T {
	return f.values
}

// AccountExpectation declares partial expectations for one account. Any
// subset of fields may be set; unset fields are never inspected.
type AccountExpectation struct {
	NonceChanges   Field[NonceChange]
	BalanceChanges Field[BalanceChange]
	CodeChanges    Field[CodeChange]
	StorageChanges Field[StorageSlotChanges]
	StorageReads   Field[common.Hash]
}

// accountRule is the tagged per-address variant: either a concrete
// expectation or the assertion that the account must not appear at all.
type accountRule struct {
	mustBeAbsent bool
	expectation  AccountExpectation
}

// Expectation maps addresses to account expectations or must-be-absent
// assertions. Addresses it never mentions are never inspected. An optional
// transform can be attached for deliberately-invalid scenarios; see Modify.
type Expectation struct {
	accounts map[common.Address]accountRule
	modifier Transform
}

// NewExpectation creates an empty expectation.
func NewExpectation() *Expectation {
	return &Expectation{accounts: make(map[common.Address]accountRule)}
}

// ExpectAccount declares expectations for one address, replacing any prior
// declaration for it. It returns the receiver for chaining.
func (e *Expectation) ExpectAccount(addr common.Address, exp AccountExpectation) *Expectation {
	e.accounts[addr] = accountRule{expectation: exp}
	return e
}

// ExpectAbsent declares that the address must not appear in the actual list
// at all, replacing any prior declaration for it.
func (e *Expectation) ExpectAbsent(addr common.Address) *Expectation {
	e.accounts[addr] = accountRule{mustBeAbsent: true}
	return e
}

// Len returns the number of declared addresses.
func (e *Expectation) Len() int {
	return len(e.accounts)
}

// addresses returns the declared addresses in ascending order, so failure
// reporting is deterministic.
func (e *Expectation) addresses() []common.Address {
	addrs := make([]common.Address, 0, len(e.accounts))
	for addr := range e.accounts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})
	return addrs
}

// clone returns a deep copy of the expectation.
func (e *Expectation) clone() *Expectation {
	out := &Expectation{
		accounts: make(map[common.Address]accountRule, len(e.accounts)),
		modifier: e.modifier,
	}
	for addr, rule := range e.accounts {
		out.accounts[addr] = accountRule{
			mustBeAbsent: rule.mustBeAbsent,
			expectation:  rule.expectation.clone(),
		}
	}
	return out
}

func (exp AccountExpectation) clone() AccountExpectation {
	return AccountExpectation{
		NonceChanges:   cloneField(exp.NonceChanges, func(c NonceChange) NonceChange { return c }),
		BalanceChanges: cloneField(exp.BalanceChanges, func(c BalanceChange) BalanceChange { return c }),
		CodeChanges: cloneField(exp.CodeChanges, func(c CodeChange) CodeChange {
			return CodeChange{TxIndex: c.TxIndex, NewCode: append([]byte(nil), c.NewCode...)}
		}),
		StorageChanges: cloneField(exp.StorageChanges, func(s StorageSlotChanges) StorageSlotChanges {
			return StorageSlotChanges{Slot: s.Slot, Changes: append([]StorageValueChange(nil), s.Changes...)}
		}),
		StorageReads: cloneField(exp.StorageReads, func(h common.Hash) common.Hash { return h }),
	}
}

func cloneField[T any](f Field[T], copyValue func(T) T) Field[T] {
	if f.state != FieldValues {
		return f
	}
	values := make([]T, len(f.values))
	for i, v := range f.values {
		values[i] = copyValue(v)
	}
	return Field[T]{state: FieldValues, values: values}
}
