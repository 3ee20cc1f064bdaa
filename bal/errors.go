// errors.go defines the two error categories of the package: configuration
// errors raised when an expectation or absent-values record violates its own
// authoring rules, and validation errors raised when real data fails a
// structural invariant or an expectation. Both are terminal for the current
// check; nothing is retried.
package bal

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// FieldCategory identifies which part of an account change an error refers to.
type FieldCategory uint8

const (
	// CategoryAccount covers account-level failures such as a missing or
	// unexpectedly present account.
	CategoryAccount FieldCategory = iota
	// CategoryAddress covers ordering violations of the top-level address
	// sequence.
	CategoryAddress
	// CategoryNonceChanges covers the nonce change list.
	CategoryNonceChanges
	// CategoryBalanceChanges covers the balance change list.
	CategoryBalanceChanges
	// CategoryCodeChanges covers the code change list.
	CategoryCodeChanges
	// CategoryStorageChanges covers the per-slot storage change lists.
	CategoryStorageChanges
	// CategoryStorageReads covers the read-only slot key list.
	CategoryStorageReads
)

// String returns the wire-format field name for the category.
func (c FieldCategory) String() string {
	switch c {
	case CategoryAccount:
		return "account"
	case CategoryAddress:
		return "address"
	case CategoryNonceChanges:
		return "nonce_changes"
	case CategoryBalanceChanges:
		return "balance_changes"
	case CategoryCodeChanges:
		return "code_changes"
	case CategoryStorageChanges:
		return "storage_changes"
	case CategoryStorageReads:
		return "storage_reads"
	default:
		return "unknown"
	}
}

// ValidationError reports the first violation found while checking a block
// access list against the structural invariants, an expectation, or an
// absent-values record. Address names the account the violation belongs to;
// every validation error carries account-level context by the time it
// reaches the caller.
type ValidationError struct {
	Address  common.Address
	Category FieldCategory
	Msg      string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("bal: account %s: %s: %s", e.Address.Hex(), e.Category, e.Msg)
}

// ConfigError reports a malformed expectation or absent-values record. It is
// raised at construction time, before any data is inspected.
type ConfigError struct {
	Msg string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "bal: invalid configuration: " + e.Msg
}

func validationErrorf(cat FieldCategory, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Category: cat, Msg: fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
