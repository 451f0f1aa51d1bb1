// Package artifact materializes discharged obligations as immutable,
// collision-free artifact descriptors for the caller to register with the
// host system. The package itself registers nothing.
package artifact

import (
	"errors"
	"fmt"
)

// ContractError is a caller contract violation: mismatched policy sequence
// lengths or an invalid enabled/classification combination. These are
// programming errors in the caller, signaled distinctly from proof failures
// and never folded into an obligation diagnostic.
type ContractError struct {
	// Code identifies the violated precondition.
	Code ContractErrorCode

	// Message is a human-readable description.
	Message string

	// Obligation names the offending obligation, when there is one.
	Obligation string
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeLengthMismatch indicates policy sequences of unequal length.
	ErrCodeLengthMismatch ContractErrorCode = "LENGTH_MISMATCH"

	// ErrCodeDisabledUnclassified indicates enabled=false with no rule
	// classes. Such an artifact would be unreachable as a proof rule.
	ErrCodeDisabledUnclassified ContractErrorCode = "DISABLED_UNCLASSIFIED"

	// ErrCodeUnknownClass indicates a rule class outside ValidRuleClasses.
	ErrCodeUnknownClass ContractErrorCode = "UNKNOWN_CLASS"

	// ErrCodeEmptyName indicates an obligation with an empty name.
	ErrCodeEmptyName ContractErrorCode = "EMPTY_NAME"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Obligation != "" {
		return fmt.Sprintf("%s: %s (obligation=%s)", e.Code, e.Message, e.Obligation)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError reports whether err is a contract violation.
// Uses errors.As to handle wrapped errors.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
