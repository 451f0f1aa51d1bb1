// Package oracle defines the proof oracle capability consumed by the prover.
//
// The oracle is the ledger's only window onto a proof engine. It is treated
// as a single, globally-ordered resource: the prover never retries, never
// applies timeouts, and never invokes it concurrently. Any such policy
// belongs to the oracle implementation itself.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// Oracle decides whether a statement is provable.
//
// Attempt returns (true, nil) when the statement holds, (false, nil) when it
// does not, and (false, err) when the oracle itself faulted. A fault is never
// a verdict - callers must report it distinctly from a logical
// counter-example.
//
// Implemented by Eval (production) and testutil.ScriptedOracle (tests).
type Oracle interface {
	Attempt(ctx context.Context, statement ir.Formula, strategy *ir.Strategy) (bool, error)
}

// Error is an oracle fault: the proof engine failed to produce a verdict.
type Error struct {
	Reason string
	Err    error // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an oracle fault with the given reason.
func NewError(reason string) *Error {
	return &Error{Reason: reason}
}

// WrapError wraps an underlying error as an oracle fault.
func WrapError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// IsOracleError reports whether err is an oracle fault.
// Uses errors.As to handle wrapped errors.
func IsOracleError(err error) bool {
	var oe *Error
	return errors.As(err, &oe)
}
