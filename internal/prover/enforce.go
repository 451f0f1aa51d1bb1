package prover

import (
	"context"
	"errors"

	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/oracle"
)

// FailedError aborts an enclosing operation because an obligation failed.
// Error() is the prover diagnostic verbatim: it already names the obligation
// and carries the full statement text, and wrapping would bury it.
type FailedError struct {
	Diagnostic string
}

func (e *FailedError) Error() string {
	return e.Diagnostic
}

// IsFailedError reports whether err is an obligation failure.
// Uses errors.As to handle wrapped errors.
func IsFailedError(err error) bool {
	var fe *FailedError
	return errors.As(err, &fe)
}

// Enforce proves the ledger and converts any failure into an error.
//
// This is the boundary callers that need all-or-nothing semantics use: on
// success it returns nil with no payload, on the first failure it returns a
// FailedError carrying the diagnostic verbatim. No layer below this one
// raises errors for proof failures.
func Enforce(ctx context.Context, ledger ir.Ledger, orc oracle.Oracle, opts Options) error {
	if outcome := ProveLedger(ctx, ledger, orc, opts); !outcome.OK {
		return &FailedError{Diagnostic: outcome.Diagnostic}
	}
	return nil
}
