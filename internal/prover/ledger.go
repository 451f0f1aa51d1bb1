package prover

import (
	"context"

	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/oracle"
)

// ProveLedger attempts each obligation strictly in order and short-circuits
// at the first failure.
//
// Ordering is significant and caller-controlled: later obligations may
// depend, logically or for search efficiency, on earlier ones having been
// discharged. Evaluation is fully sequential - the oracle is a single
// stateful resource and a failure aborts the remaining attempts.
//
// Returns the aggregate success outcome if every obligation is discharged,
// otherwise the first failure's outcome verbatim. No best-effort collection
// of later failures is performed.
func ProveLedger(ctx context.Context, ledger ir.Ledger, orc oracle.Oracle, opts Options) ir.Outcome {
	for _, ob := range ledger {
		if outcome := ProveObligation(ctx, ob, orc, opts); !outcome.OK {
			return outcome
		}
	}
	return ir.Success()
}
