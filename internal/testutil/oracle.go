// Package testutil provides deterministic test doubles for the prover:
// a scripted oracle with call counting and a line-collecting notifier.
package testutil

import (
	"context"
	"sync"

	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/oracle"
)

// ScriptedOracle returns predetermined verdicts keyed by the canonical
// rendering of each statement.
//
// This enables deterministic prover tests and short-circuit verification:
// tests script the verdicts, run the ledger, and then assert on exactly
// which statements were attempted and in what order.
//
// Statements with no scripted verdict and no scripted fault fail (verdict
// false). Faults take precedence over verdicts.
//
// Thread-safety: safe for concurrent use via internal mutex, though the
// prover only ever calls it sequentially.
type ScriptedOracle struct {
	mu       sync.Mutex
	verdicts map[string]bool
	faults   map[string]error
	attempts []string
}

// NewScriptedOracle creates an oracle that answers true for the given
// statement renderings and false for everything else.
func NewScriptedOracle(holds ...string) *ScriptedOracle {
	o := &ScriptedOracle{
		verdicts: make(map[string]bool, len(holds)),
		faults:   make(map[string]error),
	}
	for _, s := range holds {
		o.verdicts[s] = true
	}
	return o
}

// SetVerdict scripts the verdict for a statement rendering.
func (o *ScriptedOracle) SetVerdict(statement string, holds bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.verdicts[statement] = holds
}

// SetFault scripts an oracle fault for a statement rendering.
func (o *ScriptedOracle) SetFault(statement string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.faults[statement] = err
}

// Attempt implements oracle.Oracle.
func (o *ScriptedOracle) Attempt(_ context.Context, statement ir.Formula, _ *ir.Strategy) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := statement.String()
	o.attempts = append(o.attempts, key)

	if err, ok := o.faults[key]; ok {
		return false, err
	}
	return o.verdicts[key], nil
}

// Calls returns how many times Attempt was invoked.
func (o *ScriptedOracle) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.attempts)
}

// Attempted returns the statement renderings in attempt order.
func (o *ScriptedOracle) Attempted() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.attempts))
	copy(out, o.attempts)
	return out
}

// Interface guard.
var _ oracle.Oracle = (*ScriptedOracle)(nil)
