package oracle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// DefaultMaxVars bounds truth-table enumeration. 2^16 assignments is the
// largest search the evaluating oracle will attempt without an explicit
// hint raising the limit.
const DefaultMaxVars = 16

// HintMaxVars is the strategy hint key Eval honors: a decimal variable-count
// limit overriding MaxVars for one attempt.
const HintMaxVars = "max-vars"

// hardMaxVars caps the hint so a ledger file cannot request an unbounded
// search. 2^24 assignments is already tens of seconds; beyond that the
// attempt would appear hung.
const hardMaxVars = 24

// Eval decides propositional validity by exhaustive truth-table search over
// the statement's free symbols. A statement holds iff it evaluates true
// under every assignment.
//
// Exceeding the variable bound is an oracle fault, not a verdict: the
// statement may well be valid, the oracle just refuses the search.
type Eval struct {
	// MaxVars is the variable-count bound. Zero means DefaultMaxVars.
	MaxVars int
}

// NewEval creates an evaluating oracle with the default variable bound.
func NewEval() *Eval {
	return &Eval{MaxVars: DefaultMaxVars}
}

// Attempt implements Oracle.
//
// Honors the "max-vars" strategy hint. Context cancellation is surfaced as
// an oracle fault so a cancelled run is never mistaken for a counter-example.
func (e *Eval) Attempt(ctx context.Context, statement ir.Formula, strategy *ir.Strategy) (bool, error) {
	maxVars := e.MaxVars
	if maxVars <= 0 {
		maxVars = DefaultMaxVars
	}
	if hint := strategy.Hint(HintMaxVars); hint != "" {
		n, err := strconv.Atoi(hint)
		if err != nil || n <= 0 {
			return false, NewError(fmt.Sprintf("invalid %s hint %q", HintMaxVars, hint))
		}
		maxVars = n
	}
	if maxVars > hardMaxVars {
		maxVars = hardMaxVars
	}

	syms := ir.FreeSyms(statement)
	if len(syms) > maxVars {
		return false, NewError(fmt.Sprintf(
			"statement has %d free symbols, limit is %d (raise with the %s hint)",
			len(syms), maxVars, HintMaxVars))
	}

	env := make(map[ir.Sym]bool, len(syms))
	for mask := uint64(0); mask < 1<<uint(len(syms)); mask++ {
		if err := ctx.Err(); err != nil {
			return false, WrapError("proof search cancelled", err)
		}
		for i, s := range syms {
			env[s] = mask&(1<<uint(i)) != 0
		}
		if !ir.Eval(statement, env) {
			return false, nil
		}
	}
	return true, nil
}
