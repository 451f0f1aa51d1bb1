// Package harness provides a conformance testing framework for the prover.
//
// Scenarios are YAML files that script an oracle's verdicts for a ledger,
// run the prover over it with a deterministic setup, and assert on the
// aggregate outcome, the verbose transcript, and any generated artifact
// descriptors. Golden files pin the full transcript byte-for-byte.
package harness

import (
	"context"
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/artifact"
	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/prover"
	"github.com/ahmedwaqar/oblige/internal/testutil"
)

// Result captures one scenario execution.
type Result struct {
	ScenarioName string

	// Outcome is the aggregate prover outcome.
	Outcome ir.Outcome

	// Transcript is the verbose-mode notification lines in emission order.
	Transcript []string

	// Names and Artifacts are populated only for successful runs of
	// scenarios with Emit set.
	Names     artifact.NameMap
	Artifacts []ir.Artifact

	// Errors lists expectation mismatches. Empty means the scenario passed.
	Errors []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

// AddError records an expectation mismatch.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes a scenario and returns the result.
//
// Execution is fully deterministic: the oracle is scripted from the
// scenario, the prover runs in verbose mode with a collecting notifier, and
// artifact generation (when enabled) starts from the scenario's avoid set.
//
// Expectation mismatches are reported through Result.Errors, not as a Go
// error; the error return covers malformed scenarios only.
func Run(scenario *Scenario) (*Result, error) {
	ledger, err := buildLedger(scenario)
	if err != nil {
		return nil, err
	}

	orc := buildOracle(scenario, ledger)
	notes := &testutil.Notes{}

	result := &Result{ScenarioName: scenario.Name}
	result.Outcome = prover.ProveLedger(context.Background(), ledger, orc, prover.Options{
		Verbose:  true,
		Notifier: notes,
	})
	result.Transcript = notes.Lines()

	checkExpectation(scenario, result)

	if scenario.Emit && result.Outcome.OK {
		if err := emitArtifacts(scenario, ledger, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func buildLedger(scenario *Scenario) (ir.Ledger, error) {
	ledger := make(ir.Ledger, 0, len(scenario.Obligations))
	for i, step := range scenario.Obligations {
		f, err := ir.ParseFormula(step.Statement)
		if err != nil {
			return nil, fmt.Errorf("obligations[%d]: %w", i, err)
		}

		ob := ir.Obligation{Name: step.Name, Statement: f}
		if len(step.Hints) > 0 {
			ob.Strategy = &ir.Strategy{Hints: step.Hints}
		}
		ledger = append(ledger, ob)
	}
	return ledger, nil
}

func buildOracle(scenario *Scenario, ledger ir.Ledger) *testutil.ScriptedOracle {
	orc := testutil.NewScriptedOracle()
	for i, step := range scenario.Obligations {
		key := ledger[i].Statement.String()
		switch step.Verdict {
		case VerdictHolds:
			orc.SetVerdict(key, true)
		case VerdictFails:
			orc.SetVerdict(key, false)
		case VerdictFault:
			orc.SetFault(key, fmt.Errorf("%s", step.Fault))
		}
	}
	return orc
}

func checkExpectation(scenario *Scenario, result *Result) {
	switch scenario.Expect.Outcome {
	case OutcomePass:
		if !result.Outcome.OK {
			result.AddError("expected pass, got failure: %s", result.Outcome.Diagnostic)
		}
	case OutcomeFail:
		if result.Outcome.OK {
			result.AddError("expected failure %q, got pass", scenario.Expect.Diagnostic)
		} else if result.Outcome.Diagnostic != scenario.Expect.Diagnostic {
			result.AddError("diagnostic mismatch:\n  want: %s\n  got:  %s",
				scenario.Expect.Diagnostic, result.Outcome.Diagnostic)
		}
	}
}

func emitArtifacts(scenario *Scenario, ledger ir.Ledger, result *Result) error {
	policies := make([]artifact.Policy, len(scenario.Obligations))
	for i, step := range scenario.Obligations {
		policies[i] = artifact.Policy{Enabled: true}
		if step.Artifact == nil {
			continue
		}
		policies[i].Local = step.Artifact.Local
		if step.Artifact.Enabled != nil {
			policies[i].Enabled = *step.Artifact.Enabled
		}
		for _, c := range step.Artifact.Classes {
			policies[i].Classes = append(policies[i].Classes, ir.RuleClass(c))
		}
	}

	names, arts, err := artifact.BuildBatch(ledger, policies, artifact.NewNameSet(scenario.Avoid...))
	if err != nil {
		return fmt.Errorf("emit artifacts: %w", err)
	}

	result.Names = names
	result.Artifacts = arts
	return nil
}
