package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// Scenario defines a conformance test scenario.
// A scenario scripts the oracle's behavior for a ledger, runs the prover
// over it, and asserts on the outcome and the verbose transcript.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden file
	// name, so keep it filename-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Obligations is the ledger, in proof order, with a scripted oracle
	// verdict per obligation.
	Obligations []ObligationStep `yaml:"obligations"`

	// Expect specifies the required aggregate outcome.
	Expect ExpectClause `yaml:"expect"`

	// Emit enables artifact generation after a successful run. Per-step
	// artifact clauses customize flags; steps without one get the defaults
	// (global, enabled, unclassified).
	Emit bool `yaml:"emit,omitempty"`

	// Avoid lists names already taken in the host world, seeding the
	// collision-avoidance set for artifact generation.
	Avoid []string `yaml:"avoid,omitempty"`
}

// ObligationStep is one ledger entry plus its scripted oracle behavior.
type ObligationStep struct {
	// Name is the obligation name.
	Name string `yaml:"name"`

	// Statement is the s-expression formula text.
	Statement string `yaml:"statement"`

	// Hints carries optional strategy hints passed through to the oracle.
	Hints map[string]string `yaml:"hints,omitempty"`

	// Verdict scripts the oracle: "holds", "fails", or "fault". Scripting is
	// per statement, so steps sharing a statement must agree on the verdict.
	Verdict string `yaml:"verdict"`

	// Fault is the oracle error message; required when Verdict is "fault".
	Fault string `yaml:"fault,omitempty"`

	// Artifact customizes generation flags for this obligation.
	Artifact *ArtifactClause `yaml:"artifact,omitempty"`
}

// Verdict values.
const (
	VerdictHolds = "holds"
	VerdictFails = "fails"
	VerdictFault = "fault"
)

// ArtifactClause holds per-obligation artifact flags.
type ArtifactClause struct {
	Local bool `yaml:"local,omitempty"`

	// Enabled defaults to true when the clause is absent; within a clause it
	// must be stated explicitly to disable.
	Enabled *bool `yaml:"enabled,omitempty"`

	Classes []string `yaml:"classes,omitempty"`
}

// ExpectClause specifies the required aggregate outcome.
type ExpectClause struct {
	// Outcome is "pass" or "fail".
	Outcome string `yaml:"outcome"`

	// Diagnostic is the exact expected diagnostic; required when Outcome is
	// "fail", forbidden otherwise.
	Diagnostic string `yaml:"diagnostic,omitempty"`
}

// Expected outcome values.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expect:" vs "expects:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Obligations) == 0 {
		return fmt.Errorf("obligations list is required and must be non-empty")
	}

	// The oracle is scripted per statement rendering, so two steps sharing a
	// statement must script it identically or the later one would silently
	// overwrite the earlier.
	scripted := make(map[string]int)

	for i, step := range s.Obligations {
		if step.Name == "" {
			return fmt.Errorf("obligations[%d]: name is required", i)
		}
		if step.Statement == "" {
			return fmt.Errorf("obligations[%d]: statement is required", i)
		}
		f, err := ir.ParseFormula(step.Statement)
		if err != nil {
			return fmt.Errorf("obligations[%d]: bad statement: %w", i, err)
		}

		key := f.String()
		if prev, ok := scripted[key]; ok {
			if s.Obligations[prev].Verdict != step.Verdict || s.Obligations[prev].Fault != step.Fault {
				return fmt.Errorf("obligations[%d]: statement %s already scripted with verdict %q at obligations[%d]",
					i, key, s.Obligations[prev].Verdict, prev)
			}
		} else {
			scripted[key] = i
		}

		switch step.Verdict {
		case VerdictHolds, VerdictFails:
			if step.Fault != "" {
				return fmt.Errorf("obligations[%d]: fault is only valid with verdict %q", i, VerdictFault)
			}
		case VerdictFault:
			if step.Fault == "" {
				return fmt.Errorf("obligations[%d]: fault message is required for verdict %q", i, VerdictFault)
			}
		default:
			return fmt.Errorf("obligations[%d]: unknown verdict %q", i, step.Verdict)
		}

		if step.Artifact != nil {
			for _, c := range step.Artifact.Classes {
				if !ir.ValidRuleClasses[ir.RuleClass(c)] {
					return fmt.Errorf("obligations[%d].artifact: unknown rule class %q", i, c)
				}
			}
		}
	}

	switch s.Expect.Outcome {
	case OutcomePass:
		if s.Expect.Diagnostic != "" {
			return fmt.Errorf("expect: diagnostic is forbidden when outcome is %q", OutcomePass)
		}
	case OutcomeFail:
		if s.Expect.Diagnostic == "" {
			return fmt.Errorf("expect: diagnostic is required when outcome is %q", OutcomeFail)
		}
	default:
		return fmt.Errorf("expect: unknown outcome %q", s.Expect.Outcome)
	}

	return nil
}
