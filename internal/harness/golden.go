package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// snapshot converts a result to a map for canonical JSON serialization.
// Canonical form keeps golden files byte-stable across runs and platforms.
func snapshot(result *Result) map[string]any {
	transcript := make([]any, len(result.Transcript))
	for i, line := range result.Transcript {
		transcript[i] = line
	}

	m := map[string]any{
		"scenario_name": result.ScenarioName,
		"outcome": map[string]any{
			"ok":         result.Outcome.OK,
			"diagnostic": result.Outcome.Diagnostic,
		},
		"transcript": transcript,
	}

	if len(result.Names) > 0 {
		names := make([]any, len(result.Names))
		for i, p := range result.Names {
			names[i] = map[string]any{
				"original":  p.Original,
				"generated": p.Generated,
			}
		}
		m["names"] = names
	}

	if len(result.Artifacts) > 0 {
		arts := make([]any, len(result.Artifacts))
		for i, a := range result.Artifacts {
			arts[i] = map[string]any{
				"name":      a.Name,
				"source":    a.Source,
				"statement": a.Statement.String(),
				"local":     a.Local,
				"enabled":   a.Enabled,
				"classes":   a.Classes,
			}
		}
		m["artifacts"] = arts
	}

	return m
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario itself fails to execute; snapshot drift is
// reported as a test failure via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := ir.MarshalCanonical(snapshot(result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
