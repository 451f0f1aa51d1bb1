package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGoldenScenarios runs every scenario under testdata/scenarios and pins
// its snapshot against the matching golden file.
func TestGoldenScenarios(t *testing.T) {
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata/scenarios", entry.Name()))
			require.NoError(t, err)
			require.Equal(t, name, scenario.Name, "scenario name must match its file name")

			require.NoError(t, RunWithGolden(t, scenario))

			// Golden scenarios are also expected to pass their own
			// expectation clauses
			result, err := Run(scenario)
			require.NoError(t, err)
			require.Empty(t, result.Errors)
		})
	}
}
