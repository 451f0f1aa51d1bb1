package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the CLI with captured output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeLedger writes a CUE ledger source to a temp file and returns its path.
func writeLedger(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const passingLedger = `
ledger: {
	name: "demo"
	obligations: [
		{
			name:      "excluded-middle"
			statement: "(or p (not p))"
		},
		{
			name:      "modus-ponens"
			statement: "(implies (and p (implies p q)) q)"
			artifact: {
				classes: ["rewrite"]
			}
		},
	]
}
`

const failingLedger = `
ledger: {
	name: "broken"
	obligations: [
		{
			name:      "sound"
			statement: "(implies p p)"
		},
		{
			name:      "contradiction"
			statement: "(and p (not p))"
		},
		{
			name:      "unreached"
			statement: "true"
		},
	]
}
`

const invalidLedger = `
ledger: {
	name: "dupes"
	obligations: [
		{ name: "a", statement: "true" },
		{ name: "a", statement: "true" },
	]
}
`
