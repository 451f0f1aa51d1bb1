package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

func compileString(t *testing.T, src string) (*Compiled, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileLedger(v.LookupPath(cue.ParsePath("ledger")))
}

func TestCompileLedgerFull(t *testing.T) {
	src := `
ledger: {
	name: "demo"
	obligations: [
		{
			name:      "inverse-holds"
			statement: "(implies p (not (not p)))"
			hints: { "max-vars": "8" }
			artifact: {
				local:   true
				classes: ["rewrite", "linear"]
			}
		},
		{
			name:      "excluded-middle"
			statement: "(or p (not p))"
		},
	]
}
`
	c, err := compileString(t, src)
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Name)
	require.Len(t, c.Obligations, 2)

	first := c.Obligations[0]
	assert.Equal(t, "inverse-holds", first.Name)
	assert.Equal(t, "(implies p (not (not p)))", first.Statement.String())
	require.NotNil(t, first.Strategy)
	assert.Equal(t, "8", first.Strategy.Hint("max-vars"))
	assert.True(t, c.Locals[0])
	assert.True(t, c.Enableds[0]) // defaults to enabled
	assert.Equal(t, []ir.RuleClass{"rewrite", "linear"}, c.Classes[0])

	second := c.Obligations[1]
	assert.Equal(t, "excluded-middle", second.Name)
	assert.Nil(t, second.Strategy)
	assert.False(t, c.Locals[1])
	assert.True(t, c.Enableds[1])
	assert.Empty(t, c.Classes[1])
}

func TestCompileLedgerMissingName(t *testing.T) {
	src := `ledger: { obligations: [] }`
	_, err := compileString(t, src)
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "name", cerr.Field)
}

func TestCompileLedgerMissingStatement(t *testing.T) {
	src := `
ledger: {
	name: "demo"
	obligations: [{ name: "a" }]
}
`
	_, err := compileString(t, src)
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "obligations[0].statement", cerr.Field)
}

func TestCompileLedgerBadFormula(t *testing.T) {
	src := `
ledger: {
	name: "demo"
	obligations: [{ name: "a", statement: "(implies p" }]
}
`
	_, err := compileString(t, src)
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "obligations[0].statement", cerr.Field)
	assert.Contains(t, cerr.Message, "unclosed")
}

func TestCompileLedgerDisabledArtifact(t *testing.T) {
	src := `
ledger: {
	name: "demo"
	obligations: [{
		name:      "a"
		statement: "true"
		artifact: { enabled: false, classes: ["rewrite"] }
	}]
}
`
	c, err := compileString(t, src)
	require.NoError(t, err)
	assert.False(t, c.Enableds[0])
	assert.Equal(t, []ir.RuleClass{"rewrite"}, c.Classes[0])
}
