package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

func passScenario() *Scenario {
	return &Scenario{
		Name:        "pass",
		Description: "both hold",
		Obligations: []ObligationStep{
			{Name: "a", Statement: "(or p (not p))", Verdict: VerdictHolds},
			{Name: "b", Statement: "(implies p p)", Verdict: VerdictHolds},
		},
		Expect: ExpectClause{Outcome: OutcomePass},
	}
}

func TestRunAllDischarged(t *testing.T) {
	result, err := Run(passScenario())
	require.NoError(t, err)

	assert.True(t, result.Passed())
	assert.True(t, result.Outcome.OK)
	assert.Equal(t, []string{
		"[attempting a: (or p (not p))]",
		"[a: done]",
		"[attempting b: (implies p p)]",
		"[b: done]",
	}, result.Transcript)
	assert.Empty(t, result.Artifacts)
}

func TestRunShortCircuitsOnFailure(t *testing.T) {
	s := &Scenario{
		Name:        "short-circuit",
		Description: "second fails, third never attempted",
		Obligations: []ObligationStep{
			{Name: "a", Statement: "true", Verdict: VerdictHolds},
			{Name: "b", Statement: "false", Verdict: VerdictFails},
			{Name: "c", Statement: "true", Verdict: VerdictHolds},
		},
		Expect: ExpectClause{
			Outcome:    OutcomeFail,
			Diagnostic: "obligation b does not hold: false",
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Passed())
	assert.False(t, result.Outcome.OK)
	// c never shows up in the transcript
	assert.Equal(t, []string{
		"[attempting a: true]",
		"[a: done]",
		"[attempting b: false]",
		"[b: failed]",
	}, result.Transcript)
}

func TestRunExpectationMismatch(t *testing.T) {
	s := passScenario()
	s.Expect = ExpectClause{Outcome: OutcomeFail, Diagnostic: "obligation a does not hold: (or p (not p))"}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected failure")
}

func TestRunDiagnosticMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "diag-mismatch",
		Description: "wrong expected diagnostic",
		Obligations: []ObligationStep{
			{Name: "a", Statement: "false", Verdict: VerdictFails},
		},
		Expect: ExpectClause{Outcome: OutcomeFail, Diagnostic: "something else"},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "diagnostic mismatch")
}

func TestRunEmitsArtifactsOnPass(t *testing.T) {
	local := true
	s := passScenario()
	s.Emit = true
	s.Avoid = []string{"a"}
	s.Obligations[0].Artifact = &ArtifactClause{Local: local, Classes: []string{"rewrite"}}

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Passed())

	require.Len(t, result.Artifacts, 2)

	// a collides with the host name and gains a marker suffix
	gen, ok := result.Names.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a$", gen)

	assert.Equal(t, "a$", result.Artifacts[0].Name)
	assert.True(t, result.Artifacts[0].Local)
	assert.Equal(t, []ir.RuleClass{"rewrite"}, result.Artifacts[0].Classes)

	assert.Equal(t, "b", result.Artifacts[1].Name)
	assert.False(t, result.Artifacts[1].Local)
	assert.True(t, result.Artifacts[1].Enabled)
}

func TestRunNoArtifactsOnFailure(t *testing.T) {
	s := &Scenario{
		Name:        "no-emit-on-fail",
		Description: "emit requested but run fails",
		Obligations: []ObligationStep{
			{Name: "a", Statement: "false", Verdict: VerdictFails},
		},
		Emit: true,
		Expect: ExpectClause{
			Outcome:    OutcomeFail,
			Diagnostic: "obligation a does not hold: false",
		},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Passed())
	assert.Empty(t, result.Artifacts)
	assert.Empty(t, result.Names)
}

func TestRunDisabledArtifactClause(t *testing.T) {
	disabled := false
	s := passScenario()
	s.Emit = true
	s.Obligations[1].Artifact = &ArtifactClause{Enabled: &disabled, Classes: []string{"linear"}}

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Passed())
	require.Len(t, result.Artifacts, 2)
	assert.False(t, result.Artifacts[1].Enabled)
	assert.Equal(t, []ir.RuleClass{"linear"}, result.Artifacts[1].Classes)
}
