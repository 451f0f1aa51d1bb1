package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

func TestScriptedOracleVerdicts(t *testing.T) {
	orc := NewScriptedOracle("true", "(or p (not p))")

	holds, err := orc.Attempt(context.Background(), ir.Lit(true), nil)
	require.NoError(t, err)
	assert.True(t, holds)

	holds, err = orc.Attempt(context.Background(), ir.Sym("unscripted"), nil)
	require.NoError(t, err)
	assert.False(t, holds)

	assert.Equal(t, 2, orc.Calls())
	assert.Equal(t, []string{"true", "unscripted"}, orc.Attempted())
}

func TestScriptedOracleFaultPrecedence(t *testing.T) {
	orc := NewScriptedOracle("p")
	fault := errors.New("prover crashed")
	orc.SetFault("p", fault)

	_, err := orc.Attempt(context.Background(), ir.Sym("p"), nil)
	assert.ErrorIs(t, err, fault)
}

func TestNotesCollectsInOrder(t *testing.T) {
	n := &Notes{}
	n.Notify("first")
	n.Notify("second")
	assert.Equal(t, []string{"first", "second"}, n.Lines())

	// Lines returns a copy
	n.Lines()[0] = "mutated"
	assert.Equal(t, "first", n.Lines()[0])
}
