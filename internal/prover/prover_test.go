package prover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/testutil"
)

func TestProveObligationSuccess(t *testing.T) {
	orc := testutil.NewScriptedOracle("true")
	ob := ir.Obligation{Name: "trivial", Statement: ir.Lit(true)}

	outcome := ProveObligation(context.Background(), ob, orc, Options{})
	assert.True(t, outcome.OK)
	assert.Empty(t, outcome.Diagnostic)
	assert.Equal(t, 1, orc.Calls())
}

func TestProveObligationFailureDiagnostic(t *testing.T) {
	orc := testutil.NewScriptedOracle() // nothing holds
	ob := ir.Obligation{Name: "inv-holds", Statement: ir.Implies(ir.Sym("p"), ir.Sym("q"))}

	outcome := ProveObligation(context.Background(), ob, orc, Options{})
	assert.False(t, outcome.OK)
	assert.Equal(t, "obligation inv-holds does not hold: (implies p q)", outcome.Diagnostic)
}

func TestProveObligationOracleFaultDiagnostic(t *testing.T) {
	orc := testutil.NewScriptedOracle()
	orc.SetFault("p", errors.New("prover exploded"))
	ob := ir.Obligation{Name: "shaky", Statement: ir.Sym("p")}

	outcome := ProveObligation(context.Background(), ob, orc, Options{})
	assert.False(t, outcome.OK)
	assert.Equal(t, "oracle error prover exploded while proving shaky: p", outcome.Diagnostic)
}

func TestProveObligationVerboseNotifications(t *testing.T) {
	notes := &testutil.Notes{}
	orc := testutil.NewScriptedOracle("true")
	ob := ir.Obligation{Name: "a", Statement: ir.Lit(true)}

	ProveObligation(context.Background(), ob, orc, Options{Verbose: true, Notifier: notes})
	assert.Equal(t, []string{"[attempting a: true]", "[a: done]"}, notes.Lines())
}

func TestProveObligationVerboseFailureAndFault(t *testing.T) {
	notes := &testutil.Notes{}
	orc := testutil.NewScriptedOracle()
	orc.SetFault("q", errors.New("boom"))

	ProveObligation(context.Background(),
		ir.Obligation{Name: "f", Statement: ir.Sym("p")}, orc,
		Options{Verbose: true, Notifier: notes})
	ProveObligation(context.Background(),
		ir.Obligation{Name: "e", Statement: ir.Sym("q")}, orc,
		Options{Verbose: true, Notifier: notes})

	assert.Equal(t, []string{
		"[attempting f: p]",
		"[f: failed]",
		"[attempting e: q]",
		"[e: oracle error]",
	}, notes.Lines())
}

func TestProveObligationQuietByDefault(t *testing.T) {
	notes := &testutil.Notes{}
	orc := testutil.NewScriptedOracle("true")
	ob := ir.Obligation{Name: "a", Statement: ir.Lit(true)}

	ProveObligation(context.Background(), ob, orc, Options{Notifier: notes})
	assert.Empty(t, notes.Lines())
}

func TestProveLedgerAllSucceedAnyOrder(t *testing.T) {
	orc := testutil.NewScriptedOracle("p", "q", "r")
	ledger := ir.Ledger{
		{Name: "a", Statement: ir.Sym("p")},
		{Name: "b", Statement: ir.Sym("q")},
		{Name: "c", Statement: ir.Sym("r")},
	}

	// Order-independence holds when every obligation succeeds
	orders := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}
	for _, order := range orders {
		permuted := make(ir.Ledger, len(ledger))
		for i, j := range order {
			permuted[i] = ledger[j]
		}
		outcome := ProveLedger(context.Background(), permuted, orc, Options{})
		require.True(t, outcome.OK)
		require.Empty(t, outcome.Diagnostic)
	}
}

func TestProveLedgerEmptySucceeds(t *testing.T) {
	orc := testutil.NewScriptedOracle()
	outcome := ProveLedger(context.Background(), ir.Ledger{}, orc, Options{})
	assert.True(t, outcome.OK)
	assert.Equal(t, 0, orc.Calls())
}

func TestProveLedgerShortCircuits(t *testing.T) {
	// Obligation at position 1 fails; position 2 must never be attempted
	orc := testutil.NewScriptedOracle("p", "r")
	ledger := ir.Ledger{
		{Name: "a", Statement: ir.Sym("p")},
		{Name: "b", Statement: ir.Sym("q")},
		{Name: "c", Statement: ir.Sym("r")},
	}

	outcome := ProveLedger(context.Background(), ledger, orc, Options{})
	require.False(t, outcome.OK)

	// Diagnostic equals what obligation b alone would produce
	solo := ProveObligation(context.Background(),
		ledger[1], testutil.NewScriptedOracle(), Options{})
	assert.Equal(t, solo.Diagnostic, outcome.Diagnostic)

	assert.Equal(t, []string{"p", "q"}, orc.Attempted())
}

func TestProveLedgerEndToEndScenario(t *testing.T) {
	// Ledger [a: true, b: false] against an oracle that only accepts "true"
	orc := testutil.NewScriptedOracle("true")
	ledger := ir.Ledger{
		{Name: "a", Statement: ir.Lit(true)},
		{Name: "b", Statement: ir.Lit(false)},
	}

	outcome := ProveLedger(context.Background(), ledger, orc, Options{})
	require.False(t, outcome.OK)
	assert.Contains(t, outcome.Diagnostic, "b")
	assert.Contains(t, outcome.Diagnostic, "false")
	assert.Equal(t, 2, orc.Calls())
}
