package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

func compiledFixture() *Compiled {
	return &Compiled{
		Name: "fixture",
		Obligations: ir.Ledger{
			{Name: "a", Statement: ir.Lit(true)},
			{Name: "b", Statement: ir.Sym("p")},
		},
		Locals:   []bool{false, false},
		Enableds: []bool{true, true},
		Classes:  [][]ir.RuleClass{nil, nil},
	}
}

func TestValidateLedgerClean(t *testing.T) {
	assert.Empty(t, ValidateLedger(compiledFixture()))
}

func TestValidateLedgerEmptyName(t *testing.T) {
	c := compiledFixture()
	c.Obligations[0].Name = ""

	errs := ValidateLedger(c)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeEmptyName, errs[0].Code)
	assert.Contains(t, errs[0].Field, "obligations[0]")
}

func TestValidateLedgerDuplicateName(t *testing.T) {
	c := compiledFixture()
	c.Obligations[1].Name = "a"

	errs := ValidateLedger(c)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeDuplicateName, errs[0].Code)
}

func TestValidateLedgerUnknownClass(t *testing.T) {
	c := compiledFixture()
	c.Classes[1] = []ir.RuleClass{"meta"}

	errs := ValidateLedger(c)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeUnknownClass, errs[0].Code)
}

func TestValidateLedgerDisabledNoClass(t *testing.T) {
	c := compiledFixture()
	c.Enableds[0] = false

	errs := ValidateLedger(c)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeDisabledNoClass, errs[0].Code)
}

func TestValidateLedgerCollectsAll(t *testing.T) {
	c := compiledFixture()
	c.Obligations[0].Name = ""
	c.Enableds[1] = false
	c.Classes[1] = []ir.RuleClass{"bogus"}

	errs := ValidateLedger(c)
	// Empty name, unknown class; disabled-no-class does not fire because
	// the class list is non-empty
	require.Len(t, errs, 2)
	codes := []string{errs[0].Code, errs[1].Code}
	assert.Contains(t, codes, CodeEmptyName)
	assert.Contains(t, codes, CodeUnknownClass)
}
