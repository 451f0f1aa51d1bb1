package artifact

import (
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// Policy holds the per-obligation artifact generation flags.
type Policy struct {
	// Local scopes the artifact's effect to the enclosing block.
	Local bool

	// Enabled selects whether the artifact is active as a proof rule on
	// creation. MUST be true when Classes is empty.
	Enabled bool

	// Classes classify the artifact as kinds of proof rules.
	Classes []ir.RuleClass
}

// Validate checks the enabled/classification precondition and that every
// class is known. Violations are contract errors, not runtime failures.
func (p Policy) Validate(obligation string) error {
	if !p.Enabled && len(p.Classes) == 0 {
		return &ContractError{
			Code:       ErrCodeDisabledUnclassified,
			Message:    "disabled artifact with no rule classes would be unreachable",
			Obligation: obligation,
		}
	}
	for _, c := range p.Classes {
		if !ir.ValidRuleClasses[c] {
			return &ContractError{
				Code:       ErrCodeUnknownClass,
				Message:    fmt.Sprintf("unknown rule class %q", c),
				Obligation: obligation,
			}
		}
	}
	return nil
}

// Build produces the artifact descriptor for one discharged obligation.
//
// The generated name starts from the obligation's own name and gains marker
// suffixes until it misses avoid. Build only constructs the descriptor -
// submitting it to the host is the caller's job, which is also why Build
// takes no context and performs no I/O.
func Build(ob ir.Obligation, pol Policy, avoid NameSet) (string, ir.Artifact, error) {
	if ob.Name == "" {
		return "", ir.Artifact{}, &ContractError{
			Code:    ErrCodeEmptyName,
			Message: "obligation name must be non-empty",
		}
	}
	if err := pol.Validate(ob.Name); err != nil {
		return "", ir.Artifact{}, err
	}

	name := FreshName(ob.Name, avoid)
	art := ir.Artifact{
		Name:      name,
		Source:    ob.Name,
		Statement: ob.Statement,
		Local:     pol.Local,
		Enabled:   pol.Enabled,
		Classes:   pol.Classes,
	}
	return name, art, nil
}
