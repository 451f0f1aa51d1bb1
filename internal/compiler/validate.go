package compiler

import (
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// ValidationError is a single semantic problem found in a compiled ledger.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Validation error codes.
const (
	CodeEmptyName       = "L001"
	CodeDuplicateName   = "L002"
	CodeUnknownClass    = "L003"
	CodeDisabledNoClass = "L004"
)

// ValidateLedger checks ledger semantics the CUE schema cannot express:
// non-empty unique obligation names, known rule classes, and the
// enabled/classification precondition. Returns all problems, not just the
// first - validation is a development-feedback path, unlike proving.
func ValidateLedger(c *Compiled) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(c.Obligations))
	for i, ob := range c.Obligations {
		field := fmt.Sprintf("obligations[%d]", i)

		if ob.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "obligation name must be non-empty",
				Code:    CodeEmptyName,
			})
		} else if seen[ob.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate obligation name %q", ob.Name),
				Code:    CodeDuplicateName,
			})
		}
		seen[ob.Name] = true

		for _, class := range c.Classes[i] {
			if !ir.ValidRuleClasses[class] {
				errs = append(errs, ValidationError{
					Field:   field + ".artifact.classes",
					Message: fmt.Sprintf("unknown rule class %q", class),
					Code:    CodeUnknownClass,
				})
			}
		}

		if !c.Enableds[i] && len(c.Classes[i]) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".artifact",
				Message: "disabled artifact with no rule classes would be unreachable",
				Code:    CodeDisabledNoClass,
			})
		}
	}

	return errs
}
