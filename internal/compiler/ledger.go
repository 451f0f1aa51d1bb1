// Package compiler turns CUE ledger definitions into the obligation IR.
// It uses the CUE SDK's Go API directly, not a CLI subprocess.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// CompileError reports a failure to compile a ledger definition, with the
// CUE source position when one is available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compiled is a ledger definition lowered to IR, with the per-obligation
// artifact policy flags as parallel sequences. The sequences line up
// index-for-index with Obligations - exactly the shape the batch artifact
// generator consumes.
type Compiled struct {
	Name        string
	Obligations ir.Ledger
	Locals      []bool
	Enableds    []bool
	Classes     [][]ir.RuleClass
}

// CompileLedger parses a CUE value into a Compiled ledger.
//
// The CUE value should be the ledger struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`ledger: { name: "demo", obligations: [...] }`)
//	c, err := CompileLedger(v.LookupPath(cue.ParsePath("ledger")))
//
// Expected shape:
//
//	ledger: {
//		name: string
//		obligations: [{
//			name:      string
//			statement: string          // s-expression formula
//			hints?:    {[string]: string}
//			artifact?: {
//				local?:   bool         // default false
//				enabled?: bool         // default true
//				classes?: [...string]
//			}
//		}]
//	}
func CompileLedger(v cue.Value) (*Compiled, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &Compiled{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{Field: "name", Message: "ledger name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	c.Name = name

	obsVal := v.LookupPath(cue.ParsePath("obligations"))
	if !obsVal.Exists() {
		return nil, &CompileError{Field: "obligations", Message: "obligations list is required", Pos: v.Pos()}
	}

	iter, err := obsVal.List()
	if err != nil {
		return nil, &CompileError{Field: "obligations", Message: "obligations must be a list", Pos: obsVal.Pos()}
	}

	for idx := 0; iter.Next(); idx++ {
		ob, local, enabled, classes, err := compileObligation(iter.Value(), idx)
		if err != nil {
			return nil, err
		}
		c.Obligations = append(c.Obligations, ob)
		c.Locals = append(c.Locals, local)
		c.Enableds = append(c.Enableds, enabled)
		c.Classes = append(c.Classes, classes)
	}

	return c, nil
}

func compileObligation(v cue.Value, idx int) (ir.Obligation, bool, bool, []ir.RuleClass, error) {
	field := fmt.Sprintf("obligations[%d]", idx)
	fail := func(err error) (ir.Obligation, bool, bool, []ir.RuleClass, error) {
		return ir.Obligation{}, false, false, nil, err
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return fail(&CompileError{Field: field + ".name", Message: "obligation name is required", Pos: v.Pos()})
	}
	name, err := nameVal.String()
	if err != nil {
		return fail(formatCUEError(err))
	}

	stmtVal := v.LookupPath(cue.ParsePath("statement"))
	if !stmtVal.Exists() {
		return fail(&CompileError{Field: field + ".statement", Message: "statement is required", Pos: v.Pos()})
	}
	stmtStr, err := stmtVal.String()
	if err != nil {
		return fail(formatCUEError(err))
	}
	statement, err := ir.ParseFormula(stmtStr)
	if err != nil {
		return fail(&CompileError{
			Field:   field + ".statement",
			Message: err.Error(),
			Pos:     stmtVal.Pos(),
		})
	}

	ob := ir.Obligation{Name: name, Statement: statement}

	if hintsVal := v.LookupPath(cue.ParsePath("hints")); hintsVal.Exists() {
		hints, err := compileHints(hintsVal, field)
		if err != nil {
			return fail(err)
		}
		if len(hints) > 0 {
			ob.Strategy = &ir.Strategy{Hints: hints}
		}
	}

	local, enabled, classes := false, true, []ir.RuleClass(nil)
	if artVal := v.LookupPath(cue.ParsePath("artifact")); artVal.Exists() {
		local, enabled, classes, err = compileArtifactPolicy(artVal, field)
		if err != nil {
			return fail(err)
		}
	}

	return ob, local, enabled, classes, nil
}

func compileHints(v cue.Value, field string) (map[string]string, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, &CompileError{Field: field + ".hints", Message: "hints must be a struct", Pos: v.Pos()}
	}

	hints := make(map[string]string)
	for iter.Next() {
		val, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s.hints.%s", field, iter.Label()),
				Message: "hint values must be strings",
				Pos:     iter.Value().Pos(),
			}
		}
		hints[iter.Label()] = val
	}
	return hints, nil
}

func compileArtifactPolicy(v cue.Value, field string) (bool, bool, []ir.RuleClass, error) {
	local, enabled := false, true

	if lv := v.LookupPath(cue.ParsePath("local")); lv.Exists() {
		b, err := lv.Bool()
		if err != nil {
			return false, false, nil, &CompileError{Field: field + ".artifact.local", Message: "local must be a bool", Pos: lv.Pos()}
		}
		local = b
	}

	if ev := v.LookupPath(cue.ParsePath("enabled")); ev.Exists() {
		b, err := ev.Bool()
		if err != nil {
			return false, false, nil, &CompileError{Field: field + ".artifact.enabled", Message: "enabled must be a bool", Pos: ev.Pos()}
		}
		enabled = b
	}

	var classes []ir.RuleClass
	if cv := v.LookupPath(cue.ParsePath("classes")); cv.Exists() {
		iter, err := cv.List()
		if err != nil {
			return false, false, nil, &CompileError{Field: field + ".artifact.classes", Message: "classes must be a list", Pos: cv.Pos()}
		}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return false, false, nil, &CompileError{Field: field + ".artifact.classes", Message: "classes must be strings", Pos: iter.Value().Pos()}
			}
			classes = append(classes, ir.RuleClass(s))
		}
	}

	return local, enabled, classes, nil
}

// formatCUEError converts a CUE error into a CompileError with position.
func formatCUEError(err error) error {
	var pos token.Pos
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		pos = positions[0]
	}
	return &CompileError{
		Field:   "cue",
		Message: cueerrors.Details(err, nil),
		Pos:     pos,
	}
}
