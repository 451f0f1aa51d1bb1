package ir

import (
	"sort"
	"strings"
)

// Formula is a sealed interface over the propositional term types.
// Only Sym, Lit, and App implement it.
//
// The AST is deliberately small: symbols, boolean literals, and connective
// applications. The ledger itself never interprets formulas - it renders
// them into diagnostics and hands them to an oracle. Eval exists so the
// built-in oracle can decide ground propositional validity.
type Formula interface {
	formula() // Sealed - only these types implement it

	// String returns the canonical s-expression rendering.
	// This rendering is the identity of the formula for diagnostics,
	// scripted oracles, and content-addressed hashing.
	String() string
}

// Sym is a propositional variable.
type Sym string

func (Sym) formula() {}

func (s Sym) String() string { return string(s) }

// Lit is a boolean constant: "true" or "false".
type Lit bool

func (Lit) formula() {}

func (l Lit) String() string {
	if l {
		return "true"
	}
	return "false"
}

// Op identifies a connective.
type Op string

const (
	OpNot     Op = "not"
	OpAnd     Op = "and"
	OpOr      Op = "or"
	OpImplies Op = "implies"
	OpIff     Op = "iff"
)

// ValidOps defines the allowed connectives and their arity constraints.
// Arity -1 means variadic with at least one argument.
var ValidOps = map[Op]int{
	OpNot:     1,
	OpAnd:     -1,
	OpOr:      -1,
	OpImplies: 2,
	OpIff:     2,
}

// App is a connective applied to argument formulas.
type App struct {
	Op   Op
	Args []Formula
}

func (App) formula() {}

func (a App) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(string(a.Op))
	for _, arg := range a.Args {
		b.WriteByte(' ')
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Constructors for programmatic formula building. Tests and callers use
// these instead of spelling out App literals.

func Not(f Formula) Formula        { return App{Op: OpNot, Args: []Formula{f}} }
func And(fs ...Formula) Formula    { return App{Op: OpAnd, Args: fs} }
func Or(fs ...Formula) Formula     { return App{Op: OpOr, Args: fs} }
func Implies(p, q Formula) Formula { return App{Op: OpImplies, Args: []Formula{p, q}} }
func Iff(p, q Formula) Formula     { return App{Op: OpIff, Args: []Formula{p, q}} }

// FreeSyms returns the distinct symbols of f in sorted order.
// Sorted output keeps truth-table enumeration and diagnostics deterministic.
func FreeSyms(f Formula) []Sym {
	seen := make(map[Sym]bool)
	collectSyms(f, seen)

	syms := make([]Sym, 0, len(seen))
	for s := range seen {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func collectSyms(f Formula, seen map[Sym]bool) {
	switch v := f.(type) {
	case Sym:
		seen[v] = true
	case App:
		for _, arg := range v.Args {
			collectSyms(arg, seen)
		}
	}
}

// Eval evaluates f under the given assignment. Symbols missing from the
// assignment evaluate to false.
func Eval(f Formula, env map[Sym]bool) bool {
	switch v := f.(type) {
	case Lit:
		return bool(v)
	case Sym:
		return env[v]
	case App:
		switch v.Op {
		case OpNot:
			return !Eval(v.Args[0], env)
		case OpAnd:
			for _, arg := range v.Args {
				if !Eval(arg, env) {
					return false
				}
			}
			return true
		case OpOr:
			for _, arg := range v.Args {
				if Eval(arg, env) {
					return true
				}
			}
			return false
		case OpImplies:
			return !Eval(v.Args[0], env) || Eval(v.Args[1], env)
		case OpIff:
			return Eval(v.Args[0], env) == Eval(v.Args[1], env)
		}
	}
	return false
}
