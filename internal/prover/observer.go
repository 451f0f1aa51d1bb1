package prover

import "github.com/ahmedwaqar/oblige/internal/ir"

// Observer receives the outcome of every proof attempt, successes and
// failures alike, in attempt order. Observers never influence outcomes;
// a journal recorder is the typical implementation.
type Observer interface {
	Observe(ob ir.Obligation, outcome ir.Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ob ir.Obligation, outcome ir.Outcome)

func (f ObserverFunc) Observe(ob ir.Obligation, outcome ir.Outcome) {
	f(ob, outcome)
}
