package phc

import "math/big"

// Observer receives notifications of parse and evaluation outcomes. Parsing
// and evaluation never log on their own; an Observer is the way to see them,
// including the failures that Context.IsTrue otherwise discards.
//
// Methods are called synchronously from the goroutine doing the work.
type Observer interface {
	// Parsed is called once per Parse with the source text and either the
	// parsed expression or the error.
	Parsed(src string, e *Expr, err error)
	// Evaluated is called once per evaluation with either the result or the
	// error. The observer must not modify r.
	Evaluated(e *Expr, r *big.Float, err error)
}

type nopObserver struct{}

func (nopObserver) Parsed(string, *Expr, error)        {}
func (nopObserver) Evaluated(*Expr, *big.Float, error) {}
