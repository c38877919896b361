package phc

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. The function should set r to its
// result and should not use the value of r otherwise.
type Func interface {
	// Call evaluates the function. The function arguments are passed in
	// invoc, already evaluated in order. The function must set r to its
	// result and should not use the value of r otherwise. invoc has a length
	// for which CanCall returned true. Call may modify the elements of invoc.
	// Arguments outside the function's domain should produce a DomainError.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// Calls with other numbers of arguments fail with a *CallError before
	// Call is reached.
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	"exp":   Monadic(bigfloat.Exp),
	"log":   Monadic(ln),
	"ln":    Monadic(ln),
	"log10": Monadic(log10),
	"sqrt":  Monadic(sqrt),
	"abs":   Monadic((*big.Float).Abs),

	// trig, computed in float64
	"sin":  Real(math.Sin),
	"cos":  Real(math.Cos),
	"tan":  Real(math.Tan),
	"asin": Real(math.Asin),
	"acos": Real(math.Acos),
	"atan": Real(math.Atan),
	"sinh": Real(math.Sinh),
	"cosh": Real(math.Cosh),
	"tanh": Real(math.Tanh),

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// DefaultFuncs returns a copy of the default function registry. It is
// suitable as a base for SetFuncs.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

func ln(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(DomainError{X: new(big.Float).Copy(in), Arg: 1})
	}
	return bigfloat.Log(out, in)
}

func log10(out, in *big.Float) *big.Float {
	ln(out, in)
	in.SetFloat64(10).SetPrec(out.Prec())
	bigfloat.Log(in, in)
	return out.Quo(out, in)
}

func sqrt(out, in *big.Float) *big.Float {
	if in.Sign() < 0 {
		panic(DomainError{X: new(big.Float).Copy(in), Arg: 1})
	}
	return out.Sqrt(in)
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	x := new(big.Float).Copy(in)
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err = p.(error) // panic if not error
		var de DomainError
		switch {
		case errors.As(err, &de):
			err = de
		case errors.As(err, &big.ErrNaN{}):
			err = DomainError{X: x, Arg: 1}
		default:
			panic(p)
		}
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with a
// DomainError or an error of type big.ErrNaN, or one that wraps either.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

type float64fn struct {
	f func(float64) float64
}

func (f float64fn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	x, _ := invoc[0].Float64()
	y := f.f(x)
	if math.IsNaN(y) {
		return DomainError{X: new(big.Float).Copy(invoc[0]), Arg: 1}
	}
	r.SetPrec(ctx.Prec()).SetFloat64(y)
	return nil
}

func (f float64fn) CanCall(n int) bool {
	return n == 1
}

// Real wraps a float64 function of one variable into a Func. The argument is
// rounded to the nearest float64 before the call. A NaN result is reported as
// a DomainError.
func Real(f func(float64) float64) Func {
	return float64fn{f}
}
