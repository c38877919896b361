package phc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// TruthEpsilon is the magnitude a value must exceed for IsTrue to consider it
// true.
const TruthEpsilon = 1e-9

var truthEpsilon = big.NewFloat(TruthEpsilon)

// Context is a context for evaluating expressions. It holds the precision of
// calculations, the named-function registry, and evaluation limits. It is not
// safe to use a Context concurrently.
type Context struct {
	stack    []*big.Float
	nums     map[string]*big.Float
	funcs    map[string]Func
	scope    *Scope
	prec     uint
	depth    int
	maxdepth int
	obs      Observer
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	precopt  uint
	depthopt int
	obsopt   struct {
		obs Observer
	}
)

func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (precopt) ctxOption()  {}
func (depthopt) ctxOption() {}
func (obsopt) ctxOption()   {}

// SetFunc sets a function in the context's registry. Names are
// case-insensitive. To remove a function, pass nil for fn.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs sets a group of functions in the context's registry. To remove any
// function, set it to nil.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// DisableDefaultFuncs removes all default functions from the context's
// registry. Functions set by later options remain.
func DisableDefaultFuncs() ContextOption {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// DefaultPrec is the precision of calculations in bits when none is given.
const DefaultPrec = 64

// Prec sets the precision of calculations in bits. 0 selects DefaultPrec.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// MaxDepth limits the depth of evaluated expression trees. Evaluating a
// deeper tree fails with a *DepthError. Values less than 1 select
// DefaultMaxDepth.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// Observe reports the outcome of every evaluation to obs. A nil obs disables
// reporting.
func Observe(obs Observer) ContextOption {
	return obsopt{obs}
}

// NewContext creates a new evaluation context with the default functions. If
// no precision is given, the default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		nums:     make(map[string]*big.Float),
		funcs:    globalfuncs,
		prec:     DefaultPrec,
		maxdepth: DefaultMaxDepth,
		obs:      nopObserver{},
	}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression with variables from scope and returns the
// result. Operands and arguments are evaluated eagerly, left to right. The
// first error, e.g. a missing variable or an argument outside a function's
// domain, aborts the evaluation.
func (ctx *Context) Eval(e *Expr, scope *Scope) (*big.Float, error) {
	if len(ctx.stack) != 0 {
		panic("phc: Eval during Eval")
	}
	ctx.scope = scope
	defer func() {
		ctx.stack = ctx.stack[:0]
		ctx.scope = nil
		ctx.depth = 0
	}()
	var r *big.Float
	err := e.n.eval(ctx)
	if err == nil {
		if len(ctx.stack) != 1 {
			panic("phc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
		}
		r = new(big.Float).Copy(ctx.stack[0])
	}
	ctx.obs.Evaluated(e, r, err)
	return r, err
}

// EvalFloat64 evaluates an expression and returns the result rounded to the
// nearest float64.
func (ctx *Context) EvalFloat64(e *Expr, scope *Scope) (float64, error) {
	r, err := ctx.Eval(e, scope)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

// IsTrue evaluates an expression and reports whether it succeeded with a
// result of magnitude greater than TruthEpsilon. Any evaluation error makes
// the result false; use Eval to distinguish false from failed.
func (ctx *Context) IsTrue(e *Expr, scope *Scope) bool {
	r, err := ctx.Eval(e, scope)
	if err != nil {
		return false
	}
	return r.Abs(r).Cmp(truthEpsilon) > 0
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Funcs returns the sorted names of the functions in the context's registry.
func (ctx *Context) Funcs() []string {
	r := make([]string, 0, len(ctx.funcs))
	for k, v := range ctx.funcs {
		if v != nil {
			r = append(r, k)
		}
	}
	sortstrs(r)
	return r
}

// Clone creates a copy of a context and applies options to it. The returned
// context is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:    make([]*big.Float, 0, cap(ctx.stack)),
		nums:     make(map[string]*big.Float, len(ctx.nums)),
		funcs:    make(map[string]Func, len(ctx.funcs)),
		prec:     ctx.prec,
		maxdepth: ctx.maxdepth,
		obs:      ctx.obs,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			if n.prec == 0 {
				n.prec = DefaultPrec
			}
			break
		}
	}
	// Copy numbers only if the new precision is no higher than the old, so
	// that we always use the precision we need.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case funcopt:
			n.setfunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				n.setfunc(k, v)
			}
		case precopt:
			// Already done. Do nothing.
		case depthopt:
			n.maxdepth = int(opt)
			if n.maxdepth < 1 {
				n.maxdepth = DefaultMaxDepth
			}
		case obsopt:
			n.obs = opt.obs
			if n.obs == nil {
				n.obs = nopObserver{}
			}
		default:
			panic("phc: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) setfunc(name string, fn Func) {
	name = strings.ToLower(name)
	if fn == nil {
		delete(ctx.funcs, name)
		return
	}
	ctx.funcs[name] = fn
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	t := s
	if t == "∞" {
		t = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(t, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// N.B. t is non-empty, otherwise we couldn't overflow.
		r = new(big.Float).SetInf(t[0] == '-')
	default:
		panic("phc: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	if ctx.depth >= ctx.maxdepth {
		return &DepthError{Max: ctx.maxdepth}
	}
	ctx.depth++
	err := n.evalkind(ctx)
	ctx.depth--
	return err
}

func (n *node) evalkind(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeName:
		v := ctx.scope.get(n.name)
		if v == nil {
			return &NameError{Name: n.name}
		}
		ctx.push().Set(v)
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		for _, a := range n.args {
			if err := a.eval(ctx); err != nil {
				return err
			}
		}
		f := ctx.funcs[strings.ToLower(n.name)]
		if f == nil {
			return &FuncError{Col: n.pos, Name: n.name}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if !f.CanCall(len(invoc)) {
			return &CallError{Col: n.pos, Func: n.name, Len: len(invoc)}
		}
		if err := f.Call(ctx, invoc, r); err != nil {
			var de DomainError
			if errors.As(err, &de) && de.Func == "" {
				de.Func = n.name
				return de
			}
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		return n.arith(ctx.top(), r, ctx.prec)
	default:
		panic("phc: invalid AST node " + n.kind.String())
	}
	return nil
}

// arith sets l to l op r for a binary operator node. Operations that would
// produce NaN are domain errors.
func (n *node) arith(l, r *big.Float, prec uint) error {
	bad := func(sym string) error {
		return DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: sym}
	}
	switch n.kind {
	case nodeAdd:
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return bad("+")
		}
		l.Add(l, r)
	case nodeSub:
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return bad("-")
		}
		l.Sub(l, r)
	case nodeMul:
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return bad("*")
		}
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return &DivisionByZeroError{Col: n.pos, X: new(big.Float).Copy(l)}
		}
		if l.IsInf() && r.IsInf() {
			return bad("/")
		}
		l.Quo(l, r)
	case nodePow:
		return pow(l, r, prec)
	}
	return nil
}

// pow sets z to z^w at precision prec. A negative base requires an integer
// exponent, and a zero base requires a non-negative one. 0^0 is 1.
func pow(z, w *big.Float, prec uint) error {
	z.SetPrec(prec)
	switch {
	case w.Sign() == 0:
		z.SetInt64(1)
		return nil
	case z.Sign() == 0:
		if w.Sign() < 0 {
			return DomainError{X: new(big.Float).Copy(w), Arg: 2, Func: "^"}
		}
		z.SetInt64(0)
		return nil
	case z.IsInf() || w.IsInf():
		x, _ := z.Float64()
		y, _ := w.Float64()
		v := math.Pow(x, y)
		if math.IsNaN(v) {
			return DomainError{X: new(big.Float).Copy(w), Arg: 2, Func: "^"}
		}
		z.SetFloat64(v)
		return nil
	}
	neg := false
	if z.Signbit() {
		if !w.IsInt() {
			return DomainError{X: new(big.Float).Copy(z), Arg: 1, Func: "^"}
		}
		i, _ := w.Int(nil)
		neg = i.Bit(0) == 1
		z.Neg(z)
	}
	// bigfloat.Pow may return a different Float than its output argument,
	// and it leaves guard bits on whichever one it uses.
	z.Set(bigfloat.Pow(new(big.Float).SetPrec(prec), z, w))
	if neg {
		z.Neg(z)
	}
	return nil
}
