package logic

import (
	"errors"
	"math/big"

	"github.com/NEW-BOOTY/PHCSystem"
)

// ErrNilProposition is the error from evaluating a nil proposition, whether
// it is the root or an operand.
var ErrNilProposition = errors.New("logic: nil proposition")

// Option configures parsing and evaluation of propositions.
type Option interface {
	logicOption(*limits)
}

type limits struct {
	maxdepth int
}

type depthopt int

func (o depthopt) logicOption(l *limits) {
	l.maxdepth = int(o)
	if l.maxdepth < 1 {
		l.maxdepth = phc.DefaultMaxDepth
	}
}

// MaxDepth limits the nesting depth of parsed and evaluated propositions.
// Exceeding it fails with a *phc.DepthError. Values less than 1 select
// phc.DefaultMaxDepth.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func newLimits(opts []Option) limits {
	l := limits{maxdepth: phc.DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt.logicOption(&l)
		}
	}
	return l
}

// Eval computes the truth value of p. Both operands of every connective are
// evaluated, left then right, before they are combined.
func Eval(p *Prop, opts ...Option) (bool, error) {
	if p == nil {
		return false, ErrNilProposition
	}
	l := newLimits(opts)
	return eval(p, 1, l.maxdepth)
}

func eval(p *Prop, depth, max int) (bool, error) {
	if p == nil {
		return false, ErrNilProposition
	}
	if depth > max {
		return false, &phc.DepthError{Max: max}
	}
	switch p.kind {
	case KindAtomic:
		return p.value, nil
	case KindNot:
		v, err := eval(p.left, depth+1, max)
		if err != nil {
			return false, err
		}
		return !v, nil
	case KindAnd, KindOr, KindImplies:
		l, err := eval(p.left, depth+1, max)
		if err != nil {
			return false, err
		}
		r, err := eval(p.right, depth+1, max)
		if err != nil {
			return false, err
		}
		switch p.kind {
		case KindAnd:
			return l && r, nil
		case KindOr:
			return l || r, nil
		default:
			return !l || r, nil
		}
	default:
		panic("logic: invalid proposition kind " + p.kind.String())
	}
}

// Truth creates an atomic proposition from the truth of an expression, as
// reported by ctx.IsTrue.
func Truth(ctx *phc.Context, e *phc.Expr, scope *phc.Scope) *Prop {
	return Atom(ctx.IsTrue(e, scope))
}

// ScopeEnv creates a name environment for ParseEnv in which each variable of
// scope is an atom that is true when the variable's magnitude exceeds
// phc.TruthEpsilon.
func ScopeEnv(scope *phc.Scope) map[string]*Prop {
	eps := big.NewFloat(phc.TruthEpsilon)
	env := make(map[string]*Prop, scope.Len())
	for _, name := range scope.Names() {
		v := scope.Lookup(name)
		env[name] = Atom(v.Abs(v).Cmp(eps) > 0)
	}
	return env
}
