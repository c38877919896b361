// Package logic composes boolean propositions from atoms and connectives and
// evaluates them.
package logic

import "strings"

// Prop is an immutable proposition tree. The zero value is not a valid
// proposition; use Atom, Not, And, Or, and Implies to build one.
type Prop struct {
	kind  Kind
	value bool
	// left is the operand of Not and the left operand of binary connectives.
	left  *Prop
	right *Prop
}

// Kind is the variant of a proposition.
type Kind int8

const (
	kindNone Kind = iota

	KindAtomic  // constant truth value
	KindNot     // negation of left
	KindAnd     // left and right
	KindOr      // left or right
	KindImplies // left implies right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind
//go:generate go mod tidy

// Atom creates an atomic proposition with a fixed truth value.
func Atom(v bool) *Prop {
	return &Prop{kind: KindAtomic, value: v}
}

// Not creates the negation of p.
func Not(p *Prop) *Prop {
	return &Prop{kind: KindNot, left: p}
}

// And creates the conjunction of l and r.
func And(l, r *Prop) *Prop {
	return &Prop{kind: KindAnd, left: l, right: r}
}

// Or creates the disjunction of l and r.
func Or(l, r *Prop) *Prop {
	return &Prop{kind: KindOr, left: l, right: r}
}

// Implies creates the material implication l → r.
func Implies(l, r *Prop) *Prop {
	return &Prop{kind: KindImplies, left: l, right: r}
}

// Kind returns the variant of p.
func (p *Prop) Kind() Kind {
	return p.kind
}

// Value returns the truth value of an atomic proposition. It is false for
// every other kind.
func (p *Prop) Value() bool {
	return p.kind == KindAtomic && p.value
}

// Operands returns the operands of p. Not has only a left operand, and atomic
// propositions have neither.
func (p *Prop) Operands() (left, right *Prop) {
	return p.left, p.right
}

// String formats p with ¬, ∧, ∨, and → and fully parenthesized binary
// connectives.
func (p *Prop) String() string {
	var b strings.Builder
	p.fmt(&b)
	return b.String()
}

func (p *Prop) fmt(b *strings.Builder) {
	if p == nil {
		b.WriteString("<nil>")
		return
	}
	switch p.kind {
	case KindAtomic:
		if p.value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNot:
		b.WriteString("¬(")
		p.left.fmt(b)
		b.WriteByte(')')
	case KindAnd:
		p.fmtbin(b, " ∧ ")
	case KindOr:
		p.fmtbin(b, " ∨ ")
	case KindImplies:
		p.fmtbin(b, " → ")
	default:
		b.WriteString("<invalid>")
	}
}

func (p *Prop) fmtbin(b *strings.Builder, op string) {
	b.WriteByte('(')
	p.left.fmt(b)
	b.WriteString(op)
	p.right.fmt(b)
	b.WriteByte(')')
}
