package logic_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/NEW-BOOTY/PHCSystem"
	"github.com/NEW-BOOTY/PHCSystem/logic"
)

var (
	T = logic.Atom(true)
	F = logic.Atom(false)
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		p    *logic.Prop
		want bool
	}{
		{"true", T, true},
		{"false", F, false},
		{"not-true", logic.Not(T), false},
		{"not-false", logic.Not(F), true},
		{"notnot", logic.Not(logic.Not(T)), true},

		{"and-tt", logic.And(T, T), true},
		{"and-tf", logic.And(T, F), false},
		{"and-ft", logic.And(F, T), false},
		{"and-ff", logic.And(F, F), false},

		{"or-tt", logic.Or(T, T), true},
		{"or-tf", logic.Or(T, F), true},
		{"or-ft", logic.Or(F, T), true},
		{"or-ff", logic.Or(F, F), false},

		{"implies-tt", logic.Implies(T, T), true},
		{"implies-tf", logic.Implies(T, F), false},
		{"implies-ft", logic.Implies(F, T), true},
		{"implies-ff", logic.Implies(F, F), true},

		{"demorgan", logic.Not(logic.And(T, F)), true},
		{"nested", logic.Implies(logic.Or(F, logic.Not(F)), logic.And(T, logic.Not(F))), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := logic.Eval(c.p)
			if err != nil {
				t.Fatalf("%v: %v", c.p, err)
			}
			if got != c.want {
				t.Errorf("%v: want %t, got %t", c.p, c.want, got)
			}
		})
	}
}

func TestEvalNil(t *testing.T) {
	cases := []struct {
		name string
		p    *logic.Prop
	}{
		{"root", nil},
		{"not", logic.Not(nil)},
		{"and-left", logic.And(nil, T)},
		{"and-right", logic.And(F, nil)},
		{"or-right", logic.Or(T, nil)},
		{"implies-deep", logic.Implies(T, logic.Not(logic.Or(F, nil)))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := logic.Eval(c.p)
			if !errors.Is(err, logic.ErrNilProposition) {
				t.Errorf("want ErrNilProposition, got %v", err)
			}
			if got {
				t.Error("true result with error")
			}
		})
	}
}

func TestEvalInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("zero proposition did not panic")
		}
	}()
	logic.Eval(logic.Not(&logic.Prop{}))
}

func TestAccessors(t *testing.T) {
	p := logic.Implies(T, logic.Not(F))
	if p.Kind() != logic.KindImplies || p.Kind().String() != "Implies" {
		t.Errorf("kind %v", p.Kind())
	}
	l, r := p.Operands()
	if l != T || r.Kind() != logic.KindNot {
		t.Errorf("operands %v, %v", l, r)
	}
	if x, y := r.Operands(); x != F || y != nil {
		t.Errorf("operands of not: %v, %v", x, y)
	}
	if !T.Value() || F.Value() || logic.Not(F).Value() {
		t.Error("wrong values")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		p    *logic.Prop
		want string
	}{
		{T, "true"},
		{F, "false"},
		{logic.Not(T), "¬(true)"},
		{logic.And(T, F), "(true ∧ false)"},
		{logic.Or(T, F), "(true ∨ false)"},
		{logic.Implies(T, F), "(true → false)"},
		{logic.And(T, logic.Not(logic.Or(F, T))), "(true ∧ ¬((false ∨ true)))"},
		{logic.Not(nil), "¬(<nil>)"},
	}
	for _, c := range cases {
		if got := c.p.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"true", "true"},
		{"T", "true"},
		{"TRUE", "true"},
		{"false", "false"},
		{"F", "false"},
		{"not true", "¬(true)"},
		{"!T", "¬(true)"},
		{"¬F", "¬(false)"},
		{"not not F", "¬(¬(false))"},
		{"T and F", "(true ∧ false)"},
		{"T&F", "(true ∧ false)"},
		{"T ∧ F", "(true ∧ false)"},
		{"T or F", "(true ∨ false)"},
		{"T|F", "(true ∨ false)"},
		{"T ∨ F", "(true ∨ false)"},
		{"T -> F", "(true → false)"},
		{"T->F", "(true → false)"},
		{"T → F", "(true → false)"},
		{"T and F or T", "((true ∧ false) ∨ true)"},
		{"T or F and T", "(true ∨ (false ∧ true))"},
		{"T or F or F", "((true ∨ false) ∨ false)"},
		{"F -> F -> F", "(false → (false → false))"},
		{"T or F -> F", "((true ∨ false) → false)"},
		{"not T and F", "(¬(true) ∧ false)"},
		{"not (T and F)", "¬((true ∧ false))"},
		{"(T or F) and F", "((true ∨ false) ∧ false)"},
		{"[T]", "true"},
		{"{T -> [F]}", "(true → false)"},
	}
	for _, c := range cases {
		p, err := logic.Parse(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if got := p.String(); got != c.want {
			t.Errorf("%q parsed as %s, want %s", c.src, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
	}{
		{"empty", "", 1},
		{"dangling", "T and", 6},
		{"juxtaposed", "T F", 3},
		{"unclosed", "(T", 3},
		{"mismatched", "(T]", 3},
		{"close", "T)", 2},
		{"arith", "T + F", 3},
		{"unknown", "x", 1},
		{"spaced-arrow", "T - > F", 3},
		{"leading-and", "and T", 1},
		{"number", "1", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := logic.Parse(c.src)
			if p != nil {
				t.Errorf("%q parsed to %v", c.src, p)
			}
			var se *logic.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%q: want *SyntaxError, got %#v", c.src, err)
			}
			if se.Pos() != c.pos {
				t.Errorf("%q: error %q at %d, want %d", c.src, err, se.Pos(), c.pos)
			}
			if phc.KindOf(err) != phc.KindParse {
				t.Errorf("%q: kind %v", c.src, phc.KindOf(err))
			}
		})
	}
}

func TestParseDepth(t *testing.T) {
	_, err := logic.Parse(strings.Repeat("not ", 2*phc.DefaultMaxDepth) + "T")
	if phc.KindOf(err) != phc.KindDepthExceeded {
		t.Errorf("deep negation: want depth exceeded, got %v", err)
	}
	_, err = logic.Parse(strings.Repeat("(", 2*phc.DefaultMaxDepth) + "T" + strings.Repeat(")", 2*phc.DefaultMaxDepth))
	if phc.KindOf(err) != phc.KindDepthExceeded {
		t.Errorf("deep brackets: want depth exceeded, got %v", err)
	}
}

func TestParseEnv(t *testing.T) {
	env := map[string]*logic.Prop{"p": T, "q": F}
	cases := []struct {
		src  string
		want bool
	}{
		{"p", true},
		{"q", false},
		{"p -> q", false},
		{"q -> p", true},
		{"p and not q", true},
		{"(p or q) and q", false},
	}
	for _, c := range cases {
		p, err := logic.ParseEnv(c.src, env)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if got, err := logic.Eval(p); err != nil || got != c.want {
			t.Errorf("%q: want %t, got %t, %v", c.src, c.want, got, err)
		}
	}
	if _, err := logic.ParseEnv("p and r", env); err == nil {
		t.Error("unknown name r parsed")
	}
}

func TestParseEnvShadowsConstants(t *testing.T) {
	s := phc.NewScope().Assign("f", 1).Assign("t", 0).Assign("T", 0)
	env := logic.ScopeEnv(s)
	cases := []struct {
		src  string
		want bool
	}{
		{"f and not t", true},
		{"f -> t", false},
		{"T or t", false},
		// Names not in the environment are still constants.
		{"F or TRUE", true},
		{"f and true", true},
	}
	for _, c := range cases {
		p, err := logic.ParseEnv(c.src, env)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if got, err := logic.Eval(p); err != nil || got != c.want {
			t.Errorf("%q parsed as %v: want %t, got %t, %v", c.src, p, c.want, got, err)
		}
	}
	// Without an environment, t and f keep their meaning.
	p, err := logic.Parse("f and not t")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != "(false ∧ ¬(true))" {
		t.Errorf("constants parsed as %s", got)
	}
}

func TestEvalDepth(t *testing.T) {
	deep := T
	for i := 0; i < 2*phc.DefaultMaxDepth; i++ {
		deep = logic.Not(deep)
	}
	if _, err := logic.Eval(deep); phc.KindOf(err) != phc.KindDepthExceeded {
		t.Errorf("deep negation: want depth exceeded, got %v", err)
	}
	if _, err := logic.Eval(deep, logic.MaxDepth(3*phc.DefaultMaxDepth)); err != nil {
		t.Errorf("deep negation under a higher limit: %v", err)
	}

	cases := []struct {
		name string
		p    *logic.Prop
		max  int
		ok   bool
	}{
		{"atom", T, 1, true},
		{"not", logic.Not(T), 1, false},
		{"not-fits", logic.Not(logic.Not(T)), 3, true},
		{"not-over", logic.Not(logic.Not(logic.Not(T))), 3, false},
		{"and-right", logic.And(T, logic.Or(F, logic.Not(T))), 3, false},
		{"and-fits", logic.And(T, logic.Or(F, logic.Not(T))), 4, true},
		{"default", logic.Not(T), 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := logic.Eval(c.p, logic.MaxDepth(c.max))
			if c.ok {
				if err != nil {
					t.Errorf("%v at depth %d: %v", c.p, c.max, err)
				}
				return
			}
			var de *phc.DepthError
			if !errors.As(err, &de) || de.Max != c.max {
				t.Errorf("%v at depth %d: want *DepthError with Max %d, got %v", c.p, c.max, c.max, err)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	cases := []struct {
		src string
		ok  bool
	}{
		{"not T", true},
		{"(T)", true},
		{"not not not not not not T", false},
		{"(((T)))", false},
	}
	for _, c := range cases {
		_, err := logic.Parse(c.src, logic.MaxDepth(5))
		if c.ok && err != nil {
			t.Errorf("%q: %v", c.src, err)
		}
		if !c.ok && phc.KindOf(err) != phc.KindDepthExceeded {
			t.Errorf("%q: want depth exceeded, got %v", c.src, err)
		}
	}
	_, err := logic.ParseEnv("p", map[string]*logic.Prop{"p": T}, logic.MaxDepth(1))
	if phc.KindOf(err) != phc.KindDepthExceeded {
		t.Errorf("name at depth 1: want depth exceeded, got %v", err)
	}
}

func TestTruth(t *testing.T) {
	ctx := phc.NewContext()
	e, err := phc.Parse("x - 1")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		scope *phc.Scope
		want  bool
	}{
		{phc.NewScope().Assign("x", 2), true},
		{phc.NewScope().Assign("x", 1), false},
		{nil, false},
	}
	for _, c := range cases {
		p := logic.Truth(ctx, e, c.scope)
		if p.Kind() != logic.KindAtomic || p.Value() != c.want {
			t.Errorf("truth of %v with %v: %v", e, c.scope.Names(), p)
		}
	}
}

func TestScopeEnv(t *testing.T) {
	s := phc.NewScope().Assign("x", 0).Assign("y", 3).Assign("tiny", 1e-12)
	env := logic.ScopeEnv(s)
	want := map[string]bool{"x": false, "y": true, "tiny": false}
	got := make(map[string]bool, len(env))
	for k, v := range env {
		got[k] = v.Value()
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
	if v, _ := s.Lookup("y").Float64(); v != 3 {
		t.Errorf("building the environment changed y to %g", v)
	}
	p, err := logic.ParseEnv("x or y", env)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := logic.Eval(p); !ok {
		t.Error("x or y is false")
	}
}

func ExampleEval() {
	p, _ := logic.Parse("T and F -> not T")
	v, _ := logic.Eval(p)
	fmt.Println(p, v)

	q := logic.And(logic.Atom(true), logic.Atom(false))
	v, _ = logic.Eval(q)
	fmt.Println(q, v)

	// Output:
	// ((true ∧ false) → ¬(true)) true
	// (true ∧ false) false
}
