package phc_test

import (
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/NEW-BOOTY/PHCSystem"
)

func TestScope(t *testing.T) {
	s := phc.NewScope()
	if s.Len() != 0 || len(s.Names()) != 0 {
		t.Fatalf("new scope has %d names %q", s.Len(), s.Names())
	}
	if v := s.Lookup("x"); v != nil {
		t.Errorf("empty scope has x = %v", v)
	}

	s.Assign("y", 2).Assign("x", 1).Assign("z", 3)
	if got := s.Names(); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("names %q", got)
	}
	if s.Len() != 3 {
		t.Errorf("len %d", s.Len())
	}
	s.Assign("x", 10)
	if v, _ := s.Lookup("x").Float64(); v != 10 {
		t.Errorf("reassigned x is %g", v)
	}

	v := s.Lookup("y")
	v.SetInt64(99)
	if w, _ := s.Lookup("y").Float64(); w != 2 {
		t.Errorf("modifying a looked-up value changed y to %g", w)
	}

	s.Delete("z").Delete("nonexistent")
	if s.Lookup("z") != nil || s.Len() != 2 {
		t.Errorf("z survived deletion: %q", s.Names())
	}
}

func TestScopeSet(t *testing.T) {
	s := phc.NewScope()
	x := new(big.Float).SetPrec(200).SetInt64(1)
	x.Quo(x, big.NewFloat(3))
	s.Set("third", x)
	x.SetInt64(0)
	got := s.Lookup("third")
	if got.Prec() != 200 {
		t.Errorf("stored precision %d, want 200", got.Prec())
	}
	if f, _ := got.Float64(); f != 1.0/3 {
		t.Errorf("modifying the source changed the stored value to %v", got)
	}
}

func TestScopeClone(t *testing.T) {
	s := phc.NewScope().Assign("a", 1).Assign("b", 2)
	c := s.Clone()
	c.Assign("a", 100).Delete("b").Assign("c", 3)
	if f, _ := s.Lookup("a").Float64(); f != 1 {
		t.Errorf("source scope has a = %g", f)
	}
	if !reflect.DeepEqual(s.Names(), []string{"a", "b"}) {
		t.Errorf("source scope names %q", s.Names())
	}
	if !reflect.DeepEqual(c.Names(), []string{"a", "c"}) {
		t.Errorf("clone names %q", c.Names())
	}
}

func TestNilScope(t *testing.T) {
	var s *phc.Scope
	if s.Len() != 0 || s.Names() != nil || s.Lookup("x") != nil {
		t.Error("nil scope is not empty")
	}
	if c := s.Clone(); c == nil || c.Len() != 0 {
		t.Error("clone of nil scope is not a usable empty scope")
	}
	r, err := phc.NewContext().EvalFloat64(phc.Literal(5), s)
	if err != nil || r != 5 {
		t.Errorf("eval with nil scope: %g, %v", r, err)
	}
	if s.Delete("x") != nil {
		t.Error("delete from nil scope returned a scope")
	}
}

func TestZeroScope(t *testing.T) {
	var s phc.Scope
	if s.Len() != 0 || s.Lookup("x") != nil {
		t.Error("zero scope is not empty")
	}
	s.Delete("x")
	s.Assign("x", 2).Set("y", big.NewFloat(3))
	if !reflect.DeepEqual(s.Names(), []string{"x", "y"}) {
		t.Errorf("names %q", s.Names())
	}
	r, err := phc.NewContext().EvalFloat64(phc.Variable("x"), &s)
	if err != nil || r != 2 {
		t.Errorf("eval with zero scope: %g, %v", r, err)
	}
}


func TestScopeAssignNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("assigning NaN did not panic")
		}
	}()
	phc.NewScope().Assign("x", math.NaN())
}
