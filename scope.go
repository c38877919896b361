package phc

import "math/big"

// Scope maps variable names to values for evaluation. Values change only
// through Assign, Set, and Delete. A Scope is not safe for concurrent use;
// each session should own its own.
//
// The zero Scope is empty and ready to use. A nil *Scope may be passed to
// Context.Eval and read from, where it behaves as a scope with no variables,
// but Assign and Set on a nil *Scope panic.
type Scope struct {
	names map[string]*big.Float
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{names: make(map[string]*big.Float)}
}

// Assign sets the value of a variable. Returns s for chaining. Panics if v is
// NaN.
func (s *Scope) Assign(name string, v float64) *Scope {
	return s.put(name, new(big.Float).SetFloat64(v))
}

// Set sets the value of a variable to a copy of v, keeping v's precision.
// Returns s for chaining.
func (s *Scope) Set(name string, v *big.Float) *Scope {
	return s.put(name, new(big.Float).Copy(v))
}

func (s *Scope) put(name string, v *big.Float) *Scope {
	if s.names == nil {
		s.names = make(map[string]*big.Float)
	}
	s.names[name] = v
	return s
}

// Delete removes a variable. Returns s for chaining.
func (s *Scope) Delete(name string) *Scope {
	if s != nil {
		delete(s.names, name)
	}
	return s
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the scope, then the result is nil.
func (s *Scope) Lookup(name string) *big.Float {
	v := s.get(name)
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// get returns the stored value of a variable, or nil.
func (s *Scope) get(name string) *big.Float {
	if s == nil {
		return nil
	}
	return s.names[name]
}

// Names returns the sorted names of the variables in the scope.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	r := make([]string, 0, len(s.names))
	for k := range s.names {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Len returns the number of variables in the scope.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Clone creates an independent copy of the scope.
func (s *Scope) Clone() *Scope {
	n := NewScope()
	if s == nil {
		return n
	}
	// Stored values are never modified in place.
	for k, v := range s.names {
		n.names[k] = v
	}
	return n
}
