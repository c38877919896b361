package phc

import (
	"math/big"
	"strconv"
)

// NameError is an error from a lookup for a variable that is missing from the
// evaluation scope.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// FuncError is an error from a call to a function that is missing from the
// context's function registry.
type FuncError struct {
	// Col is the position of the function name, or 0 if the expression was
	// not parsed from text.
	Col int
	// Name is the function name as written.
	Name string
}

func (err *FuncError) Error() string {
	return evalpos(err.Col, "unknown function: "+strconv.Quote(err.Name))
}

// CallError is an error indicating a function call with a number of
// arguments the function does not accept.
type CallError struct {
	// Col is the position of the function name, or 0 if the expression was
	// not parsed from text.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return evalpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

// DivisionByZeroError is an error indicating a division whose divisor is
// exactly zero.
type DivisionByZeroError struct {
	// Col is the position of the division operator, or 0 if the expression
	// was not parsed from text.
	Col int
	// X is the dividend.
	X *big.Float
}

func (err *DivisionByZeroError) Error() string {
	return evalpos(err.Col, "division of "+err.X.String()+" by zero")
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// evalpos prefixes msg with a position if there is one.
func evalpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return errpos(pos, msg)
}
