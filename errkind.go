package phc

import "errors"

// ErrorKind discriminates the errors produced by tokenizing, parsing, and
// evaluating expressions.
type ErrorKind int8

const (
	// KindNone is the kind of nil and of errors not produced by this package.
	KindNone ErrorKind = iota
	// KindLexical is an unrecognized character sequence.
	KindLexical
	// KindParse is malformed grammar: a missing or mismatched bracket, a
	// malformed argument list, an unexpected token, or a premature end.
	KindParse
	// KindUndefinedVariable is a lookup of a name absent from the scope.
	KindUndefinedVariable
	// KindUnknownFunction is a call to a name absent from the registry.
	KindUnknownFunction
	// KindArgumentCount is a call with a number of arguments the function
	// does not accept.
	KindArgumentCount
	// KindDomain is an argument outside a function's or operator's domain.
	KindDomain
	// KindDivisionByZero is a division by exactly zero.
	KindDivisionByZero
	// KindDepthExceeded is nesting beyond the configured maximum depth.
	KindDepthExceeded
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=ErrorKind -trimprefix=Kind
//go:generate go mod tidy

// KindOf returns the kind of err. It looks through wrapped errors for the
// first error that has a kind.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindNone
}

func (*LexError) Kind() ErrorKind             { return KindLexical }
func (*OperatorError) Kind() ErrorKind        { return KindParse }
func (*BracketError) Kind() ErrorKind         { return KindParse }
func (*SeparatorError) Kind() ErrorKind       { return KindParse }
func (*TokenError) Kind() ErrorKind           { return KindParse }
func (*ArgListError) Kind() ErrorKind         { return KindParse }
func (*EmptyExpressionError) Kind() ErrorKind { return KindParse }
func (*DepthError) Kind() ErrorKind           { return KindDepthExceeded }
func (*NameError) Kind() ErrorKind            { return KindUndefinedVariable }
func (*FuncError) Kind() ErrorKind            { return KindUnknownFunction }
func (*CallError) Kind() ErrorKind            { return KindArgumentCount }
func (DomainError) Kind() ErrorKind           { return KindDomain }
func (*DivisionByZeroError) Kind() ErrorKind  { return KindDivisionByZero }
