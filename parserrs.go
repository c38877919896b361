package phc

import "strconv"

// LexError indicates a malformed word or an unrecognized character reached by
// the parser. It implements InputError.
type LexError struct {
	// Text is the invalid token.
	Text string
	// Class is the type of token the text resembles. This may be "number",
	// "identifier", or the empty string for a lone unrecognized character.
	Class string
	// Col is the position of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Class == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Class+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// OperatorError reports an operator in a position where it cannot be used,
// such as * at the start of a term. It implements InputError.
type OperatorError struct {
	Col int
	// Operator is the operator's text.
	Operator string
	// Unary is true when the operator appeared where a term must begin.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, strconv.Quote(err.Operator)+" is not a "+s+" operator")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError reports a bracket without a matching partner. Left is
// empty for a close bracket with no partner, and Right is empty when the input
// ends inside a group. It implements InputError.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "unmatched close bracket "+err.Right)
	}
	if err.Right == "" {
		return errpos(err.Col, "bracket "+err.Left+" never closed")
	}
	return errpos(err.Col, "bracket "+err.Left+" closed by "+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "separator "+strconv.Quote(err.Sep)+" outside an argument list")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where the parser required
// something else, e.g. a term directly following another term. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the unexpected token.
	Text string
	// Want describes what the parser required instead.
	Want string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+", want "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// ArgListError is an error indicating an empty argument in a function
// argument list, as in f(x,,y) or f(x,). It implements InputError.
type ArgListError struct {
	// Col is the position of the token that ended the empty argument.
	Col int
	// Func is the name of the function being called.
	Func string
	// End is the token that ended the empty argument.
	End string
}

func (err *ArgListError) Error() string {
	return errpos(err.Col, "malformed argument list for "+err.Func+": no argument before "+strconv.Quote(err.End))
}

func (err *ArgListError) Pos() int {
	return err.Col
}

// EmptyExpressionError reports a term that is missing entirely, as in "()" or
// "x*". End is the token found where the term should have begun, or empty at
// the end of input. It implements InputError.
type EmptyExpressionError struct {
	Col int
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "no expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return errpos(err.Col, "no expression in input")
	default:
		return errpos(err.Col, "no expression before end of input")
	}
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than the
// configured limit, during either parsing or evaluation.
type DepthError struct {
	// Max is the limit that was exceeded.
	Max int
}

func (err *DepthError) Error() string {
	return "expression nested more than " + strconv.Itoa(err.Max) + " levels deep"
}

func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is a syntax error that knows where in the source it occurred.
// All errors from Parse other than *DepthError implement it.
type InputError interface {
	error
	// Pos is the 1-based rune column of the offending token.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*ArgListError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
