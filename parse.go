package phc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sum = Product { ('+' | '-') Product }
// Product = Signed { ('*' | '×' | '/' | '÷') Signed }
// Signed = ('-' | '+') Signed | Power
// Power = Term { '^' Exponent }
// Exponent = ('-' | '+') Exponent | Term
// Term = num | name | Call | '(' Sum ')' | '[' Sum ']' | '{' Sum '}'
// Call = name Args
// Args = '(' [ Sum { ',' Sum } ] ')', or the same with [] or {}
//
// All binary operators are left-associative, including ^: 2^3^2 is (2^3)^2.

// Expr is a parsed expression that can be evaluated with a context and a
// scope. An Expr is immutable.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

func newExpr(n *node) *Expr {
	m := make(map[string]bool)
	n.names(m)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(m)),
	}
	for k := range m {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex
}

// parser is the state of a single parse.
type parser struct {
	toks []Token
	k    int
	// end is the position reported for the end of input.
	end int
	// depth is the current nesting depth and maxdepth its limit.
	depth, maxdepth int
}

// next scans the next token. Past the last token, the result is an EOF
// token.
func (p *parser) next() Token {
	if p.k >= len(p.toks) {
		p.k = len(p.toks) + 1
		return Token{Kind: tokenEOF, Pos: p.end}
	}
	tok := p.toks[p.k]
	p.k++
	return tok
}

// back unscans the last token so that it is the next token returned from
// next.
func (p *parser) back() {
	p.k--
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	cfg := parsectx{maxdepth: DefaultMaxDepth, obs: nopObserver{}}
	for _, opt := range opts {
		cfg = opt.parseOption(cfg)
	}
	ex, err := parse(src, &cfg)
	cfg.obs.Parsed(src, ex, err)
	return ex, err
}

func parse(src string, cfg *parsectx) (*Expr, error) {
	p := parser{
		toks:     Tokenize(src),
		end:      utf8.RuneCountInString(src) + 1,
		maxdepth: cfg.maxdepth,
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.Kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return newExpr(n), nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term whose operators all bind more tightly than
// until. If there is no error, the token that ended the term is the next
// token to be scanned. The result is never nil without an error.
func (p *parser) parseterm(until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxdepth {
		return nil, &DepthError{Max: p.maxdepth}
	}
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.next()
		switch tok.Kind {
		case TokenOp:
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
			}
			if !prec.moreBinding(until) {
				p.back()
				return n, nil
			}
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, pos: tok.Pos, left: n, right: rhs}
		case TokenNum, TokenIdent, TokenOpen:
			// Juxtaposed terms, e.g. "2 x" or "2 (x)".
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operator"}
		case TokenInvalid:
			return nil, lexerror(tok)
		case TokenClose, TokenSep, tokenEOF:
			// End of expression.
			p.back()
			return n, nil
		default:
			panic("phc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func (p *parser) parselhs(until operator) (*node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNum:
		return &node{kind: nodeNum, name: tok.Text, pos: tok.Pos}, nil
	case TokenIdent:
		if open := p.next(); open.Kind == TokenOpen {
			return p.parsecall(tok, open)
		}
		p.back()
		return &node{kind: nodeName, name: tok.Text, pos: tok.Pos}, nil
	case TokenOp:
		// unary operator
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if tok.Text == "+" {
			return rhs, nil
		}
		// Negation is subtraction from zero so that trees only ever contain
		// literals, names, calls, and binary operators.
		zero := &node{kind: nodeNum, name: "0", pos: tok.Pos}
		return &node{kind: nodeSub, pos: tok.Pos, left: zero, right: rhs}, nil
	case TokenOpen:
		match := rightbracket(tok.Text)
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end := p.next()
		if end.Kind != TokenClose || end.Text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		return rhs, nil
	case TokenClose:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
	case TokenSep:
		return nil, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	case TokenInvalid:
		return nil, lexerror(tok)
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: ""}
	default:
		panic("phc: unknown token: " + tok.String())
	}
}

// parsecall parses the argument list of a call to the function named by fn.
// open is the already scanned bracket that begins the list.
func (p *parser) parsecall(fn, open Token) (*node, error) {
	n := &node{kind: nodeCall, name: fn.Text, pos: fn.Pos}
	match := rightbracket(open.Text)
	if end := p.next(); end.Kind == TokenClose {
		// Niladic call.
		if end.Text != closebrackets[match] {
			return nil, &BracketError{Col: end.Pos, Left: open.Text, Right: end.Text}
		}
		return n, nil
	}
	p.back()
	args, err := p.parsearglist(fn.Text, open.Text)
	if err != nil {
		return nil, err
	}
	end := p.next()
	if end.Kind != TokenClose {
		panic("phc: parsearglist ended on " + end.String() + " instead of close bracket")
	}
	if end.Text != closebrackets[match] {
		return nil, &BracketError{Col: end.Pos, Left: open.Text, Right: end.Text}
	}
	n.args = args
	return n, nil
}

// parsearglist parses a separated list of one or more args. The close bracket
// that ends the list is the next token to be scanned.
func (p *parser) parsearglist(name, open string) ([]*node, error) {
	var args []*node
	for {
		if tok := p.next(); tok.Kind == TokenSep || tok.Kind == TokenClose {
			return nil, &ArgListError{Col: tok.Pos, Func: name, End: tok.Text}
		}
		p.back()
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			// Running out of input inside the list means the bracket was
			// never closed.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open}
			}
			return nil, err
		}
		args = append(args, rhs)
		end := p.next()
		switch end.Kind {
		case TokenClose:
			// Caller checks that brackets match.
			p.back()
			return args, nil
		case TokenSep:
			// next argument
		case tokenEOF:
			return nil, &BracketError{Col: end.Pos, Left: open, Right: ""}
		default:
			panic("phc: parseterm ended on non-end token " + end.String())
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("phc: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok Token, match int) error {
	switch tok.Kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.Pos, Left: leftbracket(match), Right: ""}
	case TokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.Pos, Left: leftbracket(match), Right: tok.Text}
	case TokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	default:
		panic("phc: it really should not have ended this way: " + tok.String())
	}
}

// lexerror converts an invalid token into an error.
func lexerror(tok Token) error {
	class := ""
	switch r, _ := utf8.DecodeRuneInString(tok.Text); {
	case r == '.', '0' <= r && r <= '9':
		class = "number"
	case r == '_', unicode.IsLetter(r):
		class = "identifier"
	}
	return &LexError{Text: tok.Text, Class: class, Col: tok.Pos}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var w treeWriter
	w.node(e.n, 0)
	return w.b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, false, nodePow}
	case "×":
		return operator{5, false, nodeMul}
	case "÷":
		return operator{5, false, nodeDiv}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Unary minus produces a
// subtraction from zero.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeAdd}
	case "-":
		return operator{10, true, nodeSub}
	default:
		return operator{}
	}
}

var (
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
