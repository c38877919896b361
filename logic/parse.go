package logic

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/NEW-BOOTY/PHCSystem"
)

// Prop = Or [ Implies Prop ]
// Or = And { OrOp And }
// And = Unary { AndOp Unary }
// Unary = NotOp Unary | Atom | '(' Prop ')'
// Atom = 'true' | 'T' | 'false' | 'F' | name
// NotOp = 'not' | '!' | '¬'
// AndOp = 'and' | '&' | '∧'
// OrOp = 'or' | '|' | '∨'
// Implies = '->' | '→'
//
// Keywords are case-insensitive. Implication is right-associative and binds
// most loosely; negation binds most tightly. A name in the environment takes
// precedence over the constants, so a variable named t or F is the variable.

// SyntaxError is an error from parsing a malformed proposition. It implements
// phc.InputError.
type SyntaxError struct {
	// Col is the position of the offending token.
	Col int
	// Text is the offending token, or empty at the end of input.
	Text string
	// Want describes what the parser required instead.
	Want string
}

func (err *SyntaxError) Error() string {
	got := "end of input"
	if err.Text != "" {
		got = strconv.Quote(err.Text)
	}
	return strconv.Itoa(err.Col) + ": unexpected " + got + ", want " + err.Want
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (*SyntaxError) Kind() phc.ErrorKind { return phc.KindParse }

var _ phc.InputError = (*SyntaxError)(nil)

type ptokKind int8

const (
	ptokEOF ptokKind = iota
	ptokTrue
	ptokFalse
	ptokName
	ptokNot
	ptokAnd
	ptokOr
	ptokImplies
	ptokOpen
	ptokClose
	ptokInvalid
)

type ptok struct {
	kind ptokKind
	text string
	pos  int
}

var keywords = map[string]ptokKind{
	"true":  ptokTrue,
	"t":     ptokTrue,
	"false": ptokFalse,
	"f":     ptokFalse,
	"not":   ptokNot,
	"and":   ptokAnd,
	"or":    ptokOr,
}

var symbols = map[string]ptokKind{
	"!": ptokNot,
	"¬": ptokNot,
	"&": ptokAnd,
	"∧": ptokAnd,
	"|": ptokOr,
	"∨": ptokOr,
	"→": ptokImplies,
}

// lex converts expression tokens into proposition tokens.
func lex(src string) []ptok {
	toks := phc.Tokenize(src)
	r := make([]ptok, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		t := ptok{kind: ptokInvalid, text: tok.Text, pos: tok.Pos}
		switch tok.Kind {
		case phc.TokenIdent:
			if k, ok := keywords[strings.ToLower(tok.Text)]; ok {
				t.kind = k
			} else {
				t.kind = ptokName
			}
		case phc.TokenOpen:
			t.kind = ptokOpen
		case phc.TokenClose:
			t.kind = ptokClose
		case phc.TokenOp:
			// -> is two tokens to the expression tokenizer.
			if tok.Text == "-" && i+1 < len(toks) && toks[i+1].Text == ">" && toks[i+1].Pos == tok.Pos+1 {
				t.kind, t.text = ptokImplies, "->"
				i++
			}
		case phc.TokenInvalid:
			if k, ok := symbols[tok.Text]; ok {
				t.kind = k
			}
		}
		r = append(r, t)
	}
	return r
}

type pparser struct {
	toks     []ptok
	k        int
	end      int
	env      map[string]*Prop
	depth    int
	maxdepth int
}

func (p *pparser) next() ptok {
	if p.k >= len(p.toks) {
		p.k = len(p.toks) + 1
		return ptok{kind: ptokEOF, pos: p.end}
	}
	t := p.toks[p.k]
	p.k++
	return t
}

func (p *pparser) back() {
	p.k--
}

// Parse parses a proposition made only of constants and connectives.
func Parse(src string, opts ...Option) (*Prop, error) {
	return ParseEnv(src, nil, opts...)
}

// ParseEnv parses a proposition in which names refer to the propositions in
// env. A name missing from env is a syntax error.
func ParseEnv(src string, env map[string]*Prop, opts ...Option) (*Prop, error) {
	p := pparser{
		toks:     lex(src),
		end:      utf8.RuneCountInString(src) + 1,
		env:      env,
		maxdepth: newLimits(opts).maxdepth,
	}
	r, err := p.parseimpl()
	if err != nil {
		return nil, err
	}
	if t := p.next(); t.kind != ptokEOF {
		return nil, &SyntaxError{Col: t.pos, Text: t.text, Want: "connective"}
	}
	return r, nil
}

func (p *pparser) enter() error {
	p.depth++
	if p.depth > p.maxdepth {
		return &phc.DepthError{Max: p.maxdepth}
	}
	return nil
}

func (p *pparser) parseimpl() (*Prop, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	l, err := p.parseor()
	if err != nil {
		return nil, err
	}
	if t := p.next(); t.kind != ptokImplies {
		p.back()
		return l, nil
	}
	r, err := p.parseimpl()
	if err != nil {
		return nil, err
	}
	return Implies(l, r), nil
}

func (p *pparser) parseor() (*Prop, error) {
	l, err := p.parseand()
	if err != nil {
		return nil, err
	}
	for {
		if t := p.next(); t.kind != ptokOr {
			p.back()
			return l, nil
		}
		r, err := p.parseand()
		if err != nil {
			return nil, err
		}
		l = Or(l, r)
	}
}

func (p *pparser) parseand() (*Prop, error) {
	l, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	for {
		if t := p.next(); t.kind != ptokAnd {
			p.back()
			return l, nil
		}
		r, err := p.parseunary()
		if err != nil {
			return nil, err
		}
		l = And(l, r)
	}
}

func (p *pparser) parseunary() (*Prop, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	t := p.next()
	switch t.kind {
	case ptokTrue, ptokFalse, ptokName:
		if x := p.env[t.text]; x != nil {
			return x, nil
		}
	}
	switch t.kind {
	case ptokNot:
		x, err := p.parseunary()
		if err != nil {
			return nil, err
		}
		return Not(x), nil
	case ptokTrue:
		return Atom(true), nil
	case ptokFalse:
		return Atom(false), nil
	case ptokName:
		return nil, &SyntaxError{Col: t.pos, Text: t.text, Want: "known proposition name"}
	case ptokOpen:
		x, err := p.parseimpl()
		if err != nil {
			return nil, err
		}
		end := p.next()
		if end.kind != ptokClose || !matches(t.text, end.text) {
			return nil, &SyntaxError{Col: end.pos, Text: end.text, Want: "close bracket for " + t.text}
		}
		return x, nil
	default:
		return nil, &SyntaxError{Col: t.pos, Text: t.text, Want: "proposition"}
	}
}

func matches(left, right string) bool {
	k := strings.Index(phc.OpenBrackets, left)
	return k >= 0 && strings.Index(phc.CloseBrackets, right) == k
}
