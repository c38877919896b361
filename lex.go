package phc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a classified lexeme.
type Token struct {
	// Kind is the token's class.
	Kind TokenKind
	// Text is the token's source text.
	Text string
	// Pos is the 1-based rune column of the token's first rune.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the class of a token.
type TokenKind int8

const (
	// tokenEOF marks the end of input. Tokenize never produces it.
	tokenEOF TokenKind = iota
	// TokenNum is a decimal number, inf, or ∞.
	TokenNum
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenOp is an operator.
	TokenOp
	// TokenOpen is an open bracket, e.g. (.
	TokenOpen
	// TokenClose is a close bracket, e.g. ).
	TokenClose
	// TokenSep is the function argument separator ",".
	TokenSep
	// TokenInvalid is a malformed word or an unrecognized rune. The tokenizer
	// leaves it for the parser to reject.
	TokenInvalid
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token
//go:generate go mod tidy

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The parser checks that a bracket in byte position k in OpenBrackets is
// matched with the bracket in byte position k in ClosedBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var (
	openbrackets  = byteidcs(OpenBrackets)
	closebrackets = byteidcs(CloseBrackets)
)

// Tokenize splits src into tokens. It never fails: anything it cannot
// classify becomes a TokenInvalid token.
//
// Letters, digits, '.', and '_' accumulate into words, which are classified
// once complete. Whitespace ends a word. Every other rune ends the current
// word and becomes a token by itself. As a special case, a sign immediately
// following the exponent marker of a number, as in 1e-5, stays in the word.
func Tokenize(src string) []Token {
	var (
		toks  []Token
		word  strings.Builder
		start int
		col   int
	)
	flush := func() {
		if word.Len() == 0 {
			return
		}
		s := word.String()
		toks = append(toks, Token{Kind: classify(s), Text: s, Pos: start})
		word.Reset()
	}
	for _, r := range src {
		col++
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '_', r == '.', unicode.IsLetter(r), unicode.IsDigit(r):
			if word.Len() == 0 {
				start = col
			}
			word.WriteRune(r)
		case (r == '+' || r == '-') && wantsExpSign(word.String()):
			word.WriteRune(r)
		default:
			flush()
			toks = append(toks, Token{Kind: runeKind(r), Text: string(r), Pos: col})
		}
	}
	flush()
	return toks
}

// runeKind classifies a rune that forms a token by itself.
func runeKind(r rune) TokenKind {
	switch {
	case strings.ContainsRune(Operators, r):
		return TokenOp
	case strings.ContainsRune(OpenBrackets, r):
		return TokenOpen
	case strings.ContainsRune(CloseBrackets, r):
		return TokenClose
	case r == ',':
		return TokenSep
	case r == '∞':
		return TokenNum
	default:
		return TokenInvalid
	}
}

// classify decides the kind of a complete word.
func classify(s string) TokenKind {
	switch {
	case s == "inf", s == "Inf":
		return TokenNum
	case isNumber(s):
		return TokenNum
	case isIdent(s):
		return TokenIdent
	default:
		return TokenInvalid
	}
}

// wantsExpSign reports whether a word in progress is a number that has just
// seen its exponent marker.
func wantsExpSign(s string) bool {
	if len(s) < 2 {
		return false
	}
	if c := s[0]; c != '.' && (c < '0' || c > '9') {
		return false
	}
	if c := s[len(s)-1]; c != 'e' && c != 'E' {
		return false
	}
	return strings.IndexAny(s[:len(s)-1], "eE") < 0
}

// isNumber checks decimal number syntax: digits with at most one point, then
// optionally an exponent marker, an optional sign, and at least one digit.
func isNumber(s string) bool {
	var dig, dot, e, le, ed bool
	for _, r := range s {
		switch r {
		case '.':
			if dot || e {
				return false
			}
			dot = true
		case 'e', 'E':
			if !dig || e {
				return false
			}
			e = true
			le = true
			continue
		case '+', '-':
			if !le {
				return false
			}
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
		default:
			return false
		}
		le = false
	}
	return dig && (!e || ed)
}

// isIdent checks that s starts with a letter or underscore and continues with
// letters, digits, and underscores.
func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != ""
}
