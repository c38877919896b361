package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/NEW-BOOTY/PHCSystem"
	"github.com/NEW-BOOTY/PHCSystem/logic"
)

const prompt = "phc> "

const help = `expr              evaluate an expression, e.g. 2^10 or sin(pi()/2)
:let name = expr  evaluate expr and assign it to name
:true expr        report whether expr is true (nonzero and defined)
:prop text        evaluate a proposition, e.g. T and not F -> x;
                  variables are true when nonzero
:vars             list variables
:funcs            list functions
:help             show this text
:quit             leave`

var commands = []string{":funcs", ":help", ":let", ":prop", ":quit", ":true", ":vars"}

// errQuit is returned by exec when the session should end.
var errQuit = errors.New("quit")

// session is the state of one interactive or scripted run.
type session struct {
	ctx   *phc.Context
	scope *phc.Scope
	popts []phc.ParseOption
	// verb formats results.
	verb string
	// echo prints parse trees before results.
	echo bool
	log  zerolog.Logger
}

// exec runs one line and returns the text to print.
func (s *session) exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	if !strings.HasPrefix(line, ":") {
		return s.eval(line)
	}
	cmd, arg := line, ""
	if k := strings.IndexFunc(line, isSpace); k >= 0 {
		cmd, arg = line[:k], strings.TrimSpace(line[k:])
	}
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return "", errQuit
	case ":help", ":h", ":?":
		return help, nil
	case ":vars":
		return s.vars(), nil
	case ":funcs":
		return strings.Join(s.ctx.Funcs(), " "), nil
	case ":let":
		return s.let(arg)
	case ":true":
		return s.truth(arg)
	case ":prop":
		return s.prop(arg)
	default:
		return "", fmt.Errorf("unknown command %s; try :help", cmd)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func (s *session) parse(src string) (*phc.Expr, error) {
	if src == "" {
		return nil, errors.New("missing expression")
	}
	return phc.Parse(src, s.popts...)
}

func (s *session) format(e *phc.Expr, r fmt.Formatter) string {
	var b strings.Builder
	if s.echo {
		fmt.Fprintf(&b, "%v : ", e)
	}
	fmt.Fprintf(&b, s.verb, r)
	return b.String()
}

func (s *session) eval(src string) (string, error) {
	e, err := s.parse(src)
	if err != nil {
		return "", err
	}
	r, err := s.ctx.Eval(e, s.scope)
	if err != nil {
		return "", err
	}
	return s.format(e, r), nil
}

func (s *session) let(arg string) (string, error) {
	d := strings.SplitN(arg, "=", 2)
	if len(d) != 2 {
		return "", errors.New(`usage: :let name = expr`)
	}
	name := strings.TrimSpace(d[0])
	if !isName(name) {
		return "", fmt.Errorf("%q is not a variable name", name)
	}
	e, err := s.parse(strings.TrimSpace(d[1]))
	if err != nil {
		return "", err
	}
	r, err := s.ctx.Eval(e, s.scope)
	if err != nil {
		return "", err
	}
	s.scope.Set(name, r)
	s.log.Debug().Str("name", name).Stringer("value", r).Msg("assigned")
	return name + " = " + s.format(e, r), nil
}

// isName reports whether s is exactly one identifier token.
func isName(s string) bool {
	toks := phc.Tokenize(s)
	return len(toks) == 1 && toks[0].Kind == phc.TokenIdent
}

func (s *session) truth(arg string) (string, error) {
	e, err := s.parse(arg)
	if err != nil {
		return "", err
	}
	return logic.Truth(s.ctx, e, s.scope).String(), nil
}

func (s *session) prop(arg string) (string, error) {
	p, err := logic.ParseEnv(arg, logic.ScopeEnv(s.scope))
	if err != nil {
		return "", err
	}
	v, err := logic.Eval(p)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v = %t", p, v), nil
}

func (s *session) vars() string {
	var b strings.Builder
	for i, name := range s.scope.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(name)
		b.WriteString(" = ")
		fmt.Fprintf(&b, s.verb, s.scope.Lookup(name))
	}
	return b.String()
}

// complete proposes completions for the word at the end of line: commands at
// the start of a line, otherwise function and variable names.
func (s *session) complete(line string) []string {
	k := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r == ':' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	head, word := line[:k+1], line[k+1:]
	if word == "" {
		return nil
	}
	var cands []string
	if strings.HasPrefix(word, ":") {
		if head != "" {
			return nil
		}
		cands = commands
	} else {
		for _, f := range s.ctx.Funcs() {
			cands = append(cands, f+"(")
		}
		cands = append(cands, s.scope.Names()...)
	}
	var r []string
	for _, c := range cands {
		if strings.HasPrefix(c, strings.ToLower(word)) || strings.HasPrefix(c, word) {
			r = append(r, head+c)
		}
	}
	sort.Strings(r)
	return r
}

// script runs each line of in, printing results to out and errors to the log.
// It reports whether every line succeeded.
func (s *session) script(in io.Reader, out io.Writer) (bool, error) {
	ok := true
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		r, err := s.exec(sc.Text())
		if err == errQuit {
			break
		}
		if err != nil {
			s.log.Error().Int("line", n).Err(err).Msg("command failed")
			ok = false
			continue
		}
		if r != "" {
			fmt.Fprintln(out, r)
		}
	}
	return ok, sc.Err()
}

// repl runs an interactive loop with line editing until :quit or end of input.
func (s *session) repl(history string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				s.log.Warn().Str("file", history).Err(err).Msg("reading history")
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(history)
			if err != nil {
				s.log.Warn().Str("file", history).Err(err).Msg("saving history")
				return
			}
			ln.WriteHistory(f)
			f.Close()
		}()
	}
	for {
		line, err := ln.Prompt(prompt)
		switch {
		case err == liner.ErrPromptAborted:
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		r, err := s.exec(line)
		if err == errQuit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if r != "" {
			fmt.Println(r)
		}
	}
}
