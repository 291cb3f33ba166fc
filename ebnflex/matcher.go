// Package ebnflex matches input against EBNF grammars read by
// golang.org/x/exp/ebnf.
//
// Every production is compiled into a parse.Recognizer over runes, so a
// grammar can be run directly against any parse.Input[rune]. Alternatives
// are tried in order and the first that matches wins; repetitions are
// greedy. Productions are matched character by character, without any
// implicit whitespace between tokens.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/parsekit/parse"
	"github.com/dhamidi/parsekit/parse/chars"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("parsekit.ebnflex")

type input = parse.Input[rune]

// Token is a span of input matched by a token production.
type Token struct {
	Kind     string
	Text     string
	Position parse.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Text)
}

// ErrorKind is the kind of single-rune tokens that no token production
// matched.
const ErrorKind = "ERROR"

// visit identifies a production being matched at an offset, for cycle
// detection.
type visit struct {
	name   string
	offset int64
}

// Matcher runs the productions of a grammar. It is not safe for
// concurrent use.
type Matcher struct {
	grammar  ebnf.Grammar
	rules    map[string]parse.Recognizer[rune]
	visiting map[visit]bool
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

func New(grammar ebnf.Grammar) *Matcher {
	m := &Matcher{
		grammar:  grammar,
		rules:    make(map[string]parse.Recognizer[rune], len(grammar)),
		visiting: make(map[visit]bool),
	}
	for name, prod := range grammar {
		m.rules[name] = m.compile(prod.Expr)
	}
	return m
}

// Production returns the recognizer for the named production.
func (m *Matcher) Production(name string) (parse.Recognizer[rune], bool) {
	if _, ok := m.rules[name]; !ok {
		return nil, false
	}
	return m.ref(name), true
}

// Match requires the start production to match all of in. The error is a
// *parse.NoMatchError or *parse.IncompleteError for input the grammar
// rejects.
func (m *Matcher) Match(in parse.Input[rune], start string) error {
	rule, ok := m.Production(start)
	if !ok {
		return fmt.Errorf("no production %q", start)
	}

	if _, err := parse.RunAll(in, parse.Lift(rule)); err != nil {
		return fmt.Errorf("%s: %w", start, err)
	}
	return nil
}

// TokenKinds lists the token productions in sorted order. Token
// productions are those whose names start with an upper-case letter.
func (m *Matcher) TokenKinds() []string {
	var kinds []string
	for name, prod := range m.grammar {
		if prod.Expr == nil || !isTokenName(name) {
			continue
		}
		kinds = append(kinds, name)
	}
	sort.Strings(kinds)
	return kinds
}

func isTokenName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// NextToken consumes the longest match among the token productions. Ties
// go to the kind that sorts first. When nothing matches, a single rune is
// consumed as an ErrorKind token. It returns io.EOF at end of input.
func (m *Matcher) NextToken(in parse.Input[rune]) (Token, error) {
	pos := in.CurrentPosition()
	if in.EndOfInput() {
		return Token{Kind: "EOF", Position: pos}, io.EOF
	}

	start := in.CurrentOffset()
	var best string
	var bestEnd int64

	for _, kind := range m.TokenKinds() {
		end := m.reach(in, kind)
		if end > start && (best == "" || end > bestEnd) {
			best, bestEnd = kind, end
		}
	}

	if best == "" {
		r := in.NextToken()
		return Token{Kind: ErrorKind, Text: string(r.Value), Position: pos}, nil
	}

	var text []rune
	for in.CurrentOffset() < bestEnd {
		text = append(text, in.NextToken().Value)
	}
	return Token{Kind: best, Text: string(text), Position: pos}, nil
}

// reach reports the offset the named production would reach, leaving the
// input unchanged.
func (m *Matcher) reach(in input, name string) int64 {
	rp := in.CreateRestorePoint()
	defer rp.Release()
	defer rp.Restore()

	start := in.CurrentOffset()
	if !m.ref(name)(in) {
		return start
	}
	return in.CurrentOffset()
}

// Tokenize reads tokens until the end of in. Read failures of the input
// are returned as errors.
func (m *Matcher) Tokenize(in parse.Input[rune]) ([]Token, error) {
	var tokens []Token
	_, err := parse.Run(in, func(in input) parse.Result[struct{}] {
		for {
			tok, err := m.NextToken(in)
			if err == io.EOF {
				return parse.SuccessAt(struct{}{}, parse.Start)
			}
			log.Debugf("token %s", tok)
			tokens = append(tokens, tok)
		}
	})
	return tokens, err
}

func (m *Matcher) ref(name string) parse.Recognizer[rune] {
	return func(in input) parse.Status {
		rule, ok := m.rules[name]
		if !ok {
			return parse.Failed
		}

		// A production that reaches itself without consuming input would
		// never terminate.
		key := visit{name: name, offset: in.CurrentOffset()}
		if m.visiting[key] {
			return parse.Failed
		}
		m.visiting[key] = true
		defer delete(m.visiting, key)

		return rule(in)
	}
}

func (m *Matcher) compile(expr ebnf.Expression) parse.Recognizer[rune] {
	switch e := expr.(type) {
	case nil:
		return matched

	case *ebnf.Token:
		return parse.Skip(chars.Literal(e.String))

	case *ebnf.Range:
		lo, hi := []rune(e.Begin.String), []rune(e.End.String)
		if len(lo) != 1 || len(hi) != 1 {
			return failed
		}
		return parse.Skip(parse.Satisfy(func(r rune) bool {
			return r >= lo[0] && r <= hi[0]
		}))

	case ebnf.Sequence:
		items := make([]parse.Recognizer[rune], len(e))
		for i, item := range e {
			items[i] = m.compile(item)
		}
		return parse.TryStatus(parse.All(items...))

	case ebnf.Alternative:
		alts := make([]parse.Parser[rune, struct{}], len(e))
		for i, alt := range e {
			alts[i] = parse.Lift(m.compile(alt))
		}
		return parse.Skip(parse.Or(alts...))

	case *ebnf.Repetition:
		return parse.SkipMany(m.compile(e.Body))

	case *ebnf.Option:
		body := m.compile(e.Body)
		return func(in input) parse.Status {
			body(in)
			return parse.Matched
		}

	case *ebnf.Group:
		return m.compile(e.Body)

	case *ebnf.Name:
		return m.ref(e.String)

	default:
		return failed
	}
}

func matched(input) parse.Status { return parse.Matched }

func failed(input) parse.Status { return parse.Failed }
