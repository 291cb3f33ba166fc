// Package kvlang parses "key = value" documents:
//
//	# service settings
//	name    = api-gateway
//	listen  = "0.0.0.0:8080"   # quoted values may contain spaces
//	upstreams = [alpha, beta,
//	             gamma]
//
// Values are bare words, double-quoted strings or bracketed lists of
// values. The full grammar is in kvlang.ebnf (see GrammarSource); the
// parser is more lenient in that keys may use any Unicode letter or digit
// and the last line needs no line end. A lone '\r' is not a line end.
package kvlang

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/dhamidi/parsekit/parse"
	"github.com/dhamidi/parsekit/parse/chars"
	"github.com/dhamidi/parsekit/parse/source"
)

type input = parse.Input[rune]

type grammar struct {
	spaces  parse.Recognizer[rune]
	ws      parse.Recognizer[rune]
	equals  parse.Recognizer[rune]
	eol     parse.Recognizer[rune]
	key     parse.Parser[rune, string]
	value   parse.Parser[rune, Value]
	comment parse.Parser[rune, Comment]
}

var lang = newGrammar()

func isKeyStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isKeyChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-'
}

func isWordChar(r rune) bool {
	switch r {
	case '_', '.', '-', '/', ':', '+', '@':
		return true
	}
	return chars.IsLetterOrDigit(r)
}

func endOfInput(in input) parse.Status {
	return parse.Status(in.EndOfInput())
}

// node turns a string parser into a Value positioned where the attempt
// started, which for quoted strings is the opening quote.
func node(kind Kind, p chars.Parser) parse.Parser[rune, Value] {
	return func(in input) parse.Result[Value] {
		pos := in.CurrentPosition()
		return parse.Then(p(in), func(v parse.Located[string]) parse.Result[Value] {
			return parse.SuccessAt(Value{Kind: kind, Text: v.Value, Position: pos}, pos)
		})
	}
}

func newGrammar() *grammar {
	g := &grammar{
		spaces: parse.Skip(chars.Spaces()),
		ws:     parse.Skip(chars.Whitespace()),
		equals: parse.Skip(chars.Rune('=')),
	}

	lf := parse.Skip(chars.Rune('\n'))
	crlf := parse.TryStatus(parse.All(parse.Skip(chars.Rune('\r')), lf))
	g.eol = func(in input) parse.Status {
		return lf(in) || crlf(in) || endOfInput(in)
	}

	g.key = parse.Trace("key", func(in input) parse.Result[string] {
		return parse.Then(parse.Satisfy(isKeyStart)(in), func(first parse.Located[rune]) parse.Result[string] {
			rest, _ := parse.While(isKeyChar)(in).Get()
			return parse.SuccessAt(string(first.Value)+chars.String(rest.Value), first.Position)
		})
	})

	hash := parse.Skip(chars.Rune('#'))
	g.comment = func(in input) parse.Result[Comment] {
		pos := in.CurrentPosition()
		return parse.AndThen(hash(in), func() parse.Result[Comment] {
			return parse.Map(chars.StrUntilAny('\n', '\r')(in), func(text string) Comment {
				return Comment{Text: text, Position: pos}
			})
		})
	}

	word := node(Word, chars.NonEmpty(parse.Transform(parse.While(isWordChar), chars.String)))

	quote := parse.Skip(chars.Rune('"'))
	quoted := node(String, parse.Try(parse.Between(quote, chars.StrUntilAny('"', '\n'), quote)))

	var value parse.Parser[rune, Value]
	ref := func(in input) parse.Result[Value] {
		return value(in)
	}

	element := func(in input) parse.Result[Value] {
		return parse.Then(ref(in), func(v parse.Located[Value]) parse.Result[Value] {
			return parse.Return(g.ws(in), v)
		})
	}
	open := parse.All(parse.Skip(chars.Rune('[')), g.ws)
	comma := parse.All(parse.Skip(chars.Rune(',')), g.ws)
	closing := parse.Skip(chars.Rune(']'))
	items := parse.Between(open, parse.SepBy(element, comma), closing)

	list := parse.Try(func(in input) parse.Result[Value] {
		pos := in.CurrentPosition()
		return parse.Map(items(in), func(vs []parse.Located[Value]) Value {
			return Value{Kind: List, Items: parse.Values(vs), Position: pos}
		})
	})

	value = parse.Trace("value", parse.Or(list, quoted, word))
	g.value = value

	return g
}

type parser struct {
	in   input
	name string
}

// Parse reads a document from in. It returns a *SyntaxError or a
// *DuplicateKeyError for invalid documents, and a wrapped *parse.ReadError
// when the input fails. Inputs with a Name method, like those from
// source.Open, have their name recorded in errors and in Document.Source.
func Parse(in parse.Input[rune]) (*Document, error) {
	p := &parser{in: in}
	if named, ok := in.(interface{ Name() string }); ok {
		p.name = named.Name()
	}

	var syntaxErr error
	res, err := parse.Run(in, func(in input) parse.Result[*Document] {
		pos := in.CurrentPosition()
		doc, err := p.document()
		if err != nil {
			syntaxErr = err
			return parse.Failure[*Document]()
		}
		return parse.SuccessAt(doc, pos)
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.describe(), err)
	}
	if syntaxErr != nil {
		return nil, syntaxErr
	}

	doc, _ := res.Get()
	return doc.Value, nil
}

// ParseString parses a document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(source.FromString(s))
}

// ParseFile parses the named file through a file-backed input.
func ParseFile(path string) (*Document, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func (p *parser) describe() string {
	if p.name == "" {
		return "input"
	}
	return p.name
}

func (p *parser) document() (*Document, error) {
	doc := &Document{Source: p.name}
	seen := make(map[string]*Entry)

	for {
		lang.ws(p.in)
		if p.in.EndOfInput() {
			return doc, nil
		}

		if c, ok := lang.comment(p.in).Get(); ok {
			doc.Comments = append(doc.Comments, c.Value)
			continue
		}

		e, err := p.entry()
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[e.Key]; ok {
			return nil, &DuplicateKeyError{
				Source:   p.name,
				Key:      e.Key,
				Position: e.Position,
				Previous: prev.Position,
			}
		}
		seen[e.Key] = e
		doc.Entries = append(doc.Entries, e)
	}
}

func (p *parser) entry() (*Entry, error) {
	key, ok := lang.key(p.in).Get()
	if !ok {
		return nil, p.expected("key")
	}

	lang.spaces(p.in)
	if !lang.equals(p.in) {
		return nil, p.expected("'='")
	}

	lang.spaces(p.in)
	val, ok := lang.value(p.in).Get()
	if !ok {
		return nil, p.expected("value")
	}

	e := &Entry{Key: key.Value, Value: val.Value, Position: key.Position}

	lang.spaces(p.in)
	if c, ok := lang.comment(p.in).Get(); ok {
		e.Comment = &c.Value
	}

	if !lang.eol(p.in) {
		return nil, p.expected("end of line")
	}
	return e, nil
}

// expected reports a failure at the cursor. Every grammar parser leaves
// the input untouched when it fails, so the cursor is where the failed
// attempt began.
func (p *parser) expected(what string) error {
	found := "end of input"
	if !p.in.EndOfInput() {
		found = strconv.QuoteRune(p.in.PeekToken().Value)
	}
	return &SyntaxError{
		Source:   p.name,
		Position: p.in.CurrentPosition(),
		Expected: what,
		Found:    found,
	}
}
