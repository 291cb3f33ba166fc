// Package chars provides parsers over rune inputs for common character
// classes. Each class parser scans a run with parse.While and returns it as
// a string positioned at the start of the run; like While, they never fail
// and may return the empty string.
package chars

import (
	"sort"
	"strings"

	"github.com/dhamidi/parsekit/parse"
)

// Parser is a parser over runes producing a string.
type Parser = parse.Parser[rune, string]

// String joins a run of located runes.
func String(items []parse.Located[rune]) string {
	var sb strings.Builder
	sb.Grow(len(items))
	for _, item := range items {
		sb.WriteRune(item.Value)
	}
	return sb.String()
}

func run(p parse.Parser[rune, []parse.Located[rune]]) Parser {
	return parse.Transform(p, String)
}

func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func IsSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func IsLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func IsUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func IsLetter(r rune) bool {
	return IsLower(r) || IsUpper(r)
}

func IsLetterOrDigit(r rune) bool {
	return IsLetter(r) || IsDigit(r)
}

// Whitespace scans spaces, tabs, line feeds and carriage returns.
func Whitespace() Parser {
	return run(parse.While(IsWhitespace))
}

// Spaces scans spaces and tabs only.
func Spaces() Parser {
	return run(parse.While(IsSpace))
}

// Digits scans '0' through '9'.
func Digits() Parser {
	return run(parse.While(IsDigit))
}

// LowerCase scans 'a' through 'z'.
func LowerCase() Parser {
	return run(parse.While(IsLower))
}

// UpperCase scans 'A' through 'Z'.
func UpperCase() Parser {
	return run(parse.While(IsUpper))
}

// MixedCase scans ASCII letters of either case in any order.
func MixedCase() Parser {
	return run(parse.While(IsLetter))
}

// MixedCaseAndDigits scans ASCII letters and digits in any order.
func MixedCaseAndDigits() Parser {
	return run(parse.While(IsLetterOrDigit))
}

// StrUntil scans up to, not including, the first rune accepted by pred.
func StrUntil(pred func(rune) bool) Parser {
	return run(parse.Until(pred))
}

// StrUntilAny scans up to, not including, the first occurrence of any of
// stops.
func StrUntilAny(stops ...rune) Parser {
	return StrUntil(func(r rune) bool {
		for _, s := range stops {
			if r == s {
				return true
			}
		}
		return false
	})
}

// NonEmpty fails when p produces the empty string. Since the class parsers
// consume nothing when they produce nothing, no rollback is needed.
func NonEmpty(p Parser) Parser {
	return func(in parse.Input[rune]) parse.Result[string] {
		return parse.Then(p(in), func(v parse.Located[string]) parse.Result[string] {
			if v.Value == "" {
				return parse.Failure[string]()
			}
			return parse.Success(v)
		})
	}
}

// Rune matches the single rune r.
func Rune(r rune) parse.Parser[rune, rune] {
	return parse.Equal(r)
}

// Literal matches s exactly. On a partial match the input is rolled back.
func Literal(s string) Parser {
	runes := []rune(s)
	parsers := make([]parse.Parser[rune, rune], len(runes))
	for i, r := range runes {
		parsers[i] = parse.Equal(r)
	}
	return parse.Try(parse.Transform(parse.Sequence(parsers...), String))
}

var classes = map[string]func(rune) bool{
	"space": IsWhitespace,
	"digit": IsDigit,
	"lower": IsLower,
	"upper": IsUpper,
	"mixed": IsLetter,
	"alnum": IsLetterOrDigit,
}

// Class returns the predicate of a named character class: space, digit,
// lower, upper, mixed or alnum.
func Class(name string) (func(rune) bool, bool) {
	pred, ok := classes[name]
	return pred, ok
}

// ClassNames lists the names accepted by Class in sorted order.
func ClassNames() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
