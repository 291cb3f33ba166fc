package chars

import (
	"reflect"
	"testing"

	"github.com/dhamidi/parsekit/parse"
	"github.com/dhamidi/parsekit/parse/source"
)

func TestClassParsers(t *testing.T) {
	tests := []struct {
		name  string
		p     Parser
		input string
		want  string
		rest  string
	}{
		{"digits", Digits(), "123abc", "123", "abc"},
		{"digits empty input", Digits(), "", "", ""},
		{"digits no match", Digits(), "abc", "", "abc"},
		{"lower", LowerCase(), "abcD", "abc", "D"},
		{"upper", UpperCase(), "ABc", "AB", "c"},
		{"mixed", MixedCase(), "aBcD1", "aBcD", "1"},
		{"mixed and digits", MixedCaseAndDigits(), "a1B2-", "a1B2", "-"},
		{"whitespace", Whitespace(), "   \t\n", "   \t\n", ""},
		{"whitespace with cr", Whitespace(), " \r\nx", " \r\n", "x"},
		{"spaces stop at newline", Spaces(), " \t\nx", " \t", "\nx"},
		{"until predicate", StrUntil(IsDigit), "abc9", "abc", "9"},
		{"until any", StrUntilAny(';', ','), "a b,c;", "a b", ",c;"},
		{"until any absent", StrUntilAny(';'), "abc", "abc", ""},
		{"literal", Literal("let"), "let x", "let", " x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := source.FromString(tt.input)
			v, ok := tt.p(in).Get()
			if !ok {
				t.Fatal("expected success")
			}
			if v.Value != tt.want {
				t.Errorf("got %q, want %q", v.Value, tt.want)
			}
			if v.Position != parse.Start {
				t.Errorf("position = %s, want %s", v.Position, parse.Start)
			}
			if rest := string(in.Remaining()); rest != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}
		})
	}
}

func TestWhitespaceConsumesEverything(t *testing.T) {
	in := source.FromString("   \t\n")

	Whitespace()(in)
	if !in.EndOfInput() {
		t.Fatal("expected end of input")
	}
	if in.CurrentPosition() != (parse.Position{Line: 2, Column: 0}) {
		t.Errorf("position = %s, want 2:0", in.CurrentPosition())
	}
}

func TestLiteralRollsBackPartialMatch(t *testing.T) {
	in := source.FromString("lex")

	if Literal("let")(in).Ok() {
		t.Fatal("expected failure")
	}
	if in.CurrentOffset() != 0 {
		t.Errorf("offset = %d, want 0", in.CurrentOffset())
	}
}

func TestNonEmpty(t *testing.T) {
	if NonEmpty(Digits())(source.FromString("x")).Ok() {
		t.Error("expected failure for an empty run")
	}
	if !NonEmpty(Digits())(source.FromString("7")).Ok() {
		t.Error("expected success")
	}
}

func TestRoundTripOnSmallGrammar(t *testing.T) {
	lower := NonEmpty(LowerCase())
	comma := parse.Skip(Rune(','))

	v, ok := parse.SepBy(lower, comma)(source.FromString("a,b,c")).Get()
	if !ok {
		t.Fatal("expected success")
	}
	if got := parse.Values(v.Value); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("got %q", got)
	}

	paren := parse.Between(parse.Skip(Rune('(')), LowerCase(), parse.Skip(Rune(')')))
	if w, ok := paren(source.FromString("(abc)")).Get(); !ok || w.Value != "abc" {
		t.Errorf("got %+v ok=%v", w, ok)
	}
	if paren(source.FromString("(abc")).Ok() {
		t.Error("expected failure on missing close")
	}
}

func TestClass(t *testing.T) {
	for _, name := range ClassNames() {
		if _, ok := Class(name); !ok {
			t.Errorf("Class(%q) not found", name)
		}
	}
	if _, ok := Class("emoji"); ok {
		t.Error("unexpected class")
	}

	pred, _ := Class("alnum")
	if !pred('Z') || !pred('0') || pred('_') {
		t.Error("alnum predicate mismatch")
	}
}
