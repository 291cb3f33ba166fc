package parse_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/dhamidi/parsekit/parse"
	"github.com/dhamidi/parsekit/parse/chars"
	"github.com/dhamidi/parsekit/parse/source"
)

func TestMapLocatedKeepsPosition(t *testing.T) {
	pos := parse.Position{Line: 7, Column: 3}
	l := parse.At("42", pos)

	m := parse.MapLocated(l, func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
	if m.Value != 42 || m.Position != pos {
		t.Errorf("got %+v", m)
	}
}

func TestResultMap(t *testing.T) {
	pos := parse.Position{Line: 2, Column: 5}

	v, ok := parse.Map(parse.SuccessAt("abc", pos), strings.ToUpper).Get()
	if !ok || v.Value != "ABC" || v.Position != pos {
		t.Errorf("got %+v ok=%v", v, ok)
	}

	if parse.Map(parse.Failure[string](), strings.ToUpper).Ok() {
		t.Error("Map turned a failure into a success")
	}
}

func TestThenShortCircuits(t *testing.T) {
	called := false
	next := func(parse.Located[int]) parse.Result[string] {
		called = true
		return parse.SuccessAt("x", parse.Start)
	}

	if parse.Then(parse.Failure[int](), next).Ok() {
		t.Error("expected failure")
	}
	if called {
		t.Error("continuation ran after a failure")
	}

	v, ok := parse.Then(parse.SuccessAt(1, parse.Start), next).Get()
	if !ok || v.Value != "x" || !called {
		t.Errorf("got %+v ok=%v called=%v", v, ok, called)
	}
}

func TestStatusChaining(t *testing.T) {
	steps := 0
	step := func(s parse.Status) func() parse.Status {
		return func() parse.Status {
			steps++
			return s
		}
	}

	if !parse.Matched.Then(step(parse.Matched)).Ok() || steps != 1 {
		t.Errorf("matched chain: steps=%d", steps)
	}
	if parse.Failed.Then(step(parse.Matched)).Ok() || steps != 1 {
		t.Errorf("failed chain ran its continuation: steps=%d", steps)
	}

	v := parse.At('a', parse.Start)
	if !parse.Return(parse.Matched, v).Ok() {
		t.Error("Return on a matched status failed")
	}
	if parse.Return(parse.Failed, v).Ok() {
		t.Error("Return on a failed status succeeded")
	}

	r := parse.ThenStatus(parse.SuccessAt(1, parse.Start), func(parse.Located[int]) parse.Status {
		return parse.Failed
	})
	if r.Ok() {
		t.Error("ThenStatus ignored the continuation's failure")
	}
}

func TestZeroResultIsFailure(t *testing.T) {
	var r parse.Result[string]
	if r.Ok() || r.Status().Ok() {
		t.Error("zero Result should be a failure")
	}
}

func TestPositionOrdering(t *testing.T) {
	a := parse.Position{Line: 1, Column: 9}
	b := parse.Position{Line: 2, Column: 0}

	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("unexpected ordering")
	}
	if b.String() != "2:0" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestRunAll(t *testing.T) {
	digits := chars.NonEmpty(chars.Digits())

	v, err := parse.RunAll[rune](source.FromString("2024"), digits)
	if err != nil || v.Value != "2024" {
		t.Fatalf("got %+v err=%v", v, err)
	}

	_, err = parse.RunAll[rune](source.FromString("x"), digits)
	var noMatch *parse.NoMatchError
	if !errors.As(err, &noMatch) || noMatch.Position != parse.Start {
		t.Fatalf("expected NoMatchError at start, got %v", err)
	}

	_, err = parse.RunAll[rune](source.FromString("12\n3"), digits)
	var incomplete *parse.IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if incomplete.Position != (parse.Position{Line: 1, Column: 2}) {
		t.Errorf("incomplete at %s, want 1:2", incomplete.Position)
	}
}

func TestRunRepanicsForeignPanics(t *testing.T) {
	defer func() {
		if x := recover(); x != "boom" {
			t.Errorf("recovered %v, want boom", x)
		}
	}()

	parse.Run[rune](source.FromString(""), func(parse.Input[rune]) parse.Result[int] {
		panic("boom")
	})
	t.Error("Run returned instead of panicking")
}

func TestTraceIsTransparent(t *testing.T) {
	in := source.FromString("abc1")

	v, ok := parse.Trace("letters", chars.LowerCase())(in).Get()
	if !ok || v.Value != "abc" {
		t.Fatalf("got %+v ok=%v", v, ok)
	}
	if parse.Trace("letter", parse.Satisfy(chars.IsLetter))(in).Ok() {
		t.Error("expected failure on '1'")
	}
}
