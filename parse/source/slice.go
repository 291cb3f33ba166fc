// Package source provides parse.Input implementations over in-memory token
// slices, strings and seekable readers.
package source

import "github.com/dhamidi/parsekit/parse"

// Slice is an in-memory input over a slice of tokens. Its offset is the
// index of the next token.
type Slice[T any] struct {
	tokens    []T
	pos       int
	line      int
	column    int
	lineBreak func(T) bool
	open      int
}

// Option configures a Slice.
type Option[T any] func(*Slice[T])

// WithLineBreak makes every token accepted by f end a line. Without it the
// whole input is one line and the column equals the offset.
func WithLineBreak[T any](f func(T) bool) Option[T] {
	return func(s *Slice[T]) {
		s.lineBreak = f
	}
}

// FromSlice creates an input over tokens. The slice is not copied and must
// not be modified while the input is in use.
func FromSlice[T any](tokens []T, opts ...Option[T]) *Slice[T] {
	s := &Slice[T]{
		tokens: tokens,
		line:   parse.Start.Line,
		column: parse.Start.Column,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromString creates a rune input over s with lines ending at '\n'.
func FromString(s string) *Slice[rune] {
	return FromSlice([]rune(s), WithLineBreak(isLineFeed))
}

func isLineFeed(r rune) bool {
	return r == '\n'
}

func (s *Slice[T]) CurrentLine() int {
	return s.line
}

func (s *Slice[T]) CurrentColumn() int {
	return s.column
}

func (s *Slice[T]) CurrentOffset() int64 {
	return int64(s.pos)
}

func (s *Slice[T]) CurrentPosition() parse.Position {
	return parse.Position{Line: s.line, Column: s.column}
}

func (s *Slice[T]) EndOfInput() bool {
	return s.pos >= len(s.tokens)
}

func (s *Slice[T]) NextToken() parse.Located[T] {
	tok := s.PeekToken()
	s.pos++
	if s.lineBreak != nil && s.lineBreak(tok.Value) {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return tok
}

func (s *Slice[T]) PeekToken() parse.Located[T] {
	if s.EndOfInput() {
		panic(&parse.EndOfInputError{Position: s.CurrentPosition()})
	}
	return parse.At(s.tokens[s.pos], s.CurrentPosition())
}

func (s *Slice[T]) CreateRestorePoint() parse.RestorePoint {
	pos, line, column := s.pos, s.line, s.column
	return newPoint(func() {
		s.pos, s.line, s.column = pos, line, column
	}, &s.open)
}

// OpenRestorePoints is the number of restore points created and not yet
// released.
func (s *Slice[T]) OpenRestorePoints() int {
	return s.open
}

// Remaining returns the unconsumed tokens.
func (s *Slice[T]) Remaining() []T {
	return s.tokens[s.pos:]
}
