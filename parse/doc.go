// Package parse is a parser-combinator engine over arbitrary token streams.
//
// # Overview
//
// A parser is a function from a shared input to a result:
//
//	type Parser[T, A any] func(in Input[T]) Result[A]
//
// T is the token type (runes for text, but any type works) and A is the
// value the parser produces. Larger parsers are built by composing smaller
// ones with the combinators in this package:
//
//	Token, Satisfy, Equal, Peek     single tokens
//	Try                             backtracking
//	Or                              ordered alternation
//	Sequence, All, Between          ordered composition
//	While, Until, Many, SepBy       repetition
//
// # Results
//
// A Result is either a success carrying a Located value or a failure
// carrying nothing. Failures are ordinary values, never errors, and cost
// nothing to produce. Status is the payload-free variant used by
// Recognizers, which parse without producing a value.
//
// Every value is Located: it carries the Position where it started. The
// result of a composite parser is positioned at the start of the
// composite, not at its last token.
//
// # Input and Backtracking
//
// An Input is a token stream with a single cursor. Combinators peek before
// they consume, so a rejected token is never removed from the stream.
// When a parser may consume tokens and then fail, Try rolls the cursor
// back using a RestorePoint:
//
//	assign := parse.Try(parse.Sequence(chars.LowerCase(), chars.Literal("=")))
//	word := parse.Or(assign, parse.Sequence(chars.LowerCase()))
//
// Or does not backtrack on its own. Alternatives that can fail after
// consuming input must be wrapped in Try.
//
// # Sessions
//
// A parse session is one Input and the parsers run against it. Sessions
// are single-threaded. Reading past the end of an Input is a programming
// error and panics with an *EndOfInputError; Run recovers it, together
// with I/O failures reported as *ReadError, and returns it as an error.
package parse
