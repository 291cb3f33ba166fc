package parse

// Parser consumes tokens of type T from an input and produces an A.
// A parser that fails should leave the input where it found it; wrap it in
// Try when it may consume tokens before failing.
type Parser[T, A any] func(in Input[T]) Result[A]

// Recognizer is a parser that produces no value.
type Recognizer[T any] func(in Input[T]) Status

// Try runs p and rolls the input back to where it was if p fails.
// The restore point is released on every exit path, including a panic
// escaping p.
func Try[T, A any](p Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[A] {
		rp := in.CreateRestorePoint()
		defer rp.Release()

		r := p(in)
		if !r.Ok() {
			rp.Restore()
		}
		return r
	}
}

// TryStatus is Try for recognizers.
func TryStatus[T any](r Recognizer[T]) Recognizer[T] {
	return func(in Input[T]) Status {
		rp := in.CreateRestorePoint()
		defer rp.Release()

		s := r(in)
		if !s.Ok() {
			rp.Restore()
		}
		return s
	}
}

// Token consumes the next token. It fails only at end of input.
func Token[T any]() Parser[T, T] {
	return func(in Input[T]) Result[T] {
		if in.EndOfInput() {
			return Failure[T]()
		}
		return Success(in.NextToken())
	}
}

// Satisfy consumes the next token if pred accepts it. The token is peeked
// first, so a rejected token stays in the input.
func Satisfy[T any](pred func(T) bool) Parser[T, T] {
	return func(in Input[T]) Result[T] {
		if in.EndOfInput() {
			return Failure[T]()
		}
		if !pred(in.PeekToken().Value) {
			return Failure[T]()
		}
		return Success(in.NextToken())
	}
}

// Equal consumes the next token if it equals v.
func Equal[T comparable](v T) Parser[T, T] {
	return Satisfy(func(x T) bool { return x == v })
}

// Peek returns the next token without consuming it. It fails only at end
// of input.
func Peek[T any]() Parser[T, T] {
	return func(in Input[T]) Result[T] {
		if in.EndOfInput() {
			return Failure[T]()
		}
		return Success(in.PeekToken())
	}
}

// Or tries each parser in order and returns the first success. Argument
// order is significant: when several alternatives would match, the
// leftmost wins. Or does not rewind the input between alternatives; an
// alternative that can fail after consuming tokens must be wrapped in Try.
func Or[T, A any](parsers ...Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[A] {
		for _, p := range parsers {
			if r := p(in); r.Ok() {
				return r
			}
		}
		return Failure[A]()
	}
}

// Sequence runs each parser in order and collects their results. The
// result is positioned where the first parser started. If any parser
// fails the whole sequence fails and no partial collection is returned.
func Sequence[T, A any](parsers ...Parser[T, A]) Parser[T, []Located[A]] {
	return func(in Input[T]) Result[[]Located[A]] {
		pos := in.CurrentPosition()
		items := make([]Located[A], 0, len(parsers))

		for _, p := range parsers {
			v, ok := p(in).Get()
			if !ok {
				return Failure[[]Located[A]]()
			}
			items = append(items, v)
		}

		return SuccessAt(items, pos)
	}
}

// All runs each recognizer in order and succeeds if all of them do.
func All[T any](recognizers ...Recognizer[T]) Recognizer[T] {
	return func(in Input[T]) Status {
		for _, r := range recognizers {
			if !r(in) {
				return Failed
			}
		}
		return Matched
	}
}

// Between runs open, p and close in that order and yields p's value. Any
// failure stops the chain; tokens consumed by earlier steps stay consumed,
// so wrap the call in Try when the bracketed form must be atomic.
func Between[T, A any](open Recognizer[T], p Parser[T, A], close Recognizer[T]) Parser[T, A] {
	return func(in Input[T]) Result[A] {
		return AndThen(open(in), func() Result[A] {
			return Then(p(in), func(v Located[A]) Result[A] {
				return Return(close(in), v)
			})
		})
	}
}

// BetweenSkip is Between for a bracketed recognizer.
func BetweenSkip[T any](open, r, close Recognizer[T]) Recognizer[T] {
	return func(in Input[T]) Status {
		return open(in).Then(func() Status {
			return r(in).Then(func() Status {
				return close(in)
			})
		})
	}
}

// Skip discards the value produced by p.
func Skip[T, A any](p Parser[T, A]) Recognizer[T] {
	return func(in Input[T]) Status {
		return p(in).Status()
	}
}

// Lift turns a recognizer into a parser yielding an empty struct positioned
// where the recognizer started.
func Lift[T any](r Recognizer[T]) Parser[T, struct{}] {
	return func(in Input[T]) Result[struct{}] {
		pos := in.CurrentPosition()
		return Return(r(in), At(struct{}{}, pos))
	}
}

// Transform maps the value produced by p with f.
func Transform[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(in Input[T]) Result[B] {
		return Map(p(in), f)
	}
}
