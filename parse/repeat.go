package parse

// While consumes tokens as long as pred accepts them and returns them in
// order, positioned where scanning began. It never fails: an empty
// sequence is a valid result. The first rejected token is not consumed.
func While[T any](pred func(T) bool) Parser[T, []Located[T]] {
	token := Satisfy(pred)
	return func(in Input[T]) Result[[]Located[T]] {
		pos := in.CurrentPosition()
		items := make([]Located[T], 0)

		for {
			v, ok := token(in).Get()
			if !ok {
				break
			}
			items = append(items, v)
		}

		return SuccessAt(items, pos)
	}
}

// Until consumes tokens up to, not including, the first token accepted by
// pred.
func Until[T any](pred func(T) bool) Parser[T, []Located[T]] {
	return While(func(x T) bool { return !pred(x) })
}

// UntilValue consumes tokens up to, not including, the first token equal
// to v.
func UntilValue[T comparable](v T) Parser[T, []Located[T]] {
	return Until(func(x T) bool { return x == v })
}

// Many applies p until it fails and collects the successes, positioned at
// the start of the repetition. It never fails.
//
// Iterations are not wrapped in Try: p must not consume input when it
// fails. Repetition also stops when p succeeds without consuming anything,
// since it would succeed the same way forever; that empty success is not
// collected.
func Many[T, A any](p Parser[T, A]) Parser[T, []Located[A]] {
	return func(in Input[T]) Result[[]Located[A]] {
		pos := in.CurrentPosition()
		items := make([]Located[A], 0)

		for {
			offset := in.CurrentOffset()
			v, ok := p(in).Get()
			if !ok || in.CurrentOffset() == offset {
				break
			}
			items = append(items, v)
		}

		return SuccessAt(items, pos)
	}
}

// SkipMany is Many for recognizers. It always succeeds.
func SkipMany[T any](r Recognizer[T]) Recognizer[T] {
	return func(in Input[T]) Status {
		for {
			offset := in.CurrentOffset()
			if !r(in) || in.CurrentOffset() == offset {
				return Matched
			}
		}
	}
}

// SepBy parses zero or more p separated by sep, positioned at the start of
// the list. It never fails.
//
// A separator is only kept when the element after it parses: if sep
// matches but p then fails, both are rolled back and the list ends before
// the separator.
func SepBy[T, A any](p Parser[T, A], sep Recognizer[T]) Parser[T, []Located[A]] {
	next := Try(func(in Input[T]) Result[A] {
		return AndThen(sep(in), func() Result[A] {
			return p(in)
		})
	})

	return func(in Input[T]) Result[[]Located[A]] {
		pos := in.CurrentPosition()
		items := make([]Located[A], 0)

		first, ok := p(in).Get()
		if !ok {
			return SuccessAt(items, pos)
		}
		items = append(items, first)

		for {
			v, ok := next(in).Get()
			if !ok {
				break
			}
			items = append(items, v)
		}

		return SuccessAt(items, pos)
	}
}
