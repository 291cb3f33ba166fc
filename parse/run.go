package parse

// Run applies p to in. A failed parse is reported through the returned
// result; err is non-nil only when the session was aborted by an
// *EndOfInputError or a *ReadError raised from the input. Other panics
// are not recovered.
func Run[T, A any](in Input[T], p Parser[T, A]) (res Result[A], err error) {
	defer func() {
		if x := recover(); x != nil {
			switch e := x.(type) {
			case *EndOfInputError:
				err = e
			case *ReadError:
				err = e
			default:
				panic(x)
			}
			res = Failure[A]()
		}
	}()

	return p(in), nil
}

// RunAll applies p to in and requires it to consume the whole input.
// It returns a *NoMatchError when p fails and an *IncompleteError when
// tokens remain afterwards.
func RunAll[T, A any](in Input[T], p Parser[T, A]) (Located[A], error) {
	start := in.CurrentPosition()

	res, err := Run(in, p)
	if err != nil {
		return Located[A]{}, err
	}

	v, ok := res.Get()
	if !ok {
		return Located[A]{}, &NoMatchError{Position: start}
	}
	if !in.EndOfInput() {
		return v, &IncompleteError{Position: in.CurrentPosition()}
	}
	return v, nil
}
