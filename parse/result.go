package parse

// Result is the outcome of a parse step: either a success carrying a
// located value, or a failure carrying nothing.
//
// The zero Result is a failure. The payload of a success is only reachable
// through Get, which also reports whether there is one.
type Result[T any] struct {
	value Located[T]
	ok    bool
}

// Success wraps a located value into a successful result.
func Success[T any](v Located[T]) Result[T] {
	return Result[T]{value: v, ok: true}
}

// SuccessAt is Success(At(v, pos)).
func SuccessAt[T any](v T, pos Position) Result[T] {
	return Success(At(v, pos))
}

// Failure returns a failed result.
func Failure[T any]() Result[T] {
	return Result[T]{}
}

// Ok reports whether the step succeeded.
func (r Result[T]) Ok() bool {
	return r.ok
}

// Get returns the located value and true on success, or the zero value and
// false on failure.
func (r Result[T]) Get() (Located[T], bool) {
	return r.value, r.ok
}

// Status drops the payload and keeps only success or failure.
func (r Result[T]) Status() Status {
	return Status(r.ok)
}

// Then calls next with the value of r when r succeeded and returns its
// result. A failed r short-circuits to failure without calling next.
func Then[A, B any](r Result[A], next func(Located[A]) Result[B]) Result[B] {
	if !r.ok {
		return Failure[B]()
	}
	return next(r.value)
}

// ThenStatus is Then for continuations that produce no value.
func ThenStatus[A any](r Result[A], next func(Located[A]) Status) Status {
	if !r.ok {
		return Failed
	}
	return next(r.value)
}

// Map transforms the payload of a successful result, keeping its position.
func Map[A, B any](r Result[A], f func(A) B) Result[B] {
	if !r.ok {
		return Failure[B]()
	}
	return Success(MapLocated(r.value, f))
}

// Status is the outcome of a parse step that produces no value.
type Status bool

const (
	Failed  Status = false
	Matched Status = true
)

// Ok reports whether the step succeeded.
func (s Status) Ok() bool {
	return bool(s)
}

// Then runs next when s succeeded.
func (s Status) Then(next func() Status) Status {
	if !s {
		return Failed
	}
	return next()
}

// AndThen runs next when s succeeded and returns its result.
func AndThen[B any](s Status, next func() Result[B]) Result[B] {
	if !s {
		return Failure[B]()
	}
	return next()
}

// Return lifts v into a successful result if s succeeded. It is used to
// keep one value while discarding the outcome of a later step, as in
// Between.
func Return[B any](s Status, v Located[B]) Result[B] {
	if !s {
		return Failure[B]()
	}
	return Success(v)
}
