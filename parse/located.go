package parse

// Located is a value paired with the position at which it started.
type Located[T any] struct {
	Value    T
	Position Position
}

// At pairs v with pos.
func At[T any](v T, pos Position) Located[T] {
	return Located[T]{Value: v, Position: pos}
}

// MapLocated transforms the payload of l and keeps its position, so a
// composite built from several tokens still reports where it began.
func MapLocated[A, B any](l Located[A], f func(A) B) Located[B] {
	return Located[B]{Value: f(l.Value), Position: l.Position}
}

// Values strips the positions from a sequence of located values.
func Values[T any](items []Located[T]) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Value
	}
	return out
}
