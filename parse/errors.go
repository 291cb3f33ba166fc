package parse

import "fmt"

// EndOfInputError is raised (as a panic) when a token is requested from an
// exhausted input. It signals a bug in the calling parser, not a parse
// failure; Run turns it into an error.
type EndOfInputError struct {
	Position Position
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("%s: read past end of input", e.Position)
}

// ReadError is raised (as a panic) when an input backed by an I/O source
// fails to read or seek. Run turns it into an error.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read input at offset %d: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned by RunAll when the parser failed. Position is
// where the attempt started.
type NoMatchError struct {
	Position Position
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s: no match", e.Position)
}

// IncompleteError is returned by RunAll when the parser succeeded but left
// input unconsumed. Position is where the unconsumed input begins.
type IncompleteError struct {
	Position Position
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: unexpected input after end of parse", e.Position)
}
