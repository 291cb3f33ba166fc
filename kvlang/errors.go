package kvlang

import (
	"fmt"

	"github.com/dhamidi/parsekit/parse"
)

// SyntaxError reports the position where a required construct could not
// be parsed.
type SyntaxError struct {
	Source   string
	Position parse.Position
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", location(e.Source, e.Position), e.Expected, e.Found)
}

// DuplicateKeyError reports a key defined twice.
type DuplicateKeyError struct {
	Source   string
	Key      string
	Position parse.Position
	Previous parse.Position
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key %q (first defined at %s)", location(e.Source, e.Position), e.Key, e.Previous)
}

func location(source string, pos parse.Position) string {
	if source == "" {
		return pos.String()
	}
	return source + ":" + pos.String()
}
