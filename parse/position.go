package parse

import "fmt"

// Position is a line/column coordinate in an input.
// Lines start at 1, columns at 0.
type Position struct {
	Line   int
	Column int
}

// Start is the position of the first token of any input.
var Start = Position{Line: 1, Column: 0}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}
