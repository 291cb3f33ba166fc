package kvlang

import "github.com/dhamidi/parsekit/parse"

// Kind classifies a Value.
type Kind int

const (
	Word Kind = iota
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case String:
		return "string"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the right-hand side of an entry. Text is set for words and
// strings, Items for lists.
type Value struct {
	Kind     Kind
	Text     string
	Items    []Value
	Position parse.Position
}

// Interface converts v to a string or a []any of converted items.
func (v Value) Interface() any {
	if v.Kind != List {
		return v.Text
	}
	items := make([]any, len(v.Items))
	for i, item := range v.Items {
		items[i] = item.Interface()
	}
	return items
}

// Comment is a '#' comment. Text excludes the '#'.
type Comment struct {
	Text     string
	Position parse.Position
}

// Entry is a single "key = value" line.
type Entry struct {
	Key      string
	Value    Value
	Comment  *Comment
	Position parse.Position
}

// Document is a parsed kvlang input. Comments holds the comments on lines
// of their own; trailing comments belong to their Entry.
type Document struct {
	Source   string
	Entries  []*Entry
	Comments []Comment
}

// Lookup returns the entry for key.
func (d *Document) Lookup(key string) (*Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Map converts the document to plain Go values keyed by entry key.
func (d *Document) Map() map[string]any {
	m := make(map[string]any, len(d.Entries))
	for _, e := range d.Entries {
		m[e.Key] = e.Value.Interface()
	}
	return m
}
