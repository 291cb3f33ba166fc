package format

import (
	"io"
	"strings"

	"github.com/dhamidi/parsekit/kvlang"
)

// KVEncoder prints a document back as kvlang in a canonical layout: one
// entry per line, single spaces around '=', lists on one line. Comments
// keep their place relative to the entries.
type KVEncoder struct {
	w   io.Writer
	doc *kvlang.Document
}

func NewKVEncoder(w io.Writer) *KVEncoder {
	return &KVEncoder{w: w}
}

func (e *KVEncoder) Encode(doc *kvlang.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *KVEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	entries, comments := e.doc.Entries, e.doc.Comments

	for len(entries) > 0 || len(comments) > 0 {
		if len(comments) > 0 && (len(entries) == 0 || comments[0].Position.Before(entries[0].Position)) {
			sb.WriteString("#" + comments[0].Text + "\n")
			comments = comments[1:]
			continue
		}

		entry := entries[0]
		entries = entries[1:]
		sb.WriteString(entry.Key)
		sb.WriteString(" = ")
		writeValue(&sb, entry.Value)
		if entry.Comment != nil {
			sb.WriteString(" #" + entry.Comment.Text)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func writeValue(sb *strings.Builder, v kvlang.Value) {
	switch v.Kind {
	case kvlang.String:
		sb.WriteString(`"` + v.Text + `"`)
	case kvlang.List:
		sb.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, item)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(v.Text)
	}
}
