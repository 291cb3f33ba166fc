package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/parsekit/kvlang"
)

// LineEncoder writes one tab-separated line per entry and list item:
//
//	entry	<line:col>	<key>	<kind>	<text or item count>
//	item	<line:col>	<key>[<index>...]	<kind>	<text or item count>
type LineEncoder struct {
	w   io.Writer
	doc *kvlang.Document
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *kvlang.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, entry := range e.doc.Entries {
		fmt.Fprintf(&sb, "entry\t%s\t%s\t%s\t%s\n",
			entry.Position,
			entry.Key,
			entry.Value.Kind,
			summary(entry.Value),
		)
		writeItems(&sb, entry.Key, entry.Value)
	}
	return []byte(sb.String()), nil
}

func writeItems(sb *strings.Builder, path string, v kvlang.Value) {
	for i, item := range v.Items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fmt.Fprintf(sb, "item\t%s\t%s\t%s\t%s\n",
			item.Position,
			itemPath,
			item.Kind,
			summary(item),
		)
		writeItems(sb, itemPath, item)
	}
}

func summary(v kvlang.Value) string {
	if v.Kind == kvlang.List {
		return fmt.Sprint(len(v.Items))
	}
	if v.Text == "" {
		return "-"
	}
	return v.Text
}
