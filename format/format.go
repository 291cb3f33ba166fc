// Package format renders parsed kvlang documents.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/parsekit/kvlang"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *kvlang.Document) error
}

// New returns the encoder registered under name: "json", "text" or "kv".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text":
		return NewLineEncoder(w), nil
	case "kv":
		return NewKVEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
