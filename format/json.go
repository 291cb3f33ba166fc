package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/parsekit/kvlang"
	"github.com/dhamidi/parsekit/parse"
)

type JSONEncoder struct {
	w   io.Writer
	doc *kvlang.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *kvlang.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(e.buildDocument(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonDocument struct {
	Source   string        `json:"source,omitempty"`
	Entries  []jsonEntry   `json:"entries"`
	Comments []jsonComment `json:"comments,omitempty"`
}

type jsonEntry struct {
	Key      string       `json:"key"`
	Position jsonPosition `json:"position"`
	Value    jsonValue    `json:"value"`
	Comment  *jsonComment `json:"comment,omitempty"`
}

type jsonValue struct {
	Kind     string       `json:"kind"`
	Position jsonPosition `json:"position"`
	Text     *string      `json:"text,omitempty"`
	Items    []jsonValue  `json:"items,omitempty"`
}

type jsonComment struct {
	Text     string       `json:"text"`
	Position jsonPosition `json:"position"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *JSONEncoder) buildDocument() jsonDocument {
	d := e.doc
	data := jsonDocument{
		Source:  d.Source,
		Entries: make([]jsonEntry, len(d.Entries)),
	}
	for i, entry := range d.Entries {
		data.Entries[i] = jsonEntry{
			Key:      entry.Key,
			Position: toPosition(entry.Position),
			Value:    buildValue(entry.Value),
		}
		if entry.Comment != nil {
			c := buildComment(*entry.Comment)
			data.Entries[i].Comment = &c
		}
	}
	for _, c := range d.Comments {
		data.Comments = append(data.Comments, buildComment(c))
	}
	return data
}

func buildValue(v kvlang.Value) jsonValue {
	jv := jsonValue{
		Kind:     v.Kind.String(),
		Position: toPosition(v.Position),
	}
	if v.Kind != kvlang.List {
		text := v.Text
		jv.Text = &text
		return jv
	}
	jv.Items = make([]jsonValue, len(v.Items))
	for i, item := range v.Items {
		jv.Items[i] = buildValue(item)
	}
	return jv
}

func buildComment(c kvlang.Comment) jsonComment {
	return jsonComment{Text: c.Text, Position: toPosition(c.Position)}
}

func toPosition(p parse.Position) jsonPosition {
	return jsonPosition{Line: p.Line, Column: p.Column}
}
