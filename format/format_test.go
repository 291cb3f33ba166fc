package format

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/parsekit/kvlang"
)

const sample = `# service settings
name = web   # the public name
listen = "0.0.0.0:8080"

# backends
upstreams = [alpha, [beta, "gamma delta"]]
empty = []
`

func mustParse(t *testing.T, text string) *kvlang.Document {
	t.Helper()
	doc, err := kvlang.ParseString(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestKVRoundTrip(t *testing.T) {
	doc := mustParse(t, sample)

	var buf bytes.Buffer
	if err := NewKVEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	want := `# service settings
name = web # the public name
listen = "0.0.0.0:8080"
# backends
upstreams = [alpha, [beta, "gamma delta"]]
empty = []
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	again := mustParse(t, buf.String())
	if !reflect.DeepEqual(again.Map(), doc.Map()) {
		t.Errorf("reparsed map differs: %#v", again.Map())
	}
	if len(again.Comments) != len(doc.Comments) {
		t.Errorf("got %d comments, want %d", len(again.Comments), len(doc.Comments))
	}
}

func TestJSONEncoder(t *testing.T) {
	doc := mustParse(t, sample)

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatal(err)
	}

	var got jsonDocument
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got.Entries) != 4 || len(got.Comments) != 2 {
		t.Fatalf("got %d entries, %d comments", len(got.Entries), len(got.Comments))
	}

	name := got.Entries[0]
	if name.Key != "name" || name.Value.Kind != "word" || name.Value.Text == nil || *name.Value.Text != "web" {
		t.Errorf("name = %+v", name)
	}
	if name.Comment == nil || name.Comment.Text != " the public name" {
		t.Errorf("name comment = %+v", name.Comment)
	}
	if name.Position != (jsonPosition{Line: 2, Column: 0}) {
		t.Errorf("name position = %+v", name.Position)
	}

	up := got.Entries[2].Value
	if up.Kind != "list" || len(up.Items) != 2 || up.Items[1].Kind != "list" {
		t.Errorf("upstreams = %+v", up)
	}

	empty := got.Entries[3].Value
	if empty.Text != nil || len(empty.Items) != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestLineEncoder(t *testing.T) {
	doc := mustParse(t, "k = [a, \"\"]\nn = 1\n")

	text, err := (&LineEncoder{doc: doc}).MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"entry\t1:0\tk\tlist\t2",
		"item\t1:5\tk[0]\tword\ta",
		"item\t1:8\tk[1]\tstring\t-",
		"entry\t2:0\tn\tword\t1",
	}
	if got := strings.Split(strings.TrimSuffix(string(text), "\n"), "\n"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"json", "text", "kv"} {
		if _, err := New(name, &bytes.Buffer{}); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for an unknown format")
	}
}
