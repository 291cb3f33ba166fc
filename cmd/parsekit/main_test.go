package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScan(t *testing.T) {
	path := writeFile(t, "in.txt", "ab 12\ncd")

	tests := []struct {
		class string
		gaps  bool
		want  string
	}{
		{"alnum", false, "1:0\t\"ab\"\n1:3\t\"12\"\n2:0\t\"cd\"\n"},
		{"digit", false, "1:3\t\"12\"\n"},
		{"digit", true, "1:0\tgap\t\"ab \"\n1:3\t\"12\"\n1:5\tgap\t\"\\ncd\"\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := runScan(&buf, path, tt.class, tt.gaps); err != nil {
			t.Fatalf("%s: %v", tt.class, err)
		}
		if buf.String() != tt.want {
			t.Errorf("class=%s gaps=%v:\ngot  %q\nwant %q", tt.class, tt.gaps, buf.String(), tt.want)
		}
	}
}

func TestRunScanErrors(t *testing.T) {
	path := writeFile(t, "in.txt", "x")

	if err := runScan(&bytes.Buffer{}, path, "hex", false); err == nil || !strings.Contains(err.Error(), "unknown class") {
		t.Errorf("got %v", err)
	}
	if err := runScan(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing"), "alnum", false); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestRunParse(t *testing.T) {
	good := writeFile(t, "good.kv", "a = [x, \"y z\"]\n")
	bad := writeFile(t, "bad.kv", "a =\n")

	var stdout, stderr bytes.Buffer
	if err := runParse(&stdout, &stderr, "kv", []string{good}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "a = [x, \"y z\"]\n" {
		t.Errorf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	err := runParse(&stdout, &stderr, "text", []string{bad, good})
	if err == nil || err.Error() != "1 of 2 files failed to parse" {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(stderr.String(), bad+":1:3: expected value") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "entry\t1:0\ta\tlist\t2\n") {
		t.Errorf("stdout = %q", stdout.String())
	}

	if err := runParse(&stdout, &stderr, "xml", []string{good}); err == nil {
		t.Error("expected error for an unknown format")
	}
}

func TestCheckGrammar(t *testing.T) {
	path := writeFile(t, "g.ebnf", "start = item { item } .\nitem = \"a\" | \"b\" .\n")

	var buf bytes.Buffer
	if err := checkGrammar(&buf, path, "start"); err != nil {
		t.Fatalf("check: %v\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "ok (2 productions)") {
		t.Errorf("output = %q", buf.String())
	}

	bad := writeFile(t, "bad.ebnf", "start = missing .\n")
	buf.Reset()
	if err := checkGrammar(&buf, bad, "start"); err == nil {
		t.Error("expected verification error")
	}
	if !strings.Contains(buf.String(), "missing") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestMatchGrammar(t *testing.T) {
	doc := writeFile(t, "app.kv", "name = web\nports = [80, 443]\n")

	var buf bytes.Buffer
	if err := matchGrammar(&buf, "", "document", doc); err != nil {
		t.Fatal(err)
	}
	if buf.String() != doc+": ok\n" {
		t.Errorf("output = %q", buf.String())
	}

	bad := writeFile(t, "bad.kv", "name web\n")
	if err := matchGrammar(&buf, "", "document", bad); err == nil {
		t.Error("expected a mismatch")
	}
}

func TestTokenizeCommand(t *testing.T) {
	grammar := writeFile(t, "tokens.ebnf", "Word = \"a\" … \"z\" { \"a\" … \"z\" } .\nGap = \" \" .\n")
	path := writeFile(t, "in.txt", "hi yo")

	var buf bytes.Buffer
	if err := tokenize(&buf, grammar, path); err != nil {
		t.Fatal(err)
	}
	want := "1:0\tWord\t\"hi\"\n1:2\tGap\t\" \"\n1:3\tWord\t\"yo\"\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTokenizeRequiresTokenGrammar(t *testing.T) {
	path := writeFile(t, "in.txt", "hi")
	lower := writeFile(t, "lower.ebnf", "word = \"a\" … \"z\" { \"a\" … \"z\" } .\n")

	tests := []struct {
		name    string
		grammar string
		want    string
	}{
		{"no grammar", "", "needs a grammar file"},
		{"no token productions", lower, "no token productions"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		err := tokenize(&buf, tt.grammar, path)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want %q", tt.name, err, tt.want)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: output = %q", tt.name, buf.String())
		}
	}
}

func TestTokensCommandWithoutGrammar(t *testing.T) {
	path := writeFile(t, "in.txt", "hi")

	cmd := newGrammarTokensCmd()
	cmd.SetArgs([]string{path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--grammar") {
		t.Errorf("err = %v", err)
	}
}
