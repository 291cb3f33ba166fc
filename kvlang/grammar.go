package kvlang

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production a document is parsed from.
const StartProduction = "document"

//go:embed kvlang.ebnf
var grammarSource []byte

// GrammarSource returns the EBNF description of kvlang.
func GrammarSource() []byte {
	return bytes.Clone(grammarSource)
}

// Grammar parses and verifies the EBNF description of kvlang.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("kvlang.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, StartProduction); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}
