package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/parsekit/ebnflex"
	"github.com/dhamidi/parsekit/kvlang"
	"github.com/dhamidi/parsekit/parse/source"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the kvlang grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(kvlang.GrammarSource())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarMatchCmd())
	cmd.AddCommand(newGrammarTokensCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the kvlang grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if _, err := kvlang.Grammar(); err != nil {
					printErrors(cmd.OutOrStdout(), err)
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "kvlang.ebnf: ok")
				return nil
			}
			return checkGrammar(cmd.OutOrStdout(), args[0], startProduction)
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func checkGrammar(w io.Writer, filename, start string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		printErrors(w, err)
		return err
	}

	if start != "" {
		if err := ebnf.Verify(grammar, start); err != nil {
			printErrors(w, err)
			return err
		}
	}

	fmt.Fprintf(w, "%s: ok (%d productions)\n", filename, len(grammar))
	return nil
}

func newGrammarMatchCmd() *cobra.Command {
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:   "match <file>",
		Short: "Check that a file is matched by a grammar (default: the kvlang grammar)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return matchGrammar(cmd.OutOrStdout(), grammarFile, startProduction, args[0])
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file")
	cmd.Flags().StringVar(&startProduction, "start", kvlang.StartProduction, "production the whole file must match")

	return cmd
}

func newGrammarTokensCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Split a file into tokens using the upper-case productions of a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tokenize(cmd.OutOrStdout(), grammarFile, args[0])
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file with token productions")

	return cmd
}

func loadMatcher(grammarFile string) (*ebnflex.Matcher, error) {
	if grammarFile == "" {
		g, err := kvlang.Grammar()
		if err != nil {
			return nil, err
		}
		return ebnflex.New(g), nil
	}

	g, err := ebnflex.LoadGrammar(grammarFile)
	if err != nil {
		return nil, err
	}
	return ebnflex.New(g), nil
}

func matchGrammar(w io.Writer, grammarFile, start, path string) error {
	m, err := loadMatcher(grammarFile)
	if err != nil {
		return err
	}

	f, err := source.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := m.Match(f, start); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(w, "%s: ok\n", path)
	return nil
}

// tokenize needs an explicit grammar: the kvlang grammar has no token
// productions.
func tokenize(w io.Writer, grammarFile, path string) error {
	if grammarFile == "" {
		return errors.New("tokens needs a grammar file (--grammar)")
	}
	m, err := loadMatcher(grammarFile)
	if err != nil {
		return err
	}
	if len(m.TokenKinds()) == 0 {
		return fmt.Errorf("%s: no token productions (names starting with an upper-case letter)", grammarFile)
	}

	f, err := source.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tokens, err := m.Tokenize(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Position, tok.Kind, tok.Text)
	}
	return nil
}

// printErrors prints one line per error in the scanner's error lists, which
// are slices of errors.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
