package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/parsekit/parse"
	"github.com/dhamidi/parsekit/parse/chars"
	"github.com/dhamidi/parsekit/parse/source"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *options) *cobra.Command {
	var class string
	var gaps bool

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Split a file into runs of a character class",
		Long: "Scan reads a file through a seekable input and prints every run of\n" +
			"characters in the given class with its position. Classes: " + strings.Join(chars.ClassNames(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("class") {
				class = opts.cfg.Scan.Class
			}
			if !cmd.Flags().Changed("gaps") {
				gaps = opts.cfg.Scan.Gaps
			}
			return runScan(cmd.OutOrStdout(), args[0], class, gaps)
		},
	}

	cmd.Flags().StringVarP(&class, "class", "c", "alnum", "character class to scan for")
	cmd.Flags().BoolVar(&gaps, "gaps", false, "also print the text between runs")

	return cmd
}

type span struct {
	text  string
	match bool
}

func scanner(pred func(rune) bool) parse.Parser[rune, []parse.Located[span]] {
	toSpan := func(match bool) func(string) span {
		return func(s string) span {
			return span{text: s, match: match}
		}
	}
	match := parse.Transform(chars.NonEmpty(chars.StrUntil(func(r rune) bool { return !pred(r) })), toSpan(true))
	gap := parse.Transform(chars.NonEmpty(chars.StrUntil(pred)), toSpan(false))
	return parse.Many(parse.Or(match, gap))
}

func runScan(w io.Writer, path, class string, gaps bool) error {
	pred, ok := chars.Class(class)
	if !ok {
		return fmt.Errorf("unknown class %q, want one of %s", class, strings.Join(chars.ClassNames(), ", "))
	}

	f, err := source.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := parse.Run[rune](f, scanner(pred))
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	spans, _ := res.Get()
	for _, s := range spans.Value {
		switch {
		case s.Value.match:
			fmt.Fprintf(w, "%s\t%q\n", s.Position, s.Value.text)
		case gaps:
			fmt.Fprintf(w, "%s\tgap\t%q\n", s.Position, s.Value.text)
		}
	}
	return nil
}
