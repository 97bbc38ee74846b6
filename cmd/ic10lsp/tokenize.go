package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ic10lsp/internal/diagfmt"
	"ic10lsp/internal/driver"
	"ic10lsp/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:          "tokenize <file>",
	Short:        "Dump the token stream of a file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	colored := colorEnabled(cmd)
	res, err := driver.TokenizeFile(args[0], maxDiagnostics(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, tok := range res.Tokens {
		if tok.Kind == token.EOL {
			continue
		}
		fmt.Fprintf(out, "%d:%d-%d\t%s\t%q\n",
			tok.Span.Line+1, tok.Span.Start, tok.Span.End, tok.Kind, tok.Text)
	}
	if res.Bag.Len() > 0 {
		fmt.Fprintln(out)
		diagfmt.Pretty(out, res.Path, res.Lines, res.Bag, diagfmt.PrettyOpts{
			Color:   colored,
			Context: true,
		})
	}
	return nil
}
