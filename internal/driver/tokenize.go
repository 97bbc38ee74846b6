package driver

import (
	"os"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/lexer"
	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	Path   string
	Lines  []string
	Tokens []token.Token
	Bag    *diag.Bag
}

// TokenizeFile lexes one file without parsing or analysis. Meant for
// debugging token boundaries and lexer diagnostics.
func TokenizeFile(path string, maxDiagnostics int) (*TokenizeResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := source.SplitLines(string(content))
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	var tokens []token.Token
	for i, lineText := range lines {
		tokens = append(tokens, lexer.ScanLine(lineText, source.SafeUint32(i), rep)...)
	}
	bag.Sort()
	return &TokenizeResult{
		Path:   path,
		Lines:  lines,
		Tokens: tokens,
		Bag:    bag,
	}, nil
}
