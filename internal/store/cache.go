package store

import (
	"sync"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/lexer"
	"ic10lsp/internal/token"
)

// lineCache memoizes per-line lex results keyed by the line's text, so an
// incremental edit only re-lexes the lines whose text actually changed.
// Cached tokens and diagnostics are stored line-relative (line index 0) and
// re-stamped onto their current line on every hit.
type lineCache struct {
	mu      sync.Mutex
	entries map[string]cachedLine
	max     int
}

type cachedLine struct {
	tokens []token.Token
	diags  []diag.Diagnostic
}

const defaultCacheSize = 4096

func newLineCache(max int) *lineCache {
	if max <= 0 {
		max = defaultCacheSize
	}
	return &lineCache{
		entries: make(map[string]cachedLine),
		max:     max,
	}
}

// tokens returns the token sequence for one line, lexing on a cache miss.
// Lexer diagnostics are replayed into rep with the correct line index.
func (c *lineCache) tokens(text string, lineIdx uint32, rep diag.Reporter) []token.Token {
	c.mu.Lock()
	entry, hit := c.entries[text]
	c.mu.Unlock()

	if !hit {
		bag := diag.NewBag(16)
		raw := lexer.ScanLine(text, 0, diag.BagReporter{Bag: bag})
		entry = cachedLine{tokens: raw, diags: bag.Items()}
		c.mu.Lock()
		if len(c.entries) >= c.max {
			// Full reset beats eviction bookkeeping at this size.
			c.entries = make(map[string]cachedLine)
		}
		c.entries[text] = entry
		c.mu.Unlock()
	}

	toks := make([]token.Token, len(entry.tokens))
	for i, tok := range entry.tokens {
		toks[i] = tok.WithLine(lineIdx)
	}
	if rep != nil {
		for _, d := range entry.diags {
			sp := d.Primary
			sp.Line = lineIdx
			rep.Report(d.Code, d.Severity, sp, d.Message, d.Notes)
		}
	}
	return toks
}
