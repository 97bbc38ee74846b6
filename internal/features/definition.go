package features

import (
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/token"
)

// Definition resolves the canonical declaration site of the symbol under the
// cursor. Works from any reference or from the declaration itself; names that
// resolve to instruction-set vocabulary rather than user symbols have no
// definition.
func Definition(doc *store.Document, pos source.Position) (source.Span, bool) {
	line, col, ok := clamp(doc, pos)
	if !ok {
		return source.Span{}, false
	}
	tok, ok := tokenAt(line, col)
	if !ok || tok.Kind != token.Ident {
		return source.Span{}, false
	}
	sym, ok := doc.Symbols.Lookup(tok.Text)
	if !ok {
		return source.Span{}, false
	}
	return sym.Span, true
}
