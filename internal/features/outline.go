package features

import (
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/symbols"
)

// OutlineEntry is one declared symbol for the document outline.
type OutlineEntry struct {
	Name   string
	Kind   symbols.Kind
	Span   source.Span
	Detail string
}

// Outline lists every declaration in document order, each at its name span:
// labels, defines with their bound value, aliases with their target.
func Outline(doc *store.Document) []OutlineEntry {
	syms := doc.Symbols.All()
	out := make([]OutlineEntry, 0, len(syms))
	for _, sym := range syms {
		entry := OutlineEntry{Name: sym.Name, Kind: sym.Kind, Span: sym.Span}
		switch sym.Kind {
		case symbols.KindLabel:
			entry.Detail = "label"
		case symbols.KindDefine:
			entry.Detail = "define " + sym.Value.Tok.Text
		case symbols.KindAlias:
			entry.Detail = "alias " + sym.Value.Tok.Text
		}
		out = append(out, entry)
	}
	return out
}
