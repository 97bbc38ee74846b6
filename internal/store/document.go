package store

import (
	"ic10lsp/internal/ast"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/symbols"
)

// Document is one immutable, fully-analyzed snapshot of an open document.
// Every update produces a fresh Document that atomically replaces the old
// one, so feature providers never observe a partially rebuilt state.
type Document struct {
	URI     string
	Version int
	Lines   []ast.Line
	Symbols *symbols.Table
	Diags   *diag.Bag
	Config  config.Config
	Catalog *catalog.Catalog
}

// Line returns the analyzed line at idx, or nil when out of bounds.
func (d *Document) Line(idx uint32) *ast.Line {
	if int(idx) >= len(d.Lines) {
		return nil
	}
	return &d.Lines[idx]
}

// ClampPosition clips pos to the document bounds. An error means the
// position's line does not exist.
func (d *Document) ClampPosition(pos source.Position) (source.Position, error) {
	if int(pos.Line) >= len(d.Lines) {
		return source.Position{}, ErrNotFound
	}
	lineLen := source.SafeUint32(len(d.Lines[pos.Line].Text))
	if pos.Col > lineLen {
		pos.Col = lineLen
	}
	return pos, nil
}

// Text reassembles the full document text.
func (d *Document) Text() string {
	lines := make([]string, len(d.Lines))
	for i := range d.Lines {
		lines[i] = d.Lines[i].Text
	}
	return source.JoinLines(lines)
}
