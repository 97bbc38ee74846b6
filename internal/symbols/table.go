// Package symbols builds the document-wide symbol table in a single forward
// pass over all parsed lines. Declarations are visible from anywhere in the
// document; forward references are legal.
package symbols

import (
	"ic10lsp/internal/ast"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// Kind classifies a symbol declaration.
type Kind uint8

const (
	// KindLabel is a jump target declared as `name:`.
	KindLabel Kind = iota
	// KindDefine is a named numeric constant.
	KindDefine
	// KindAlias is a named register or device binding.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindDefine:
		return "define"
	case KindAlias:
		return "alias"
	}
	return "symbol"
}

// Symbol is one canonical declaration. Names are case-sensitive and unique
// per document; the first declaration wins.
type Symbol struct {
	Name string
	Kind Kind
	// Span covers the declared name at its declaration site.
	Span source.Span
	// Value is the bound operand for defines (the numeric literal) and
	// aliases (the target register/device). Unset for labels.
	Value ast.Operand
}

// Line returns the 0-based declaring line index.
func (s *Symbol) Line() uint32 { return s.Span.Line }

// Table maps names to their canonical symbols, preserving declaration order.
type Table struct {
	byName map[string]*Symbol
	order  []*Symbol
}

// Lookup resolves a name to its canonical symbol.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// All returns the symbols in declaration order. Read-only.
func (t *Table) All() []*Symbol {
	return t.order
}

func (t *Table) Len() int { return len(t.order) }

// Build walks all lines in order and collects every declaration. Later
// declarations of an already-bound name produce a duplicate-symbol error
// attributed to the later line, with a note pointing at the canonical site;
// the canonical symbol is left untouched so go-to-definition stays stable.
func Build(lines []ast.Line, rep diag.Reporter) *Table {
	t := &Table{byName: make(map[string]*Symbol)}
	for i := range lines {
		stmt := lines[i].Stmt
		var sym *Symbol
		switch stmt.Kind {
		case ast.StmtLabel:
			sym = &Symbol{Name: stmt.Name.Text, Kind: KindLabel, Span: stmt.Name.Span}
		case ast.StmtDefine:
			if stmt.Value.Kind != ast.OperandNumber {
				continue // malformed value: diagnosed by the parser, nothing to bind
			}
			sym = &Symbol{Name: stmt.Name.Text, Kind: KindDefine, Span: stmt.Name.Span, Value: stmt.Value}
		case ast.StmtAlias:
			if stmt.Value.Kind != ast.OperandRegister && stmt.Value.Kind != ast.OperandDevice {
				continue
			}
			sym = &Symbol{Name: stmt.Name.Text, Kind: KindAlias, Span: stmt.Name.Span, Value: stmt.Value}
		default:
			continue
		}

		if prev, ok := t.byName[sym.Name]; ok {
			if rep != nil {
				rep.Report(diag.DuplicateSymbol, diag.SevError, sym.Span,
					"duplicate definition of '"+sym.Name+"'",
					[]diag.Note{{Span: prev.Span, Msg: "previously defined here"}})
			}
			continue
		}
		t.byName[sym.Name] = sym
		t.order = append(t.order, sym)
	}
	return t
}
