package features

import (
	"fmt"
	"strings"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/token"
)

// Hover is the documentation shown for the token under the cursor. Contents
// are markdown blocks joined by blank lines; Range is the hovered token so
// the client can highlight it.
type Hover struct {
	Contents []string
	Range    source.Span
}

// HoverAt resolves documentation for the position. Mnemonics show their
// signature and description, pins their role, logic parameters their
// namespace, and user symbols their declaration.
func HoverAt(doc *store.Document, pos source.Position) (*Hover, bool) {
	line, col, ok := clamp(doc, pos)
	if !ok {
		return nil, false
	}
	tok, ok := tokenAt(line, col)
	if !ok {
		return nil, false
	}

	switch tok.Kind {
	case token.Register:
		return pinHover(doc, tok, true)
	case token.Device:
		return pinHover(doc, tok, false)
	case token.Ident:
		return identHover(doc, line.Stmt, tok)
	}
	return nil, false
}

func pinHover(doc *store.Document, tok token.Token, register bool) (*Hover, bool) {
	if register {
		if p, ok := doc.Catalog.Register(tok.Text); ok {
			return &Hover{Contents: []string{codeBlock(tok.Text), p.Doc}, Range: tok.Span}, true
		}
		return &Hover{Contents: []string{codeBlock(tok.Text), "Indirect register reference."}, Range: tok.Span}, true
	}
	if p, ok := doc.Catalog.Device(tok.Text); ok {
		return &Hover{Contents: []string{codeBlock(tok.Text), p.Doc}, Range: tok.Span}, true
	}
	return &Hover{Contents: []string{codeBlock(tok.Text), "Indirect device reference."}, Range: tok.Span}, true
}

func identHover(doc *store.Document, stmt ast.Stmt, tok token.Token) (*Hover, bool) {
	// Mnemonic position: the identifier heading an instruction line.
	if stmt.Kind == ast.StmtInstruction && stmt.Mnemonic.Span == tok.Span {
		if ins, ok := doc.Catalog.Instruction(tok.Text); ok {
			return &Hover{
				Contents: []string{codeBlock(ins.Name + ins.Signature.String()), ins.Doc},
				Range:    tok.Span,
			}, true
		}
	}
	switch tok.Text {
	case parser.KwDefine:
		return &Hover{Contents: []string{codeBlock("define name value"), "Binds a name to a numeric constant."}, Range: tok.Span}, true
	case parser.KwAlias:
		return &Hover{Contents: []string{codeBlock("alias name target"), "Binds a name to a register or device."}, Range: tok.Span}, true
	}
	if sym, ok := doc.Symbols.Lookup(tok.Text); ok {
		return symbolHover(sym, tok)
	}
	var kinds []string
	if doc.Catalog.IsLogicType(tok.Text) {
		kinds = append(kinds, "logic type")
	}
	if doc.Catalog.IsSlotLogicType(tok.Text) {
		kinds = append(kinds, "slot logic type")
	}
	if len(kinds) > 0 {
		return &Hover{
			Contents: []string{codeBlock(tok.Text), "Device parameter (" + strings.Join(kinds, ", ") + ")."},
			Range:    tok.Span,
		}, true
	}
	return nil, false
}

func symbolHover(sym *symbols.Symbol, tok token.Token) (*Hover, bool) {
	switch sym.Kind {
	case symbols.KindDefine:
		return &Hover{
			Contents: []string{codeBlock(fmt.Sprintf("define %s %s", sym.Name, sym.Value.Tok.Text))},
			Range:    tok.Span,
		}, true
	case symbols.KindAlias:
		return &Hover{
			Contents: []string{codeBlock(fmt.Sprintf("alias %s %s", sym.Name, sym.Value.Tok.Text))},
			Range:    tok.Span,
		}, true
	case symbols.KindLabel:
		return &Hover{
			Contents: []string{fmt.Sprintf("Label on line %d", sym.Line()+1)},
			Range:    tok.Span,
		}, true
	}
	return nil, false
}

func codeBlock(s string) string {
	return "```ic10\n" + s + "\n```"
}
