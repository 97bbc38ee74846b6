package features

import (
	"ic10lsp/internal/ast"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/symbols"
)

// CompletionKind classifies a completion item for the protocol adapter.
type CompletionKind uint8

const (
	CompleteMnemonic CompletionKind = iota
	CompleteKeyword
	CompleteRegister
	CompleteDevice
	CompleteLogicType
	CompleteLabel
	CompleteDefine
	CompleteAlias
)

// CompletionItem is one suggestion. Items carry a detail string (the
// signature or bound value) and an optional documentation block.
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
	Doc    string
}

// completions accumulates items, dropping duplicate labels while keeping
// first-insertion order so more relevant groups stay on top.
type completions struct {
	items []CompletionItem
	seen  map[string]struct{}
}

func (c *completions) add(item CompletionItem) {
	if _, dup := c.seen[item.Label]; dup {
		return
	}
	c.seen[item.Label] = struct{}{}
	c.items = append(c.items, item)
}

// Completion computes the suggestions for a cursor position. At mnemonic
// position it offers the full instruction set plus the define/alias keywords;
// inside an instruction's operand list it offers only values that would
// satisfy the slot's signature. Branch instructions list labels ahead of
// everything else.
func Completion(doc *store.Document, pos source.Position) []CompletionItem {
	line, col, ok := clamp(doc, pos)
	if !ok {
		return nil
	}
	if inComment(line, col) {
		return nil
	}

	out := &completions{seen: make(map[string]struct{})}
	if beforeFirstToken(line, col) {
		mnemonicCompletions(doc.Catalog, out)
		return out.items
	}

	stmt := line.Stmt
	switch stmt.Kind {
	case ast.StmtInstruction:
		ins, known := doc.Catalog.Instruction(stmt.Mnemonic.Text)
		if !known {
			everyOperand(doc, out)
			return out.items
		}
		idx := operandIndexAt(stmt, col)
		if idx >= len(ins.Signature) {
			return nil // past the last slot: nothing fits
		}
		slotCompletions(doc, ins, ins.Signature[idx], out)
	case ast.StmtDefine, ast.StmtAlias:
		// Name position takes a fresh identifier; value position is a
		// literal (define) or pin (alias).
		if stmt.Kind == ast.StmtAlias && col > stmt.Name.Span.End {
			pinCompletions(doc.Catalog, true, true, out)
		}
	case ast.StmtMalformed:
		everyOperand(doc, out)
	}
	return out.items
}

func mnemonicCompletions(cat *catalog.Catalog, out *completions) {
	for _, name := range cat.Mnemonics() {
		ins, _ := cat.Instruction(name)
		out.add(CompletionItem{
			Label:  name,
			Kind:   CompleteMnemonic,
			Detail: name + ins.Signature.String(),
			Doc:    ins.Doc,
		})
	}
	out.add(CompletionItem{Label: parser.KwDefine, Kind: CompleteKeyword, Detail: "define name value"})
	out.add(CompletionItem{Label: parser.KwAlias, Kind: CompleteKeyword, Detail: "alias name target"})
}

// slotCompletions offers values matching one signature slot. For branch
// instructions the label group is emitted first so jump targets lead the
// list.
func slotCompletions(doc *store.Document, ins catalog.Instruction, param catalog.Param, out *completions) {
	if ins.Branch && param.Matches(catalog.TypeNumber) {
		symbolCompletions(doc.Symbols, symbols.KindLabel, out)
	}
	pinCompletions(doc.Catalog, param.Matches(catalog.TypeRegister), param.Matches(catalog.TypeDevice), out)
	if param.Matches(catalog.TypeLogicType) {
		for _, name := range doc.Catalog.LogicTypes() {
			out.add(CompletionItem{Label: name, Kind: CompleteLogicType, Detail: "type"})
		}
	}
	if param.Matches(catalog.TypeSlotLogicType) {
		for _, name := range doc.Catalog.SlotLogicTypes() {
			out.add(CompletionItem{Label: name, Kind: CompleteLogicType, Detail: "slotType"})
		}
	}
	if param.Matches(catalog.TypeNumber) {
		symbolCompletions(doc.Symbols, symbols.KindLabel, out)
		symbolCompletions(doc.Symbols, symbols.KindDefine, out)
	}
	if param.Matches(catalog.TypeRegister) || param.Matches(catalog.TypeDevice) {
		for _, sym := range doc.Symbols.All() {
			if sym.Kind != symbols.KindAlias {
				continue
			}
			if sym.Value.Kind == ast.OperandRegister && !param.Matches(catalog.TypeRegister) {
				continue
			}
			if sym.Value.Kind == ast.OperandDevice && !param.Matches(catalog.TypeDevice) {
				continue
			}
			out.add(aliasItem(sym))
		}
	}
}

func pinCompletions(cat *catalog.Catalog, registers, devices bool, out *completions) {
	if registers {
		for _, pin := range cat.Registers() {
			out.add(CompletionItem{Label: pin.Name, Kind: CompleteRegister, Doc: pin.Doc})
		}
	}
	if devices {
		for _, pin := range cat.Devices() {
			out.add(CompletionItem{Label: pin.Name, Kind: CompleteDevice, Doc: pin.Doc})
		}
	}
}

func symbolCompletions(table *symbols.Table, kind symbols.Kind, out *completions) {
	for _, sym := range table.All() {
		if sym.Kind != kind {
			continue
		}
		switch kind {
		case symbols.KindLabel:
			out.add(CompletionItem{Label: sym.Name, Kind: CompleteLabel, Detail: "label"})
		case symbols.KindDefine:
			out.add(CompletionItem{Label: sym.Name, Kind: CompleteDefine, Detail: "define " + sym.Value.Tok.Text})
		case symbols.KindAlias:
			out.add(aliasItem(sym))
		}
	}
}

func aliasItem(sym *symbols.Symbol) CompletionItem {
	return CompletionItem{Label: sym.Name, Kind: CompleteAlias, Detail: "alias " + sym.Value.Tok.Text}
}

// everyOperand is the fallback when the slot cannot be determined: all
// symbols, registers, and devices.
func everyOperand(doc *store.Document, out *completions) {
	for _, sym := range doc.Symbols.All() {
		switch sym.Kind {
		case symbols.KindLabel:
			out.add(CompletionItem{Label: sym.Name, Kind: CompleteLabel, Detail: "label"})
		case symbols.KindDefine:
			out.add(CompletionItem{Label: sym.Name, Kind: CompleteDefine, Detail: "define " + sym.Value.Tok.Text})
		case symbols.KindAlias:
			out.add(aliasItem(sym))
		}
	}
	pinCompletions(doc.Catalog, true, true, out)
}
