// Package sema validates parsed statements against the catalog and the
// symbol table, and enforces the chip's line/column limits. Every check is a
// pure function of (lines, symbol table, configuration): re-running on
// unchanged input yields an identical diagnostic set.
package sema

import (
	"fmt"
	"strings"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/symbols"
)

// Analyze runs every semantic check over the document and reports findings
// to rep. It holds no state across runs.
func Analyze(cat *catalog.Catalog, lines []ast.Line, table *symbols.Table, cfg config.Config, rep diag.Reporter) {
	a := analyzer{cat: cat, table: table, cfg: cfg, rep: rep}
	for i := range lines {
		a.checkLine(&lines[i])
	}
	a.checkLimits(lines)
}

type analyzer struct {
	cat   *catalog.Catalog
	table *symbols.Table
	cfg   config.Config
	rep   diag.Reporter
}

func (a *analyzer) checkLine(line *ast.Line) {
	stmt := line.Stmt
	if stmt.Kind != ast.StmtInstruction {
		return
	}

	ins, ok := a.cat.Instruction(stmt.Mnemonic.Text)
	if !ok {
		a.error(diag.UnknownMnemonic, stmt.Mnemonic.Span,
			"unknown instruction '"+stmt.Mnemonic.Text+"'")
		return
	}

	arity := len(ins.Signature)
	checked := len(stmt.Operands)
	if checked > arity {
		checked = arity
	}
	for i := 0; i < checked; i++ {
		a.checkOperand(ins.Signature[i], stmt.Operands[i])
	}

	switch {
	case len(stmt.Operands) > arity:
		extra := stmt.Operands[arity].Span()
		for _, op := range stmt.Operands[arity+1:] {
			extra = extra.Cover(op.Span())
		}
		plural := ""
		if len(stmt.Operands)-arity > 1 {
			plural = "s"
		}
		a.error(diag.ArityMismatch, extra, fmt.Sprintf(
			"superfluous operand%s: '%s' takes %d", plural, ins.Name, arity))
	case len(stmt.Operands) < arity:
		a.error(diag.ArityMismatch, stmtSpan(stmt), fmt.Sprintf(
			"'%s' expects %d operands, found %d", ins.Name, arity, len(stmt.Operands)))
	}

	a.lintAbsoluteJump(ins, stmt)
}

// checkOperand matches one operand against its signature slot. A symbol
// operand first tries the logic-type namespaces, then the symbol table;
// neither resolving is an undefined-symbol error instead of a kind mismatch.
func (a *analyzer) checkOperand(param catalog.Param, op ast.Operand) {
	var found []catalog.DataType
	switch op.Kind {
	case ast.OperandNumber:
		found = []catalog.DataType{catalog.TypeNumber}
	case ast.OperandRegister:
		found = []catalog.DataType{catalog.TypeRegister}
	case ast.OperandDevice:
		found = []catalog.DataType{catalog.TypeDevice}
	case ast.OperandSymbol:
		found = a.cat.LogicCandidates(op.Tok.Text)
		if len(found) == 0 {
			sym, ok := a.table.Lookup(op.Tok.Text)
			if !ok {
				a.error(diag.UndefinedSymbol, op.Span(),
					"undefined symbol '"+op.Tok.Text+"'")
				return
			}
			found = []catalog.DataType{symbolType(sym)}
		}
	case ast.OperandInvalid:
		return
	}

	if !param.MatchesAny(found) {
		a.error(diag.OperandKindMismatch, op.Span(), fmt.Sprintf(
			"type mismatch: found %s, expected %s", formatTypes(found), param))
	}
}

// lintAbsoluteJump flags branch targets written as raw line numbers; labels
// survive edits, line numbers silently rot.
func (a *analyzer) lintAbsoluteJump(ins catalog.Instruction, stmt ast.Stmt) {
	if !a.cfg.Warnings.AbsoluteJump || !ins.Branch || len(stmt.Operands) == 0 {
		return
	}
	last := stmt.Operands[len(stmt.Operands)-1]
	if last.Kind == ast.OperandNumber {
		a.warn(diag.AbsoluteJump, stmtSpan(stmt), "absolute jump to line number")
	}
}

// checkLimits emits one warning per line beyond max_lines and one per line
// wider than max_columns. The limits are inclusive bounds on 1-based counts,
// so a document of max_lines lines is exactly at capacity.
func (a *analyzer) checkLimits(lines []ast.Line) {
	maxLines := source.SafeUint32(a.cfg.MaxLines)
	maxCols := source.SafeUint32(a.cfg.MaxColumns)

	for i := range lines {
		line := &lines[i]
		width := source.SafeUint32(len(line.Text))
		if a.cfg.Warnings.OverlineComment && line.Index >= maxLines {
			a.warn(diag.Overline, source.Span{Line: line.Index, Start: 0, End: width},
				fmt.Sprintf("line %d exceeds the %d line limit", line.Index+1, a.cfg.MaxLines))
		}
		if a.cfg.Warnings.OvercolumnComment && width > maxCols {
			a.warn(diag.Overcolumn, source.Span{Line: line.Index, Start: maxCols, End: width},
				fmt.Sprintf("line is %d columns wide, limit is %d", width, a.cfg.MaxColumns))
		}
	}
}

func (a *analyzer) error(code diag.Code, sp source.Span, msg string) {
	a.rep.Report(code, diag.SevError, sp, msg, nil)
}

func (a *analyzer) warn(code diag.Code, sp source.Span, msg string) {
	a.rep.Report(code, diag.SevWarning, sp, msg, nil)
}

// symbolType maps a resolved symbol to the data type it contributes as an
// operand: defines and labels evaluate to numbers, aliases to their target.
func symbolType(sym *symbols.Symbol) catalog.DataType {
	switch sym.Kind {
	case symbols.KindAlias:
		if sym.Value.Kind == ast.OperandDevice {
			return catalog.TypeDevice
		}
		return catalog.TypeRegister
	default:
		return catalog.TypeNumber
	}
}

func formatTypes(types []catalog.DataType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, "|")
}

func stmtSpan(stmt ast.Stmt) source.Span {
	sp := stmt.Mnemonic.Span
	for _, op := range stmt.Operands {
		sp = sp.Cover(op.Span())
	}
	return sp
}
