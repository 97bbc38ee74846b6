package features

import (
	"strings"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
)

// ParamRange is a half-open byte range [Start, End) into a signature label,
// marking one parameter for client-side highlighting.
type ParamRange struct {
	Start uint32
	End   uint32
}

// SignatureInfo describes the instruction under the cursor: the rendered
// signature label, the parameter spans within it, and which parameter the
// cursor occupies.
type SignatureInfo struct {
	Label  string
	Doc    string
	Params []ParamRange
	Active int
}

// SignatureHelp resolves the active instruction signature for a position
// inside an operand list. Lines that do not parse as a known instruction, or
// cursors still in mnemonic position, yield nothing.
func SignatureHelp(doc *store.Document, pos source.Position) (*SignatureInfo, bool) {
	line, col, ok := clamp(doc, pos)
	if !ok {
		return nil, false
	}
	if inComment(line, col) {
		return nil, false
	}
	stmt := line.Stmt
	if stmt.Kind != ast.StmtInstruction {
		return nil, false
	}
	ins, known := doc.Catalog.Instruction(stmt.Mnemonic.Text)
	if !known || len(ins.Signature) == 0 {
		return nil, false
	}
	if col <= stmt.Mnemonic.Span.End {
		return nil, false
	}

	var label strings.Builder
	label.WriteString(ins.Name)
	params := make([]ParamRange, 0, len(ins.Signature))
	for _, p := range ins.Signature {
		label.WriteByte(' ')
		start := uint32(label.Len())
		label.WriteString(p.String())
		params = append(params, ParamRange{Start: start, End: uint32(label.Len())})
	}

	active := operandIndexAt(stmt, col)
	if active >= len(params) {
		active = len(params) - 1
	}
	return &SignatureInfo{
		Label:  label.String(),
		Doc:    ins.Doc,
		Params: params,
		Active: active,
	}, true
}
