// Package features holds the stateless query providers: completion, hover,
// signature help, and go-to-definition. Every provider is a pure, read-only
// function of (document snapshot, position) and never mutates the document.
package features

import (
	"sort"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/token"
)

// tokenAt finds the token under the cursor. A cursor sitting at a token's
// end column still hits it, which is what editors expect when the caret
// trails a word.
func tokenAt(line *ast.Line, col uint32) (token.Token, bool) {
	toks := line.Tokens
	if len(toks) == 0 {
		return token.Token{}, false
	}
	idx := sort.Search(len(toks), func(i int) bool { return toks[i].Span.End > col })
	if idx < len(toks) {
		tok := toks[idx]
		if tok.Span.Start <= col && col < tok.Span.End {
			return tok, true
		}
	}
	if idx > 0 {
		prev := toks[idx-1]
		if prev.Span.Start <= col && col == prev.Span.End && prev.Kind != token.EOL {
			return prev, true
		}
	}
	return token.Token{}, false
}

// operandIndexAt counts the operand slot the cursor occupies within an
// instruction: operands wholly before the cursor each advance the slot.
func operandIndexAt(stmt ast.Stmt, col uint32) int {
	idx := 0
	for _, op := range stmt.Operands {
		if col > op.Span().End {
			idx++
			continue
		}
		break
	}
	return idx
}

// beforeFirstToken reports whether the cursor sits at or before the line's
// first significant token, i.e. in mnemonic position.
func beforeFirstToken(line *ast.Line, col uint32) bool {
	for _, tok := range line.Tokens {
		switch tok.Kind {
		case token.EOL, token.Comment:
			continue
		}
		return col <= tok.Span.End
	}
	return true
}

// inComment reports whether the cursor sits inside a comment token.
func inComment(line *ast.Line, col uint32) bool {
	for _, tok := range line.Tokens {
		if tok.Kind == token.Comment && tok.Span.Start <= col {
			return true
		}
	}
	return false
}

// clamp validates the query position against the snapshot. A position past
// the document bounds fails fast with store.ErrNotFound semantics: the
// caller maps it to an absent result.
func clamp(doc *store.Document, pos source.Position) (*ast.Line, uint32, bool) {
	clamped, err := doc.ClampPosition(pos)
	if err != nil {
		return nil, 0, false
	}
	line := doc.Line(clamped.Line)
	if line == nil {
		return nil, 0, false
	}
	return line, clamped.Col, true
}
