package token

import (
	"ic10lsp/internal/source"
)

// Token represents a single source token with its location.
// Tokens are immutable once produced by the lexer.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsOperand reports whether the token can fill an instruction operand slot.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case Ident, Number, String, Register, Device:
		return true
	default:
		return false
	}
}

// IsEOL reports whether the token terminates its line.
func (t Token) IsEOL() bool { return t.Kind == EOL }

// WithLine returns a copy of the token re-stamped onto another line.
// Used when cached per-line lex results are reattached after lines shift.
func (t Token) WithLine(line uint32) Token {
	t.Span.Line = line
	return t
}
