package diag

import "fmt"

// Code is a stable category for a diagnostic. The numeric value groups codes
// by pipeline stage; Tag is the user-facing category string.
type Code uint16

const (
	UnknownCode Code = 0

	// Syntax (lexer + parser)
	SyntaxError Code = 1001

	// Semantic
	UnknownMnemonic     Code = 3001
	ArityMismatch       Code = 3002
	OperandKindMismatch Code = 3003
	UndefinedSymbol     Code = 3004
	DuplicateSymbol     Code = 3005

	// Limits and lints
	Overline     Code = 4001
	Overcolumn   Code = 4002
	AbsoluteJump Code = 4101
)

var codeTags = map[Code]string{
	SyntaxError:         "syntax-error",
	UnknownMnemonic:     "unknown-mnemonic",
	ArityMismatch:       "arity-mismatch",
	OperandKindMismatch: "operand-kind-mismatch",
	UndefinedSymbol:     "undefined-symbol",
	DuplicateSymbol:     "duplicate-symbol",
	Overline:            "overline",
	Overcolumn:          "overcolumn",
	AbsoluteJump:        "absolute-jump",
}

// Tag returns the stable category string, e.g. "unknown-mnemonic".
func (c Code) Tag() string {
	if tag, ok := codeTags[c]; ok {
		return tag
	}
	return fmt.Sprintf("IC%04d", uint16(c))
}

func (c Code) String() string { return c.Tag() }
