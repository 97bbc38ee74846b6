// Package ast defines the per-line statement model. The language has no
// multi-line constructs, so the whole tree is a flat list of Lines, each
// holding exactly one Statement.
package ast

import (
	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

// StmtKind tags the Statement variant. The set is closed; switches over it
// should be exhaustive.
type StmtKind uint8

const (
	// StmtEmpty is a line with no tokens (or only whitespace).
	StmtEmpty StmtKind = iota
	// StmtComment is a line holding only a comment.
	StmtComment
	// StmtInstruction is a mnemonic followed by operands.
	StmtInstruction
	// StmtLabel declares a jump target: `name:`.
	StmtLabel
	// StmtDefine binds a name to a numeric constant: `define name value`.
	StmtDefine
	// StmtAlias binds a name to a register or device: `alias name target`.
	StmtAlias
	// StmtMalformed marks a line the parser could not classify; a syntax
	// diagnostic is attached to the line.
	StmtMalformed
)

func (k StmtKind) String() string {
	switch k {
	case StmtEmpty:
		return "Empty"
	case StmtComment:
		return "Comment"
	case StmtInstruction:
		return "Instruction"
	case StmtLabel:
		return "Label"
	case StmtDefine:
		return "Define"
	case StmtAlias:
		return "Alias"
	case StmtMalformed:
		return "Malformed"
	}
	return "Unknown"
}

// OperandKind classifies a parsed operand syntactically. Checking the kind
// against the mnemonic's signature is the analyzer's job.
type OperandKind uint8

const (
	// OperandNumber is a numeric or HASH("...") literal.
	OperandNumber OperandKind = iota
	// OperandRegister is a direct or indirect register reference.
	OperandRegister
	// OperandDevice is a device pin reference.
	OperandDevice
	// OperandSymbol is an identifier: label, define, alias, or logic type.
	OperandSymbol
	// OperandInvalid is an operand slot filled by an unrecognized token.
	OperandInvalid
)

// Operand is one value slot following a mnemonic.
type Operand struct {
	Kind OperandKind
	Tok  token.Token
}

// Span returns the operand's source span.
func (o Operand) Span() source.Span { return o.Tok.Span }

// Stmt is the tagged union over statement variants. Which fields are set
// depends on Kind: Instruction uses Mnemonic+Operands; Label/Define/Alias use
// Name (and Value for Define/Alias).
type Stmt struct {
	Kind     StmtKind
	Mnemonic token.Token
	Operands []Operand
	Name     token.Token
	Value    Operand
}

// Line couples one line of source with its derived analysis. The Tokens and
// Stmt are always consistent: re-running the lexer and parser on Text yields
// the same values.
type Line struct {
	Index  uint32
	Text   string
	Tokens []token.Token
	Stmt   Stmt
}
