// Package parser classifies one line's tokens into exactly one statement.
// It is purely syntactic: operand kinds are recorded but not validated
// against the mnemonic's signature, which keeps the parser independently
// testable and leaves kind/arity checking to sema.
package parser

import (
	"ic10lsp/internal/ast"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

// Declaration keywords. They are not catalog mnemonics; a leading `define` or
// `alias` always parses as a declaration, every other leading identifier
// parses as an instruction call (unknown mnemonics are a sema error).
const (
	KwDefine = "define"
	KwAlias  = "alias"
)

// ParseLine builds the statement for one line. Structural mismatches yield
// StmtMalformed with a syntax diagnostic sent to rep; they never affect other
// lines. The token slice must come from lexer.ScanLine (trailing EOL token).
func ParseLine(tokens []token.Token, rep diag.Reporter) ast.Stmt {
	sig := significant(tokens)
	if len(sig) == 0 {
		if hasComment(tokens) {
			return ast.Stmt{Kind: ast.StmtComment}
		}
		return ast.Stmt{Kind: ast.StmtEmpty}
	}

	head := sig[0]

	// Label declaration: identifier immediately followed by ':'.
	if head.Kind == token.Ident && len(sig) >= 2 && sig[1].Kind == token.LabelMark {
		if len(sig) > 2 {
			report(rep, cover(sig[2:]), "unexpected tokens after label declaration")
			return ast.Stmt{Kind: ast.StmtMalformed}
		}
		return ast.Stmt{Kind: ast.StmtLabel, Name: head}
	}

	if head.Kind == token.Ident {
		switch head.Text {
		case KwDefine:
			return parseDefine(sig, rep)
		case KwAlias:
			return parseAlias(sig, rep)
		}
		return parseInstruction(sig, rep)
	}

	report(rep, head.Span, "expected mnemonic or label, found "+describe(head))
	return ast.Stmt{Kind: ast.StmtMalformed}
}

func parseDefine(sig []token.Token, rep diag.Reporter) ast.Stmt {
	if len(sig) != 3 || sig[1].Kind != token.Ident {
		report(rep, cover(sig), "define expects a name and a value")
		return ast.Stmt{Kind: ast.StmtMalformed}
	}
	value := classifyOperand(sig[2])
	stmt := ast.Stmt{Kind: ast.StmtDefine, Mnemonic: sig[0], Name: sig[1], Value: value}
	if value.Kind != ast.OperandNumber {
		// The declaration stays on the line but no symbol gets bound.
		report(rep, value.Span(), "define value must be a number")
	}
	return stmt
}

func parseAlias(sig []token.Token, rep diag.Reporter) ast.Stmt {
	if len(sig) != 3 || sig[1].Kind != token.Ident {
		report(rep, cover(sig), "alias expects a name and a register or device")
		return ast.Stmt{Kind: ast.StmtMalformed}
	}
	target := classifyOperand(sig[2])
	stmt := ast.Stmt{Kind: ast.StmtAlias, Mnemonic: sig[0], Name: sig[1], Value: target}
	if target.Kind != ast.OperandRegister && target.Kind != ast.OperandDevice {
		report(rep, target.Span(), "alias target must be a register or device")
	}
	return stmt
}

func parseInstruction(sig []token.Token, rep diag.Reporter) ast.Stmt {
	operands := make([]ast.Operand, 0, len(sig)-1)
	for _, tok := range sig[1:] {
		if !tok.IsOperand() {
			report(rep, tok.Span, "unexpected "+describe(tok)+" in operand list")
			return ast.Stmt{Kind: ast.StmtMalformed}
		}
		operands = append(operands, classifyOperand(tok))
	}
	return ast.Stmt{Kind: ast.StmtInstruction, Mnemonic: sig[0], Operands: operands}
}

func classifyOperand(tok token.Token) ast.Operand {
	switch tok.Kind {
	case token.Number, token.String:
		return ast.Operand{Kind: ast.OperandNumber, Tok: tok}
	case token.Register:
		return ast.Operand{Kind: ast.OperandRegister, Tok: tok}
	case token.Device:
		return ast.Operand{Kind: ast.OperandDevice, Tok: tok}
	case token.Ident:
		return ast.Operand{Kind: ast.OperandSymbol, Tok: tok}
	default:
		return ast.Operand{Kind: ast.OperandInvalid, Tok: tok}
	}
}

// significant drops the trailing EOL and any comment token: a comment after
// an instruction does not change its classification.
func significant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case token.EOL, token.Comment:
			continue
		}
		out = append(out, tok)
	}
	return out
}

func hasComment(tokens []token.Token) bool {
	for _, tok := range tokens {
		if tok.Kind == token.Comment {
			return true
		}
	}
	return false
}

func cover(tokens []token.Token) source.Span {
	if len(tokens) == 0 {
		return source.Span{}
	}
	sp := tokens[0].Span
	for _, tok := range tokens[1:] {
		sp = sp.Cover(tok.Span)
	}
	return sp
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.LabelMark:
		return "':'"
	case token.Invalid:
		return "invalid token"
	case token.Number:
		return "number"
	case token.Register:
		return "register"
	case token.Device:
		return "device"
	case token.String:
		return "string"
	default:
		return "'" + tok.Text + "'"
	}
}

func report(rep diag.Reporter, sp source.Span, msg string) {
	if rep != nil {
		rep.Report(diag.SyntaxError, diag.SevError, sp, msg, nil)
	}
}
