// Package lexer turns one line of IC10 source text into a position-annotated
// token sequence. It is stateless per call and never fails: unrecognized
// characters become Invalid tokens, so every line is always tokenizable.
package lexer

import (
	"strings"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/token"
)

// ScanLine tokenizes one line. The returned sequence always ends with an EOL
// token whose span sits at the end of the line. Malformed input is reported
// through rep (which may be nil) and never aborts the scan.
func ScanLine(line string, lineIdx uint32, rep diag.Reporter) []token.Token {
	cur := NewCursor(line, lineIdx)
	var toks []token.Token

	for !cur.EOL() {
		ch := cur.Peek()
		switch {
		case ch == ' ' || ch == '\t':
			cur.Bump()

		case ch == '#':
			m := cur.Mark()
			for !cur.EOL() {
				cur.Bump()
			}
			toks = append(toks, token.Token{Kind: token.Comment, Span: cur.SpanFrom(m), Text: cur.TextFrom(m)})

		case ch == ':':
			m := cur.Mark()
			cur.Bump()
			toks = append(toks, token.Token{Kind: token.LabelMark, Span: cur.SpanFrom(m), Text: ":"})

		case isIdentStart(ch):
			toks = append(toks, scanIdent(&cur, rep))

		case isDigit(ch) || ch == '$' || ch == '%' ||
			((ch == '-' || ch == '+') && isDigit(cur.PeekAt(1))):
			toks = append(toks, scanNumber(&cur))

		default:
			// Run of unrecognized bytes collapses into one Invalid token.
			m := cur.Mark()
			cur.Bump()
			for !cur.EOL() && !isTokenStart(cur.Peek()) {
				cur.Bump()
			}
			sp := cur.SpanFrom(m)
			toks = append(toks, token.Token{Kind: token.Invalid, Span: sp, Text: cur.TextFrom(m)})
			report(rep, sp, "unrecognized character sequence "+quote(cur.TextFrom(m)))
		}
	}

	end := source.SafeUint32(len(line))
	toks = append(toks, token.Token{
		Kind: token.EOL,
		Span: source.Span{Line: lineIdx, Start: end, End: end},
	})
	return toks
}

func scanIdent(cur *Cursor, rep diag.Reporter) token.Token {
	m := cur.Mark()
	for !cur.EOL() && isIdentContinue(cur.Peek()) {
		cur.Bump()
	}
	text := cur.TextFrom(m)

	// HASH("Name") reads as a single string token starting at the H.
	if text == "HASH" && cur.Peek() == '(' && cur.PeekAt(1) == '"' {
		return scanHashString(cur, m, rep)
	}

	kind := token.Ident
	switch {
	case isRegisterName(text):
		kind = token.Register
	case isDeviceName(text):
		kind = token.Device
	}
	return token.Token{Kind: kind, Span: cur.SpanFrom(m), Text: text}
}

func scanHashString(cur *Cursor, m Mark, rep diag.Reporter) token.Token {
	cur.Bump() // (
	cur.Bump() // "
	closed := false
	for !cur.EOL() {
		if cur.Eat('"') {
			if cur.Eat(')') {
				closed = true
			}
			break
		}
		cur.Bump()
	}
	sp := cur.SpanFrom(m)
	if !closed {
		report(rep, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.String, Span: sp, Text: cur.TextFrom(m)}
}

func scanNumber(cur *Cursor) token.Token {
	m := cur.Mark()
	if cur.Peek() == '-' || cur.Peek() == '+' {
		cur.Bump()
	}
	// $ hex and % binary prefixes; otherwise decimal with fraction/exponent.
	if cur.Eat('$') || cur.Eat('%') {
		for !cur.EOL() && isHexDigit(cur.Peek()) {
			cur.Bump()
		}
	} else {
		for !cur.EOL() && (isDigit(cur.Peek()) || cur.Peek() == '.' || cur.Peek() == 'e' || cur.Peek() == 'E') {
			b := cur.Bump()
			if (b == 'e' || b == 'E') && (cur.Peek() == '-' || cur.Peek() == '+') {
				cur.Bump()
			}
		}
	}
	return token.Token{Kind: token.Number, Span: cur.SpanFrom(m), Text: cur.TextFrom(m)}
}

// isRegisterName matches r0-r15, sp, ra, and rr* indirection (rr0 etc.).
func isRegisterName(text string) bool {
	if text == "sp" || text == "ra" {
		return true
	}
	rest := strings.TrimLeft(text, "r")
	if rest == text || rest == "" || len(rest) > 2 {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !isDigit(rest[i]) {
			return false
		}
	}
	return (len(rest) == 1) || (rest[0] == '1' && rest[1] <= '7')
}

// isDeviceName matches d0-d5, db, and dr* register-indirect pins (dr0 etc.).
func isDeviceName(text string) bool {
	if text == "db" {
		return true
	}
	if len(text) < 2 || text[0] != 'd' {
		return false
	}
	if text[1] == 'r' {
		return isRegisterName(text[1:])
	}
	return len(text) == 2 && text[1] >= '0' && text[1] <= '5'
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '.' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') || b == '_'
}

func isTokenStart(b byte) bool {
	return b == ' ' || b == '\t' || b == '#' || b == ':' || b == '$' || b == '%' ||
		b == '-' || b == '+' || isIdentStart(b) || isDigit(b)
}

func report(rep diag.Reporter, sp source.Span, msg string) {
	if rep != nil {
		rep.Report(diag.SyntaxError, diag.SevError, sp, msg, nil)
	}
}

func quote(s string) string {
	if len(s) > 12 {
		s = s[:12] + "..."
	}
	return "'" + s + "'"
}
