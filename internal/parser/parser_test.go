package parser

import (
	"testing"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/lexer"
)

func parse(t *testing.T, line string) (ast.Stmt, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.ScanLine(line, 0, rep)
	return ParseLine(toks, rep), bag
}

func TestParseLineClassification(t *testing.T) {
	tests := []struct {
		line string
		kind ast.StmtKind
	}{
		{"", ast.StmtEmpty},
		{"   ", ast.StmtEmpty},
		{"# just a note", ast.StmtComment},
		{"add r0 1 2", ast.StmtInstruction},
		{"add r0 1 2 # trailing", ast.StmtInstruction},
		{"main:", ast.StmtLabel},
		{"define speed 5", ast.StmtDefine},
		{"alias cool r4", ast.StmtAlias},
		{"main: add", ast.StmtMalformed},
		{": nope", ast.StmtMalformed},
		{"define x", ast.StmtMalformed},
		{"alias x", ast.StmtMalformed},
	}
	for _, tt := range tests {
		stmt, _ := parse(t, tt.line)
		if stmt.Kind != tt.kind {
			t.Errorf("%q: got %v, want %v", tt.line, stmt.Kind, tt.kind)
		}
	}
}

func TestParseInstructionOperands(t *testing.T) {
	stmt, bag := parse(t, "add r0 speed 2")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if stmt.Mnemonic.Text != "add" {
		t.Fatalf("mnemonic = %q, want add", stmt.Mnemonic.Text)
	}
	wantKinds := []ast.OperandKind{ast.OperandRegister, ast.OperandSymbol, ast.OperandNumber}
	if len(stmt.Operands) != len(wantKinds) {
		t.Fatalf("got %d operands, want %d", len(stmt.Operands), len(wantKinds))
	}
	for i, want := range wantKinds {
		if stmt.Operands[i].Kind != want {
			t.Errorf("operand %d: got %v, want %v", i, stmt.Operands[i].Kind, want)
		}
	}
}

func TestParseLabelName(t *testing.T) {
	stmt, bag := parse(t, "loop:")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if stmt.Name.Text != "loop" {
		t.Fatalf("label name = %q, want loop", stmt.Name.Text)
	}
}

func TestParseDefine(t *testing.T) {
	stmt, bag := parse(t, "define speed -1.5")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if stmt.Name.Text != "speed" || stmt.Value.Kind != ast.OperandNumber || stmt.Value.Tok.Text != "-1.5" {
		t.Fatalf("got name=%q value=%v %q", stmt.Name.Text, stmt.Value.Kind, stmt.Value.Tok.Text)
	}
}

func TestParseDefineHashLiteral(t *testing.T) {
	stmt, bag := parse(t, `define door HASH("Door")`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if stmt.Kind != ast.StmtDefine || stmt.Value.Kind != ast.OperandNumber {
		t.Fatalf("got %v value %v, want Define with Number value", stmt.Kind, stmt.Value.Kind)
	}
}

func TestParseDefineBadValue(t *testing.T) {
	stmt, bag := parse(t, "define speed r0")
	if stmt.Kind != ast.StmtDefine {
		t.Fatalf("got %v, want Define to survive a bad value", stmt.Kind)
	}
	if stmt.Value.Kind != ast.OperandRegister {
		t.Fatalf("value kind = %v, want Register", stmt.Value.Kind)
	}
	if bag.Len() != 1 {
		t.Fatalf("want one diagnostic, got %v", bag.Items())
	}
}

func TestParseAliasTargets(t *testing.T) {
	for _, line := range []string{"alias cool r4", "alias sensor d2"} {
		stmt, bag := parse(t, line)
		if stmt.Kind != ast.StmtAlias || bag.Len() != 0 {
			t.Errorf("%q: got %v with %v", line, stmt.Kind, bag.Items())
		}
	}
	stmt, bag := parse(t, "alias cool 5")
	if stmt.Kind != ast.StmtAlias || bag.Len() != 1 {
		t.Fatalf("alias with number target: got %v with %d diagnostics", stmt.Kind, bag.Len())
	}
}

func TestParseAliasReservedName(t *testing.T) {
	// The name slot must be a plain identifier; pin names do not qualify.
	stmt, bag := parse(t, "alias d0 r0")
	if stmt.Kind != ast.StmtMalformed || bag.Len() != 1 {
		t.Fatalf("got %v with %d diagnostics, want Malformed", stmt.Kind, bag.Len())
	}
}

func TestParseOperandListRejectsStrayTokens(t *testing.T) {
	stmt, bag := parse(t, "add r0 : 2")
	if stmt.Kind != ast.StmtMalformed {
		t.Fatalf("got %v, want Malformed", stmt.Kind)
	}
	if bag.Len() != 1 {
		t.Fatalf("want one diagnostic, got %v", bag.Items())
	}
}
