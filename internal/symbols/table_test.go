package symbols

import (
	"testing"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/lexer"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/source"
)

func parseLines(t *testing.T, srcLines []string, rep diag.Reporter) []ast.Line {
	t.Helper()
	lines := make([]ast.Line, len(srcLines))
	for i, text := range srcLines {
		idx := source.SafeUint32(i)
		toks := lexer.ScanLine(text, idx, rep)
		lines[i] = ast.Line{Index: idx, Text: text, Tokens: toks, Stmt: parser.ParseLine(toks, rep)}
	}
	return lines
}

func TestBuildCollectsDeclarations(t *testing.T) {
	bag := diag.NewBag(16)
	lines := parseLines(t, []string{
		"define speed 5",
		"alias cool r4",
		"main:",
		"j main",
	}, diag.BagReporter{Bag: bag})

	table := Build(lines, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if table.Len() != 3 {
		t.Fatalf("got %d symbols, want 3", table.Len())
	}

	tests := []struct {
		name string
		kind Kind
		line uint32
	}{
		{"speed", KindDefine, 0},
		{"cool", KindAlias, 1},
		{"main", KindLabel, 2},
	}
	for _, tt := range tests {
		sym, ok := table.Lookup(tt.name)
		if !ok {
			t.Errorf("symbol %q not found", tt.name)
			continue
		}
		if sym.Kind != tt.kind || sym.Line() != tt.line {
			t.Errorf("%q: got %v on line %d, want %v on line %d", tt.name, sym.Kind, sym.Line(), tt.kind, tt.line)
		}
	}
}

func TestBuildFirstDeclarationWins(t *testing.T) {
	bag := diag.NewBag(16)
	lines := parseLines(t, []string{
		"define x 1",
		"x:",
	}, diag.BagReporter{Bag: bag})

	table := Build(lines, diag.BagReporter{Bag: bag})
	if bag.Len() != 1 {
		t.Fatalf("want one duplicate diagnostic, got %v", bag.Items())
	}
	d := bag.Items()[0]
	if d.Code != diag.DuplicateSymbol || d.Primary.Line != 1 {
		t.Fatalf("got %v on line %d, want duplicate-symbol on line 1", d.Code, d.Primary.Line)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Line != 0 {
		t.Fatalf("want a note pointing at line 0, got %v", d.Notes)
	}

	sym, ok := table.Lookup("x")
	if !ok || sym.Kind != KindDefine || sym.Line() != 0 {
		t.Fatalf("canonical symbol should stay the first declaration, got %+v", sym)
	}
}

func TestBuildSkipsUnboundValues(t *testing.T) {
	bag := diag.NewBag(16)
	lines := parseLines(t, []string{
		"define x r0",
		"alias y 5",
	}, diag.BagReporter{Bag: bag})

	table := Build(lines, diag.BagReporter{Bag: bag})
	if _, ok := table.Lookup("x"); ok {
		t.Fatal("define with a register value must not bind")
	}
	if _, ok := table.Lookup("y"); ok {
		t.Fatal("alias with a numeric target must not bind")
	}
}

func TestBuildDeclarationOrder(t *testing.T) {
	bag := diag.NewBag(16)
	lines := parseLines(t, []string{
		"b:",
		"a:",
		"c:",
	}, diag.BagReporter{Bag: bag})

	table := Build(lines, diag.BagReporter{Bag: bag})
	var names []string
	for _, sym := range table.All() {
		names = append(names, sym.Name)
	}
	want := []string{"b", "a", "c"}
	for i, name := range want {
		if i >= len(names) || names[i] != name {
			t.Fatalf("declaration order = %v, want %v", names, want)
		}
	}
}
