package lexer

import (
	"testing"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/token"
)

func scan(t *testing.T, line string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	toks := ScanLine(line, 0, diag.BagReporter{Bag: bag})
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOL {
		t.Fatalf("token stream must end with EOL, got %v", toks)
	}
	return toks[:len(toks)-1], bag
}

func kindsOf(toks []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanInstructionLine(t *testing.T) {
	toks, bag := scan(t, "add r0 1 2 # sum")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []struct {
		kind  token.Kind
		text  string
		start uint32
		end   uint32
	}{
		{token.Ident, "add", 0, 3},
		{token.Register, "r0", 4, 6},
		{token.Number, "1", 7, 8},
		{token.Number, "2", 9, 10},
		{token.Comment, "# sum", 11, 16},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Kind != w.kind || tok.Text != w.text || tok.Span.Start != w.start || tok.Span.End != w.end {
			t.Errorf("token %d: got %v %q [%d,%d), want %v %q [%d,%d)",
				i, tok.Kind, tok.Text, tok.Span.Start, tok.Span.End, w.kind, w.text, w.start, w.end)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		line string
		text string
	}{
		{"-1.5e3", "-1.5e3"},
		{"+42", "+42"},
		{"$ff", "$ff"},
		{"%1010", "%1010"},
		{"2e-5", "2e-5"},
		{"0.25", "0.25"},
	}
	for _, tt := range tests {
		toks, bag := scan(t, tt.line)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", tt.line, bag.Items())
			continue
		}
		if len(toks) != 1 || toks[0].Kind != token.Number || toks[0].Text != tt.text {
			t.Errorf("%q: got %v, want single Number %q", tt.line, toks, tt.text)
		}
	}
}

func TestScanRegistersAndDevices(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
	}{
		{"r0", token.Register},
		{"r15", token.Register},
		{"r16", token.Register},
		{"sp", token.Register},
		{"ra", token.Register},
		{"rr2", token.Register},
		{"r99", token.Ident},
		{"d0", token.Device},
		{"d5", token.Device},
		{"db", token.Device},
		{"dr1", token.Device},
		{"d6", token.Ident},
		{"speed", token.Ident},
	}
	for _, tt := range tests {
		toks, _ := scan(t, tt.text)
		if len(toks) != 1 || toks[0].Kind != tt.kind {
			t.Errorf("%q: got %v, want %v", tt.text, kindsOf(toks), tt.kind)
		}
	}
}

func TestScanLabelMark(t *testing.T) {
	toks, bag := scan(t, "loop:")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Kind != token.Ident || toks[1].Kind != token.LabelMark {
		t.Fatalf("got %v, want Ident LabelMark", kindsOf(toks))
	}
}

func TestScanHashString(t *testing.T) {
	toks, bag := scan(t, `define door HASH("Door")`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	str := toks[2]
	if str.Kind != token.String || str.Text != `HASH("Door")` {
		t.Fatalf("got %v %q, want String literal", str.Kind, str.Text)
	}
}

func TestScanUnterminatedHashString(t *testing.T) {
	toks, bag := scan(t, `define door HASH("Door`)
	if len(toks) != 3 || toks[2].Kind != token.String {
		t.Fatalf("got %v, want trailing String token", kindsOf(toks))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SyntaxError {
		t.Fatalf("want one syntax error, got %v", bag.Items())
	}
}

func TestScanInvalidRun(t *testing.T) {
	toks, bag := scan(t, "add @@@")
	if len(toks) != 2 || toks[1].Kind != token.Invalid || toks[1].Text != "@@@" {
		t.Fatalf("got %v, want Invalid '@@@'", toks)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SyntaxError {
		t.Fatalf("want one syntax error, got %v", bag.Items())
	}
}

func TestScanEmptyLine(t *testing.T) {
	bag := diag.NewBag(4)
	toks := ScanLine("", 7, diag.BagReporter{Bag: bag})
	if len(toks) != 1 || toks[0].Kind != token.EOL {
		t.Fatalf("got %v, want only EOL", toks)
	}
	if toks[0].Span.Line != 7 {
		t.Fatalf("EOL line = %d, want 7", toks[0].Span.Line)
	}
}

func TestScanLineStampsLineIndex(t *testing.T) {
	toks, _ := scan(t, "move r0 1")
	for _, tok := range toks {
		if tok.Span.Line != 0 {
			t.Fatalf("token %q on line %d, want 0", tok.Text, tok.Span.Line)
		}
	}
	bag := diag.NewBag(4)
	toks = ScanLine("move r0 1", 12, diag.BagReporter{Bag: bag})
	for _, tok := range toks {
		if tok.Span.Line != 12 {
			t.Fatalf("token %q on line %d, want 12", tok.Text, tok.Span.Line)
		}
	}
}
