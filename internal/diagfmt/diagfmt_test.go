package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

func sampleBag() (*diag.Bag, []string) {
	lines := []string{"move r0 speed", "yield"}
	bag := diag.NewBag(0)
	d := diag.NewError(diag.UndefinedSymbol, source.Span{Line: 0, Start: 8, End: 13}, "undefined symbol 'speed'")
	bag.Add(d.WithNote(source.Span{Line: 1, Start: 0, End: 5}, "did you mean to define it first?"))
	bag.Add(diag.NewWarning(diag.AbsoluteJump, source.Span{Line: 1, Start: 0, End: 5}, "jump to absolute line"))
	bag.Sort()
	return bag, lines
}

func TestPrettyPlain(t *testing.T) {
	bag, lines := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, "airlock.ic10", lines, bag, PrettyOpts{Color: false, Context: true, ShowNotes: true})
	out := buf.String()

	wants := []string{
		"airlock.ic10:1:9: error undefined-symbol: undefined symbol 'speed'",
		"   1 | move r0 speed",
		"airlock.ic10:2:1: note: did you mean to define it first?",
		"airlock.ic10:2:1: warning absolute-jump: jump to absolute line",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("plain output must not contain ANSI escapes")
	}
}

func TestPrettyUnderlineAlignment(t *testing.T) {
	bag, lines := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, "a.ic10", lines, bag, PrettyOpts{Context: true})
	// "speed" occupies columns 8-13; the underline sits under it.
	want := "     | " + strings.Repeat(" ", 8) + "^~~~~\n"
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("underline misaligned:\n%s", buf.String())
	}
}

func TestPrettyWithoutContextOrNotes(t *testing.T) {
	bag, lines := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, "a.ic10", lines, bag, PrettyOpts{})
	out := buf.String()
	if strings.Contains(out, " | ") {
		t.Fatalf("context lines must be suppressed:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Fatalf("notes must be suppressed:\n%s", out)
	}
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, _ := sampleBag()
	out := BuildDiagnosticsOutput("a.ic10", bag, JSONOpts{IncludeNotes: true})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Severity != "error" || first.Code != "undefined-symbol" {
		t.Fatalf("got %+v", first)
	}
	if first.Location.Line != 1 || first.Location.StartCol != 8 || first.Location.EndCol != 13 {
		t.Fatalf("location = %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Location.Line != 2 {
		t.Fatalf("notes = %+v", first.Notes)
	}
	if out.Diagnostics[1].Severity != "warning" {
		t.Fatalf("second = %+v", out.Diagnostics[1])
	}
}

func TestBuildDiagnosticsOutputTruncates(t *testing.T) {
	bag, _ := sampleBag()
	out := BuildDiagnosticsOutput("a.ic10", bag, JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("truncation failed: %+v", out)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Fatal("notes must be omitted unless requested")
	}
}

func TestJSONRoundtrip(t *testing.T) {
	bag, _ := sampleBag()
	var buf bytes.Buffer
	if err := JSON(&buf, "a.ic10", bag, JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 2 {
		t.Fatalf("count = %d", decoded.Count)
	}
}
