package store

import (
	"errors"
	"strings"
	"testing"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

const testURI = "file:///main.ic10"

func newTestStore() *Store {
	return New(catalog.New(), config.Default(), Options{})
}

func codesOf(doc *Document) []diag.Code {
	codes := make([]diag.Code, 0, doc.Diags.Len())
	for _, d := range doc.Diags.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestOpenAnalyzes(t *testing.T) {
	s := newTestStore()
	doc := s.Open(testURI, "move r0 missing", 1)
	if doc.Version != 1 {
		t.Fatalf("version = %d, want 1", doc.Version)
	}
	if got := codesOf(doc); len(got) != 1 || got[0] != diag.UndefinedSymbol {
		t.Fatalf("diagnostics = %v, want one undefined-symbol", got)
	}

	got, err := s.Get(testURI)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != doc {
		t.Fatal("Get must return the same snapshot Open produced")
	}
}

func TestGetUnknownDocument(t *testing.T) {
	s := newTestStore()
	if _, err := s.Get("file:///nope.ic10"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestChangeFullText(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "move r0 missing", 1)

	doc, err := s.Change(testURI, 2, []Change{{Text: "define missing 1\nmove r0 missing"}})
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if doc.Diags.Len() != 0 {
		t.Fatalf("expected clean document, got %v", doc.Diags.Items())
	}
	if doc.Version != 2 {
		t.Fatalf("version = %d, want 2", doc.Version)
	}
}

func TestChangeRangedEdit(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "move r0 missing\nyield", 1)

	// Replace "missing" with "1" on line 0.
	doc, err := s.Change(testURI, 2, []Change{{
		Range: &Range{
			Start: source.Position{Line: 0, Col: 8},
			End:   source.Position{Line: 0, Col: 15},
		},
		Text: "1",
	}})
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if got := doc.Text(); got != "move r0 1\nyield" {
		t.Fatalf("text = %q", got)
	}
	if doc.Diags.Len() != 0 {
		t.Fatalf("expected clean document, got %v", doc.Diags.Items())
	}
}

// A document ending in a newline has a final empty line the client can
// address; text survives the open/edit cycle byte for byte.
func TestTrailingNewlineKeepsFinalLine(t *testing.T) {
	s := newTestStore()
	doc := s.Open(testURI, "yield\n", 1)
	if got := doc.Text(); got != "yield\n" {
		t.Fatalf("text = %q, want the trailing newline kept", got)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(doc.Lines))
	}
	if line := doc.Line(1); line == nil || line.Text != "" {
		t.Fatalf("final line = %+v, want the empty line", line)
	}
	if _, err := doc.ClampPosition(source.Position{Line: 1, Col: 0}); err != nil {
		t.Fatalf("position on the final empty line must resolve: %v", err)
	}
}

// Typing on the last line of a newline-terminated document is the common
// case; the splice must land after the newline, not swallow it.
func TestChangeInsertOnFinalEmptyLine(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "yield\n", 1)

	doc, err := s.Change(testURI, 2, []Change{{
		Range: &Range{
			Start: source.Position{Line: 1, Col: 0},
			End:   source.Position{Line: 1, Col: 0},
		},
		Text: "add",
	}})
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if got := doc.Text(); got != "yield\nadd" {
		t.Fatalf("text = %q, want %q", got, "yield\nadd")
	}
}

func TestChangeRejectsStaleVersion(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "yield", 5)

	if _, err := s.Change(testURI, 5, []Change{{Text: "j 1"}}); !errors.Is(err, ErrStaleUpdate) {
		t.Fatalf("same version: err = %v, want ErrStaleUpdate", err)
	}
	if _, err := s.Change(testURI, 4, []Change{{Text: "j 1"}}); !errors.Is(err, ErrStaleUpdate) {
		t.Fatalf("older version: err = %v, want ErrStaleUpdate", err)
	}

	doc, err := s.Get(testURI)
	if err != nil || doc.Text() != "yield" {
		t.Fatalf("stale update must not touch the document: %v %q", err, doc.Text())
	}
}

func TestChangeUnknownDocument(t *testing.T) {
	s := newTestStore()
	if _, err := s.Change(testURI, 1, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClose(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "yield", 1)
	if err := s.Close(testURI); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.Get(testURI); !errors.Is(err, ErrNotFound) {
		t.Fatalf("closed document still resolves: %v", err)
	}
	if err := s.Close(testURI); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double close: err = %v, want ErrNotFound", err)
	}
}

func TestReopenReplacesContent(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "frobnicate", 1)
	doc := s.Open(testURI, "yield", 1)
	if doc.Diags.Len() != 0 {
		t.Fatalf("reopened document should be clean, got %v", doc.Diags.Items())
	}
}

// An edit on one line must not disturb the analysis of untouched lines; the
// line cache restamps cached tokens onto their current line.
func TestEditKeepsOtherLinesStable(t *testing.T) {
	s := newTestStore()
	src := strings.Join([]string{
		"yield",
		"yield",
		"frobnicate r0",
	}, "\n")
	doc := s.Open(testURI, src, 1)
	if doc.Diags.Len() != 1 || doc.Diags.Items()[0].Primary.Line != 2 {
		t.Fatalf("setup: %v", doc.Diags.Items())
	}

	// Insert a line at the top: the error moves down with its line.
	doc, err := s.Change(testURI, 2, []Change{{
		Range: &Range{Start: source.Position{Line: 0, Col: 0}, End: source.Position{Line: 0, Col: 0}},
		Text:  "yield\n",
	}})
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if doc.Diags.Len() != 1 {
		t.Fatalf("diagnostics = %v", doc.Diags.Items())
	}
	if got := doc.Diags.Items()[0].Primary.Line; got != 3 {
		t.Fatalf("error on line %d, want 3", got)
	}
}

func TestSetConfigReanalyzesOpenDocuments(t *testing.T) {
	s := newTestStore()
	s.Open(testURI, "j 5", 1)

	cfg := config.Default()
	cfg.Warnings.AbsoluteJump = false
	docs := s.SetConfig(cfg)
	if len(docs) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(docs))
	}
	if docs[0].Diags.Len() != 0 {
		t.Fatalf("lint should be gone after reconfiguration, got %v", docs[0].Diags.Items())
	}
	if s.Config() != cfg {
		t.Fatalf("Config() = %+v, want %+v", s.Config(), cfg)
	}
}

func TestDiagnosticsSorted(t *testing.T) {
	s := newTestStore()
	src := strings.Join([]string{
		"move r0 b",
		"move r0 a",
	}, "\n")
	doc := s.Open(testURI, src, 1)
	items := doc.Diags.Items()
	if len(items) != 2 {
		t.Fatalf("got %v", items)
	}
	if items[0].Primary.Line != 0 || items[1].Primary.Line != 1 {
		t.Fatalf("diagnostics out of order: %v", items)
	}
}

func TestClampPosition(t *testing.T) {
	s := newTestStore()
	doc := s.Open(testURI, "yield\nmove r0 1", 1)

	pos, err := doc.ClampPosition(source.Position{Line: 1, Col: 99})
	if err != nil {
		t.Fatalf("ClampPosition: %v", err)
	}
	if pos.Col != 9 {
		t.Fatalf("col = %d, want clamp to line length 9", pos.Col)
	}
	if _, err := doc.ClampPosition(source.Position{Line: 9, Col: 0}); err == nil {
		t.Fatal("position past the last line must error")
	}
}
