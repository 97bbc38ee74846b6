package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ic10lsp/internal/config"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	payloads := []string{
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":1,"method":"shutdown"}`,
	}
	for _, p := range payloads {
		if err := writeMessage(&buf, []byte(p)); err != nil {
			t.Fatalf("writeMessage: %v", err)
		}
	}
	r := bufio.NewReader(&buf)
	for i, want := range payloads {
		got, err := readMessage(r)
		if err != nil {
			t.Fatalf("readMessage %d: %v", i, err)
		}
		if string(got) != want {
			t.Fatalf("message %d = %q, want %q", i, got, want)
		}
	}
}

func TestReadMessageIgnoresExtraHeaders(t *testing.T) {
	payload := `{"jsonrpc":"2.0"}`
	raw := "Content-Type: application/vscode-jsonrpc; charset=utf-8\r\n" +
		fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)
	got, err := readMessage(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("readMessage: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("got %q", got)
	}
}

func TestReadMessageMissingContentLength(t *testing.T) {
	raw := "Content-Type: application/json\r\n\r\n{}"
	if _, err := readMessage(bufio.NewReader(strings.NewReader(raw))); err == nil {
		t.Fatal("expected an error without Content-Length")
	}
}

func TestByteColumn(t *testing.T) {
	tests := []struct {
		line      string
		character int
		want      uint32
	}{
		{"move r0 1", 0, 0},
		{"move r0 1", 5, 5},
		{"move r0 1", 99, 9},
		{"move r0 1", -1, 0},
		// é is one UTF-16 unit but two bytes.
		{"aéb", 2, 3},
		{"aéb", 3, 4},
		// 𐍈 is a surrogate pair (two units, four bytes). A position
		// inside the pair clamps to the rune start.
		{"𐍈x", 2, 4},
		{"𐍈x", 1, 0},
		{"𐍈x", 3, 5},
	}
	for _, tt := range tests {
		if got := byteColumn(tt.line, tt.character); got != tt.want {
			t.Errorf("byteColumn(%q, %d) = %d, want %d", tt.line, tt.character, got, tt.want)
		}
	}
}

func TestUtf16Column(t *testing.T) {
	tests := []struct {
		line    string
		byteCol uint32
		want    int
	}{
		{"move r0 1", 5, 5},
		{"move r0 1", 99, 9},
		{"aéb", 3, 2},
		{"𐍈x", 4, 2},
		{"𐍈x", 5, 3},
	}
	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.byteCol); got != tt.want {
			t.Errorf("utf16Column(%q, %d) = %d, want %d", tt.line, tt.byteCol, got, tt.want)
		}
	}
}

func TestConvertChangesFullText(t *testing.T) {
	changes := convertChanges("old", []textDocumentContentChangeEvent{{Text: "new text"}})
	if len(changes) != 1 {
		t.Fatalf("got %d changes", len(changes))
	}
	if changes[0].Range != nil || changes[0].Text != "new text" {
		t.Fatalf("got %+v", changes[0])
	}
}

func TestConvertChangesSequentialRanges(t *testing.T) {
	// The second event's coordinates are valid only against the text
	// produced by the first one: it targets the "1" inserted below.
	text := "move r0 x\nyield"
	events := []textDocumentContentChangeEvent{
		{
			Range: &lspRange{Start: position{Line: 0, Character: 8}, End: position{Line: 0, Character: 9}},
			Text:  "1",
		},
		{
			Range: &lspRange{Start: position{Line: 0, Character: 8}, End: position{Line: 0, Character: 9}},
			Text:  "22",
		},
	}
	changes := convertChanges(text, events)
	if len(changes) != 2 {
		t.Fatalf("got %d changes", len(changes))
	}
	for i, c := range changes {
		if c.Range == nil {
			t.Fatalf("change %d lost its range", i)
		}
	}
	if changes[1].Range.Start.Col != 8 || changes[1].Range.End.Col != 9 {
		t.Fatalf("second change range = %+v", changes[1].Range)
	}
	if changes[1].Text != "22" {
		t.Fatalf("second change text = %q", changes[1].Text)
	}
}

func TestConvertChangesInvertedRange(t *testing.T) {
	events := []textDocumentContentChangeEvent{{
		Range: &lspRange{Start: position{Line: 0, Character: 5}, End: position{Line: 0, Character: 2}},
		Text:  "x",
	}}
	changes := convertChanges("move r0 1", events)
	if changes[0].Range.Start != changes[0].Range.End {
		t.Fatalf("inverted range should collapse, got %+v", changes[0].Range)
	}
}

func TestCanonicalURI(t *testing.T) {
	a := canonicalURI("file:///tmp/air%20lock.ic10")
	b := canonicalURI("file:///tmp/air lock.ic10")
	if a != b {
		t.Fatalf("escaping variants differ: %q vs %q", a, b)
	}
	if got := canonicalURI("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Fatalf("non-file URI must pass through, got %q", got)
	}
}

func TestURIToPath(t *testing.T) {
	if got := uriToPath("file:///tmp/test.ic10"); got != "/tmp/test.ic10" {
		t.Fatalf("got %q", got)
	}
	if got := uriToPath("https://example.com/x"); got != "" {
		t.Fatalf("non-file scheme should map to empty, got %q", got)
	}
}

// frame appends one framed JSON-RPC message to the client-side input.
func frame(t *testing.T, buf *bytes.Buffer, body string) {
	t.Helper()
	if err := writeMessage(buf, []byte(body)); err != nil {
		t.Fatalf("frame: %v", err)
	}
}

// drainMessages parses every framed message the server wrote.
func drainMessages(t *testing.T, out *bytes.Buffer) []map[string]json.RawMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []map[string]json.RawMessage
	for {
		payload, err := readMessage(r)
		if err != nil {
			return msgs
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(payload, &m); err != nil {
			t.Fatalf("server wrote invalid JSON: %v", err)
		}
		msgs = append(msgs, m)
	}
}

func findByMethod(msgs []map[string]json.RawMessage, method string) map[string]json.RawMessage {
	quoted := `"` + method + `"`
	for _, m := range msgs {
		if string(m["method"]) == quoted {
			return m
		}
	}
	return nil
}

func TestServerLifecycle(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///tmp"}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"initialized"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","languageId":"ic10","version":1,"text":"move r0 speed"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":2,"method":"shutdown"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default(), Version: "test"})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v, want ErrExit", err)
	}

	msgs := drainMessages(t, &out)
	if len(msgs) < 3 {
		t.Fatalf("expected initialize response, diagnostics, and shutdown response; got %d messages", len(msgs))
	}

	var initResult struct {
		Capabilities struct {
			HoverProvider bool `json:"hoverProvider"`
			Sync          struct {
				OpenClose bool `json:"openClose"`
				Change    int  `json:"change"`
			} `json:"textDocumentSync"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(msgs[0]["result"], &initResult); err != nil {
		t.Fatalf("initialize result: %v", err)
	}
	if !initResult.Capabilities.HoverProvider || initResult.Capabilities.Sync.Change != 2 {
		t.Fatalf("unexpected capabilities: %+v", initResult.Capabilities)
	}

	pub := findByMethod(msgs, "textDocument/publishDiagnostics")
	if pub == nil {
		t.Fatal("no diagnostics published for the opened document")
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(pub["params"], &params); err != nil {
		t.Fatalf("publishDiagnostics params: %v", err)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Code != "undefined-symbol" || d.Severity != diagSeverityError {
		t.Fatalf("got diagnostic %+v", d)
	}
	if d.Range.Start.Character != 8 || d.Range.End.Character != 13 {
		t.Fatalf("diagnostic range = %+v", d.Range)
	}
}

func TestServerDocumentSymbols(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":1,"text":"main:\ndefine speed 5\nj main"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":2,"method":"textDocument/documentSymbol","params":{"textDocument":{"uri":"file:///tmp/a.ic10"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":3,"method":"shutdown"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}

	var result json.RawMessage
	for _, m := range drainMessages(t, &out) {
		if string(m["id"]) == "2" {
			result = m["result"]
		}
	}
	if result == nil {
		t.Fatal("no response for the documentSymbol request")
	}
	var syms []documentSymbol
	if err := json.Unmarshal(result, &syms); err != nil {
		t.Fatalf("result: %v", err)
	}
	if len(syms) != 2 {
		t.Fatalf("got %d symbols, want 2", len(syms))
	}
	if syms[0].Name != "main" || syms[0].Kind != symbolKindFunction {
		t.Fatalf("first symbol = %+v", syms[0])
	}
	if syms[1].Name != "speed" || syms[1].Kind != symbolKindConstant || syms[1].Detail != "define 5" {
		t.Fatalf("second symbol = %+v", syms[1])
	}
	if syms[1].Range.Start.Line != 1 || syms[1].Range.Start.Character != 7 {
		t.Fatalf("second symbol range = %+v", syms[1].Range)
	}
}

func TestServerWorkspaceConfig(t *testing.T) {
	dir := t.TempDir()
	toml := "max_lines = 2\n"
	if err := os.WriteFile(filepath.Join(dir, "ic10.toml"), []byte(toml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var in, out bytes.Buffer
	frame(t, &in, fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file://%s"}}`, dir))
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":1,"text":"yield\nyield\nyield"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":2,"method":"shutdown"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}

	pub := findByMethod(drainMessages(t, &out), "textDocument/publishDiagnostics")
	if pub == nil {
		t.Fatal("no diagnostics published")
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(pub["params"], &params); err != nil {
		t.Fatalf("params: %v", err)
	}
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Code != "overline" {
		t.Fatalf("workspace line limit not applied, got %+v", params.Diagnostics)
	}
}

func TestServerExitWithoutShutdown(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)
	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run = %v, want ErrExitWithoutShutdown", err)
	}
}

func TestServerClearsDiagnosticsOnClose(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":1,"text":"move r0 speed"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didClose","params":{"textDocument":{"uri":"file:///tmp/a.ic10"}}}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var publishes []publishDiagnosticsParams
	for _, m := range drainMessages(t, &out) {
		if string(m["method"]) == `"textDocument/publishDiagnostics"` {
			var p publishDiagnosticsParams
			if err := json.Unmarshal(m["params"], &p); err != nil {
				t.Fatalf("params: %v", err)
			}
			publishes = append(publishes, p)
		}
	}
	if len(publishes) != 2 {
		t.Fatalf("got %d publishes, want open + clear", len(publishes))
	}
	if len(publishes[1].Diagnostics) != 0 {
		t.Fatalf("close must clear diagnostics, got %v", publishes[1].Diagnostics)
	}
}

func TestServerEditOnFinalEmptyLine(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":1,"text":"yield\n"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didChange","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":2},"contentChanges":[{"range":{"start":{"line":1,"character":0},"end":{"line":1,"character":0}},"text":"yield"}]}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":2,"method":"shutdown"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}

	doc, err := srv.docs.Get("file:///tmp/a.ic10")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := doc.Text(); got != "yield\nyield" {
		t.Fatalf("text = %q, want %q", got, "yield\nyield")
	}
}

func TestServerDropsStaleChange(t *testing.T) {
	var in, out bytes.Buffer
	frame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":5,"text":"yield"}}}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didChange","params":{"textDocument":{"uri":"file:///tmp/a.ic10","version":3},"contentChanges":[{"text":"move r0 missing"}]}}`)
	frame(t, &in, `{"jsonrpc":"2.0","id":2,"method":"shutdown"}`)
	frame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	srv := NewServer(&in, &out, ServerOptions{Config: config.Default()})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}

	doc, err := srv.docs.Get("file:///tmp/a.ic10")
	if err == nil && doc.Text() != "yield" {
		t.Fatalf("stale change was applied: %q", doc.Text())
	}
}
