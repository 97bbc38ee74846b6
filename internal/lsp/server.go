package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/store"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

const (
	commandVersion = "version"
	configFileName = "ic10.toml"
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Config         config.Config
	MaxDiagnostics int
	Version        string
}

// Server handles stdio JSON-RPC. Document state lives in the store; the
// server itself only tracks protocol-session state.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	docs    *store.Store
	version string

	mu                sync.Mutex
	workspaceRoot     string
	shutdownRequested bool
	published         map[string]struct{}
}

// NewServer constructs an LSP server over the given transport.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		cfg = config.Default()
	}
	return &Server{
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
		docs: store.New(catalog.New(), cfg, store.Options{
			MaxDiagnostics: opts.MaxDiagnostics,
		}),
		version:   opts.Version,
		published: make(map[string]struct{}),
	}
}

// Run serves requests until the client disconnects or asks to exit.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "workspace/executeCommand":
		return s.handleExecuteCommand(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/signatureHelp":
		return s.handleSignatureHelp(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()
	if root != "" {
		s.applyWorkspaceConfig(root)
	}

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
			},
			HoverProvider:          true,
			DefinitionProvider:     true,
			DocumentSymbolProvider: true,
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{" "},
			},
			SignatureHelpProvider: &signatureHelpOptions{
				TriggerCharacters: []string{" "},
			},
			ExecuteCommandProvider: &executeCommandOptions{
				Commands: []string{commandVersion},
			},
		},
		ServerInfo: &serverInfo{Name: "ic10lsp", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

// applyWorkspaceConfig loads ic10.toml from the workspace root when the file
// exists there. Workspace settings win over whatever configuration the
// process was started with; documents opened later analyze under them.
func (s *Server) applyWorkspaceConfig(root string) {
	path := filepath.Join(root, configFileName)
	if _, err := os.Stat(path); err != nil {
		return
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		s.logf("workspace config %s: %v", path, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		s.logf("workspace config %s: %v", path, err)
		return
	}
	for _, doc := range s.docs.SetConfig(cfg) {
		if err := s.publishFor(doc); err != nil {
			s.logf("republish %s: %v", doc.URI, err)
		}
	}
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.clearPublished()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	doc := s.docs.Open(uri, params.TextDocument.Text, params.TextDocument.Version)
	return s.publishFor(doc)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	prev, err := s.docs.Get(uri)
	if err != nil {
		s.logf("didChange for unopened document %s", uri)
		return nil
	}
	changes := convertChanges(prev.Text(), params.ContentChanges)
	doc, err := s.docs.Change(uri, params.TextDocument.Version, changes)
	if err != nil {
		if errors.Is(err, store.ErrStaleUpdate) {
			s.logf("dropping stale update for %s (version %d)", uri, params.TextDocument.Version)
			return nil
		}
		return nil
	}
	return s.publishFor(doc)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	if err := s.docs.Close(uri); err != nil {
		return nil
	}
	s.mu.Lock()
	_, had := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if had {
		return s.sendPublish(uri, nil, nil)
	}
	return nil
}

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	switch params.Command {
	case commandVersion:
		if err := s.sendNotification("window/showMessage", showMessageParams{
			Type:    messageTypeInfo,
			Message: "ic10lsp " + s.version,
		}); err != nil {
			return err
		}
		return s.sendResponse(msg.ID, s.version)
	default:
		return s.sendError(msg.ID, -32602, fmt.Sprintf("unknown command %q", params.Command))
	}
}

func (s *Server) document(rawURI string) *store.Document {
	doc, err := s.docs.Get(canonicalURI(rawURI))
	if err != nil {
		return nil
	}
	return doc
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}
