// Package store owns the authoritative text and derived analysis for every
// open document. Updates to the same document are serialized; different
// documents analyze independently. Each update synchronously re-runs the
// whole pipeline and publishes a new immutable Document snapshot, so queries
// never observe stale or partial analysis.
package store

import (
	"errors"
	"sync"
	"sync/atomic"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/sema"
	"ic10lsp/internal/source"
	"ic10lsp/internal/symbols"
)

var (
	// ErrNotFound reports an operation against an unknown document.
	ErrNotFound = errors.New("document not found")
	// ErrStaleUpdate reports a change carrying a version that is not newer
	// than the stored one. The document is left unchanged.
	ErrStaleUpdate = errors.New("stale document update")
)

// Range is a half-open [Start, End) region of the document.
type Range struct {
	Start source.Position
	End   source.Position
}

// Change is one content change: a ranged splice, or a full-text replacement
// when Range is nil.
type Change struct {
	Range *Range
	Text  string
}

// Options configures a Store.
type Options struct {
	MaxDiagnostics int
	CacheSize      int
}

// Store keys open documents by URI.
type Store struct {
	cat   *catalog.Catalog
	cache *lineCache

	mu      sync.RWMutex
	cfg     config.Config
	docs    map[string]*entry
	maxDiag int
}

// entry serializes updates to one document and holds its current snapshot.
type entry struct {
	mu   sync.Mutex
	snap atomic.Pointer[Document]
}

// New creates an empty store.
func New(cat *catalog.Catalog, cfg config.Config, opts Options) *Store {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}
	return &Store{
		cat:     cat,
		cache:   newLineCache(opts.CacheSize),
		cfg:     cfg,
		docs:    make(map[string]*entry),
		maxDiag: maxDiag,
	}
}

// Config returns the current configuration snapshot.
func (s *Store) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Open registers a document with its full text. Re-opening an already open
// document replaces its content. Returns the analyzed snapshot.
func (s *Store) Open(uri, text string, version int) *Document {
	s.mu.Lock()
	e, ok := s.docs[uri]
	if !ok {
		e = &entry{}
		s.docs[uri] = e
	}
	cfg := s.cfg
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	doc := s.build(uri, text, version, cfg)
	e.snap.Store(doc)
	return doc
}

// Change applies content changes at the given version and re-analyzes.
// Changes apply in order; a nil-range change replaces the full text.
func (s *Store) Change(uri string, version int, changes []Change) (*Document, error) {
	s.mu.RLock()
	e, ok := s.docs[uri]
	cfg := s.cfg
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.snap.Load()
	if prev == nil {
		return nil, ErrNotFound
	}
	if version <= prev.Version {
		return nil, ErrStaleUpdate
	}
	text := applyChanges(prev.Text(), changes)
	doc := s.build(uri, text, version, cfg)
	e.snap.Store(doc)
	return doc, nil
}

// Close forgets a document.
func (s *Store) Close(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uri]; !ok {
		return ErrNotFound
	}
	delete(s.docs, uri)
	return nil
}

// Get returns the current snapshot for uri.
func (s *Store) Get(uri string) (*Document, error) {
	s.mu.RLock()
	e, ok := s.docs[uri]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	doc := e.snap.Load()
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// SetConfig swaps the configuration and re-analyzes every open document,
// returning the fresh snapshots so the caller can republish diagnostics.
func (s *Store) SetConfig(cfg config.Config) []*Document {
	s.mu.Lock()
	s.cfg = cfg
	entries := make(map[string]*entry, len(s.docs))
	for uri, e := range s.docs {
		entries[uri] = e
	}
	s.mu.Unlock()

	docs := make([]*Document, 0, len(entries))
	for uri, e := range entries {
		e.mu.Lock()
		prev := e.snap.Load()
		if prev != nil {
			doc := s.build(uri, prev.Text(), prev.Version, cfg)
			e.snap.Store(doc)
			docs = append(docs, doc)
		}
		e.mu.Unlock()
	}
	return docs
}

// build runs the full pipeline: lex (cached per line), parse, symbol table,
// semantic analysis. Diagnostics are recomputed from scratch every time.
func (s *Store) build(uri, text string, version int, cfg config.Config) *Document {
	lines := source.SplitLines(text)
	bag := diag.NewBag(s.maxDiag)
	rep := diag.BagReporter{Bag: bag}

	astLines := make([]ast.Line, len(lines))
	for i, lineText := range lines {
		idx := source.SafeUint32(i)
		toks := s.cache.tokens(lineText, idx, rep)
		stmt := parser.ParseLine(toks, rep)
		astLines[i] = ast.Line{Index: idx, Text: lineText, Tokens: toks, Stmt: stmt}
	}

	table := symbols.Build(astLines, rep)
	sema.Analyze(s.cat, astLines, table, cfg, rep)
	bag.Sort()

	return &Document{
		URI:     uri,
		Version: version,
		Lines:   astLines,
		Symbols: table,
		Diags:   bag,
		Config:  cfg,
		Catalog: s.cat,
	}
}

// applyChanges splices ranged edits into text in order. Positions address
// 0-based line and byte column; out-of-range positions clamp to the
// document bounds.
func applyChanges(text string, changes []Change) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func offsetForPosition(text string, pos source.Position) int {
	line := uint32(0)
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	col := uint32(0)
	for i < len(text) && col < pos.Col {
		if text[i] == '\n' {
			break
		}
		i++
		col++
	}
	return i
}
