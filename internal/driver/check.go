// Package driver runs batch analysis over .ic10 files for the command line.
// It shares the analysis pipeline with the language server but reads files
// from disk, fans work out across a worker pool, and caches per-file results
// on disk keyed by content and configuration.
package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"ic10lsp/internal/ast"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/lexer"
	"ic10lsp/internal/parser"
	"ic10lsp/internal/sema"
	"ic10lsp/internal/source"
	"ic10lsp/internal/symbols"
)

// Result is the outcome of checking one file.
type Result struct {
	Path   string
	Lines  []string
	Bag    *diag.Bag
	Cached bool
}

// Event reports per-file progress to an optional observer. Done counts
// completed files including this one.
type Event struct {
	Path   string
	Done   int
	Total  int
	Cached bool
	Errors bool
}

// Options configures a batch check run.
type Options struct {
	Config         config.Config
	MaxDiagnostics int
	// Jobs caps worker parallelism; zero means GOMAXPROCS.
	Jobs int
	// Cache enables the per-file disk cache when non-nil.
	Cache *DiskCache
	// Progress, when set, is called after each file completes. Calls may
	// come from any worker goroutine.
	Progress func(Event)
}

// ListFiles expands the argument list into a sorted, de-duplicated set of
// .ic10 files. Directories are walked recursively; explicit file arguments
// are taken as-is regardless of extension.
func ListFiles(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".ic10") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// Check analyzes every file in parallel and returns per-file results in the
// same order as ListFiles produced them.
func Check(ctx context.Context, args []string, opts Options) ([]Result, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	files, err := ListFiles(args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	cat := catalog.New()
	cfgKey := configDigest(opts.Config)
	results := make([]Result, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			key := fileKey(content, cfgKey)

			var (
				bag    *diag.Bag
				cached bool
			)
			var payload DiskPayload
			if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
				bag = payloadToBag(&payload, opts.MaxDiagnostics)
				cached = true
			} else {
				bag = analyzeText(cat, string(content), opts.Config, opts.MaxDiagnostics)
				// Cache writes are best effort; a full disk must not fail
				// the check itself.
				_ = opts.Cache.Put(key, bagToPayload(bag))
			}

			results[i] = Result{
				Path:   path,
				Lines:  source.SplitLines(string(content)),
				Bag:    bag,
				Cached: cached,
			}
			if opts.Progress != nil {
				opts.Progress(Event{
					Path:   path,
					Done:   int(done.Add(1)),
					Total:  len(files),
					Cached: cached,
					Errors: bag.HasErrors(),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyzeText runs the full pipeline over one file's content.
func analyzeText(cat *catalog.Catalog, text string, cfg config.Config, maxDiagnostics int) *diag.Bag {
	lines := source.SplitLines(text)
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	astLines := make([]ast.Line, len(lines))
	for i, lineText := range lines {
		idx := source.SafeUint32(i)
		toks := lexer.ScanLine(lineText, idx, rep)
		stmt := parser.ParseLine(toks, rep)
		astLines[i] = ast.Line{Index: idx, Text: lineText, Tokens: toks, Stmt: stmt}
	}

	table := symbols.Build(astLines, rep)
	sema.Analyze(cat, astLines, table, cfg, rep)
	bag.Sort()
	return bag
}

// configDigest keys cache entries on every option that can change analysis
// output.
func configDigest(cfg config.Config) Digest {
	return sha256.Sum256([]byte(fmt.Sprintf(
		"v1|max_lines=%d|max_columns=%d|overline=%t|overcolumn=%t|absolute_jump=%t",
		cfg.MaxLines, cfg.MaxColumns,
		cfg.Warnings.OverlineComment, cfg.Warnings.OvercolumnComment, cfg.Warnings.AbsoluteJump,
	)))
}

func fileKey(content []byte, cfgKey Digest) Digest {
	h := sha256.New()
	h.Write(cfgKey[:])
	h.Write(content)
	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}
