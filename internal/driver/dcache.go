package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// Current schema version - increment when DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content key.
type Digest [32]byte

func (d Digest) hex() string {
	return hex.EncodeToString(d[:])
}

// DiskCache persists per-file check results keyed by a digest over the file
// content and the active configuration. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the diagnostics of one checked file. Spans survive the
// round trip byte-exactly, so cached output is indistinguishable from a
// fresh run.
type DiskPayload struct {
	Schema uint16
	Diags  []diagPayload
}

type diagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Line     uint32
	Start    uint32
	End      uint32
	Notes    []notePayload
}

type notePayload struct {
	Message string
	Line    uint32
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location: $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "checks", key.hex()+".mp")
}

// Put serializes and writes a payload to the disk cache. The write goes
// through a temp file and a rename so readers never see a torn payload.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A missing entry is not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// bagToPayload flattens a diagnostic bag for caching.
func bagToPayload(bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		dp := diagPayload{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Line:     d.Primary.Line,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, note := range d.Notes {
			dp.Notes = append(dp.Notes, notePayload{
				Message: note.Msg,
				Line:    note.Span.Line,
				Start:   note.Span.Start,
				End:     note.Span.End,
			})
		}
		payload.Diags = append(payload.Diags, dp)
	}
	return payload
}

// payloadToBag restores a cached diagnostic bag.
func payloadToBag(payload *DiskPayload, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, dp := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(dp.Severity),
			Code:     diag.Code(dp.Code),
			Message:  dp.Message,
			Primary:  source.Span{Line: dp.Line, Start: dp.Start, End: dp.End},
		}
		for _, np := range dp.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{Line: np.Line, Start: np.Start, End: np.End},
				Msg:  np.Message,
			})
		}
		bag.Add(d)
	}
	return bag
}
