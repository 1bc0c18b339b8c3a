package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

// diskCacheSchemaVersion is bumped whenever CachedFile changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file scan results keyed by CacheKey.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedFile is the on-disk form of one file's diagnostics.
type CachedFile struct {
	Schema      uint16
	Path        string
	Aborted     bool
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app, or ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Errorf("cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("create cache dir %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key Digest, payload *CachedFile) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = errors.Errorf("cache cleanup: %w", rmErr)
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return errors.Errorf("cache encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	return nil
}

// Get loads the entry for key into out. A missing entry or one written by an
// older schema is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *CachedFile) (bool, error) {
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
		return false, errors.Errorf("cache get: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, errors.Errorf("cache decode: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
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
		return errors.Errorf("cache drop: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Errorf("cache drop: %w", err)
	}
	return os.RemoveAll(old)
}

// rebind points cached diagnostics at the file they are being restored for.
func rebind(ds []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	for i := range ds {
		ds[i].Primary.File = id
		for j := range ds[i].Notes {
			ds[i].Notes[j].Span.File = id
		}
	}
	return ds
}
