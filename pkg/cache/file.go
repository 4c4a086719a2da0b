package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
	"unicode/utf8"
)

const entryExt = ".json"

// FileCache keeps downloaded manifests as JSON files below a directory.
// Each file records the key it was stored under so the cache can be listed.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens a cache rooted at dir, creating the directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the cache entries.
func (c *FileCache) Dir() string { return c.dir }

// entry is the on-disk form. UTF-8 bodies are kept as text so a cached
// manifest can be read with any editor; anything else (UTF-16 with a BOM)
// goes to Raw, which JSON encodes as base64 and round-trips exactly.
type entry struct {
	Key       string    `json:"key"`
	Body      string    `json:"body,omitempty"`
	Raw       []byte    `json:"raw,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func newEntry(key string, data []byte, now time.Time) entry {
	e := entry{Key: key, FetchedAt: now}
	if utf8.Valid(data) {
		e.Body = string(data)
	} else {
		e.Raw = data
	}
	return e
}

func (e entry) data() []byte {
	if e.Raw != nil {
		return e.Raw
	}
	return []byte(e.Body)
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Entry describes one cached manifest.
type Entry struct {
	Key       string
	Size      int
	FetchedAt time.Time
	ExpiresAt time.Time
	Expired   bool
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	e, err := readEntry(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e == nil || e.Key != key || e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.data(), true, nil
}

// Set writes the entry to a temporary file and renames it into place, so a
// concurrent reader never sees a partial manifest.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	e := newEntry(key, data, now)
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error { return nil }

// Entries lists the cached manifests, most recently fetched first.
// Unreadable files are skipped.
func (c *FileCache) Entries() ([]Entry, error) {
	now := c.now()
	var out []Entry
	err := c.walk(func(path string, e *entry) {
		out = append(out, Entry{
			Key:       e.Key,
			Size:      len(e.data()),
			FetchedAt: e.FetchedAt,
			ExpiresAt: e.ExpiresAt,
			Expired:   e.expired(now),
		})
	})
	slices.SortFunc(out, func(a, b Entry) int { return b.FetchedAt.Compare(a.FetchedAt) })
	return out, err
}

// Clear removes every entry and returns how many were deleted.
func (c *FileCache) Clear() (int, error) {
	return c.remove(func(*entry) bool { return true })
}

// Prune removes expired entries and returns how many were deleted.
func (c *FileCache) Prune() (int, error) {
	now := c.now()
	return c.remove(func(e *entry) bool { return e.expired(now) })
}

func (c *FileCache) remove(match func(*entry) bool) (int, error) {
	count := 0
	err := c.walk(func(path string, e *entry) {
		if match(e) && os.Remove(path) == nil {
			count++
		}
	})
	return count, err
}

// walk calls fn for every decodable entry file below the cache directory.
func (c *FileCache) walk(fn func(path string, e *entry)) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		if e, err := readEntry(path); err == nil && e != nil {
			fn(path, e)
		}
		return nil
	})
}

// readEntry returns a nil entry without error when the file is corrupt.
func readEntry(path string) (*entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e entry
	if json.Unmarshal(raw, &e) != nil {
		return nil, nil
	}
	return &e, nil
}

// path shards entries by the first two hex digits of the key hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
