// Package store persists the small amount of local state the app keeps between runs:
// search history, bookmarks and the emails that already used their one activation.
package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Well-known keys.
const (
	KeyHistory    = "scholarscout.history"
	KeyBookmarks  = "scholarscout.bookmarks"
	KeyUsedEmails = "scholarscout.usedEmails"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// KV is a string key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// UpdateFunc receives the current value (ok is false when the key is absent) and returns
// the value to write.
type UpdateFunc func(current string, ok bool) (string, error)

// Updater is implemented by stores that can read-modify-write a key atomically.
type Updater interface {
	Update(key string, fn UpdateFunc) error
}

// Store is a KV that owns resources.
type Store interface {
	KV
	Close() error
}

// Options selects and locates a backend.
type Options struct {
	Backend string
	// Path is the JSON file or SQLite database. Ignored by the memory backend.
	Path string
}

// Open returns the configured backend.
func Open(opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	switch backend {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file store needs a path")
		}
		return NewFileStore(opts.Path)
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store needs a path")
		}
		return OpenSQLite(opts.Path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// DefaultPath returns the data file for backend under dir.
func DefaultPath(dir, backend string) string {
	if strings.EqualFold(backend, BackendSQLite) {
		return filepath.Join(dir, "scholarscout.db")
	}
	return filepath.Join(dir, "scholarscout.json")
}

func update(kv KV, key string, fn UpdateFunc) error {
	if u, ok := kv.(Updater); ok {
		return u.Update(key, fn)
	}
	current, ok, err := kv.Get(key)
	if err != nil {
		return err
	}
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	return kv.Set(key, next)
}
