package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

const (
	tempSuffix    = ".tmp"
	lockSuffix    = ".lock"
	corruptSuffix = ".corrupt"
)

// FileStore keeps every key in one JSON object file. Writes go through a temp file and a
// rename; Update additionally holds an OS file lock so concurrent instances serialize.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore prepares path's directory. The file itself is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path, lock: flock.New(path + lockSuffix)}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) (string, bool, error) {
	values, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	return f.Update(key, func(string, bool) (string, error) {
		return value, nil
	})
}

// Update runs fn under the file lock. A file that no longer decodes is moved aside and
// replaced instead of blocking every later write.
func (f *FileStore) Update(key string, fn UpdateFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.readAll()
	if err != nil {
		var syntax *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntax) && !errors.As(err, &typeErr) {
			return err
		}
		_ = os.Rename(f.path, f.path+corruptSuffix)
		values = map[string]string{}
	}
	current, ok := values[key]
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	values[key] = next
	return f.writeAll(values)
}

func (f *FileStore) Close() error {
	return f.lock.Close()
}

func (f *FileStore) readAll() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) writeAll(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tempPath := f.path + tempSuffix
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
