package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	file, err := NewFileStore(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sqlite, err := OpenSQLite(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	stores := map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendSQLite: sqlite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("missing"); ok || err != nil {
				t.Fatalf("missing key: ok=%v err=%v", ok, err)
			}
			if err := kv.Set("k", "v1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := kv.Set("k", "v2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			value, ok, err := kv.Get("k")
			if err != nil || !ok || value != "v2" {
				t.Fatalf("Get = %q %v %v", value, ok, err)
			}
			err = update(kv, "k", func(current string, ok bool) (string, error) {
				if !ok || current != "v2" {
					t.Errorf("update saw %q %v", current, ok)
				}
				return current + "+", nil
			})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if value, _, _ := kv.Get("k"); value != "v2+" {
				t.Fatalf("after update = %q", value)
			}
		})
	}
}

func TestFileStoreSerializesInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")
	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer first.Close()
	defer second.Close()
	assertNoLostUpdates(t, first, second)
}

func TestSQLiteSerializesInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer first.Close()
	defer second.Close()
	assertNoLostUpdates(t, first, second)
}

func assertNoLostUpdates(t *testing.T, stores ...Store) {
	t.Helper()
	const rounds = 20
	var wg sync.WaitGroup
	for _, s := range stores {
		wg.Add(1)
		go func(s Store) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				err := update(s, "counter", func(current string, _ bool) (string, error) {
					n, _ := strconv.Atoi(current)
					return strconv.Itoa(n + 1), nil
				})
				if err != nil {
					t.Errorf("update: %v", err)
				}
			}
		}(s)
	}
	wg.Wait()

	value, _, err := stores[0].Get("counter")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != strconv.Itoa(len(stores)*rounds) {
		t.Fatalf("lost updates: counter = %s", value)
	}
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, _, err := fs.Get("k"); err == nil {
		t.Fatal("expected read error for corrupt file")
	}
	if err := fs.Set("k", "v"); err != nil {
		t.Fatalf("Set after corruption: %v", err)
	}
	if value, ok, _ := fs.Get("k"); !ok || value != "v" {
		t.Fatalf("Get = %q %v", value, ok)
	}
	if _, err := os.Stat(path + corruptSuffix); err != nil {
		t.Fatalf("corrupt file should be kept aside: %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		s, err := Open(Options{Backend: backend, Path: DefaultPath(dir, backend)})
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		s.Close()
	}
	if _, err := Open(Options{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := Open(Options{Backend: BackendFile}); err == nil {
		t.Fatal("expected error for missing path")
	}
}
