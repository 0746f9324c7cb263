package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/localstore/localstore/file"
	"github.com/localstore/localstore/test"
)

// TestStore tests if reading from, writing to, deleting from and clearing the store works properly.
func TestStore(t *testing.T) {
	store := createStore(t)
	test.TestBackend(store, t)
}

// TestStorage tests the typed operations on top of the store.
func TestStorage(t *testing.T) {
	store := createStore(t)
	test.TestStorage(store, t)
}

// TestTypes tests if setting and getting values works with all Go types.
func TestTypes(t *testing.T) {
	store := createStore(t)
	test.TestTypes(store, t)
}

// TestStoreConcurrent launches a bunch of goroutines that concurrently work with one store.
// Every file has its own sync.RWMutex, so testing this is important.
func TestStoreConcurrent(t *testing.T) {
	store := createStore(t)

	goroutineCount := 1000

	test.TestConcurrentInteractions(t, goroutineCount, store)
}

// TestErrors tests some error cases.
func TestErrors(t *testing.T) {
	store := createStore(t)
	test.TestEmptyKey(store, t)
}

// TestForeignFiles tests if files that weren't written by the store are ignored.
func TestForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewStore(file.Options{Directory: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}
	if err = os.Mkdir(filepath.Join(dir, "sub.entry"), 0700); err != nil {
		t.Fatal(err)
	}

	n, err := store.Len()
	if err != nil {
		t.Error(err)
	}
	if n != 0 {
		t.Errorf("Expected 0 entries, but there were %d", n)
	}
	if err = store.Clear(); err != nil {
		t.Error(err)
	}
	if _, err = os.Stat(filepath.Join(dir, "README.md")); err != nil {
		t.Errorf("Clear() should keep foreign files: %v", err)
	}
}

func createStore(t *testing.T) file.Store {
	options := file.Options{
		Directory: t.TempDir(),
	}
	store, err := file.NewStore(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
