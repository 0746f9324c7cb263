package gomap_test

import (
	"testing"

	"github.com/localstore/localstore/gomap"
	"github.com/localstore/localstore/test"
)

// TestStore tests if reading from, writing to, deleting from and clearing the store works properly.
func TestStore(t *testing.T) {
	store := gomap.NewStore()
	defer func() { _ = store.Close() }()
	test.TestBackend(store, t)
}

// TestStorage tests the typed operations on top of the store.
func TestStorage(t *testing.T) {
	store := gomap.NewStore()
	defer func() { _ = store.Close() }()
	test.TestStorage(store, t)
}

// TestTypes tests if setting and getting values works with all Go types.
func TestTypes(t *testing.T) {
	store := gomap.NewStore()
	defer func() { _ = store.Close() }()
	test.TestTypes(store, t)
}

// TestStoreConcurrent launches a bunch of goroutines that concurrently work with one store.
// The store works with a single map, so everything should be locked properly.
func TestStoreConcurrent(t *testing.T) {
	store := gomap.NewStore()
	defer func() { _ = store.Close() }()

	goroutineCount := 1000

	test.TestConcurrentInteractions(t, goroutineCount, store)
}

// TestErrors tests some error cases.
func TestErrors(t *testing.T) {
	store := gomap.NewStore()
	defer func() { _ = store.Close() }()
	test.TestEmptyKey(store, t)
}

// TestClose tests if the store is empty after closing it.
func TestClose(t *testing.T) {
	store := gomap.NewStore()
	if err := store.Set("foo", "bar"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Error(err)
	}
	n, err := store.Len()
	if err != nil {
		t.Error(err)
	}
	if n != 0 {
		t.Errorf("Expected 0 entries after Close(), but there were %d", n)
	}
}
