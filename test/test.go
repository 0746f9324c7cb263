// Package test contains tests that every localstore.Backend implementation runs.
package test

import (
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/go-test/deep"

	"github.com/localstore/localstore"
)

// Foo is just some struct for common tests.
type Foo struct {
	Bar string
}

func randomKey() string {
	return strconv.FormatInt(rand.Int63(), 10)
}

// TestBackend tests if reading, writing, deleting, counting and clearing raw entries works properly.
// The backend is cleared at the start, so don't pass a backend with valuable data.
func TestBackend(b localstore.Backend, t *testing.T) {
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	assertLen(t, b, 0)

	key := randomKey()

	// Initially the key shouldn't exist
	_, found, err := b.Get(key)
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("An entry was found, but no entry was expected")
	}

	// Deleting a non-existing entry should NOT lead to an error
	if err = b.Delete(key); err != nil {
		t.Error(err)
	}

	texts := []string{
		`{"Bar":"baz"}`,
		localstore.UndefinedToken,
		"\x00\xff\xc1 binary",
		"ünïcødé ⚡",
	}
	for _, expected := range texts {
		if err = b.Set(key, expected); err != nil {
			t.Error(err)
		}
		actual, found, err := b.Get(key)
		if err != nil {
			t.Error(err)
		}
		if !found {
			t.Error("No entry was found, but should have been")
		}
		if actual != expected {
			t.Errorf("Expected: %q, but was: %q", expected, actual)
		}
	}
	assertLen(t, b, 1)

	otherKey := randomKey() + "/with spaces?and&symbols"
	if err = b.Set(otherKey, "other"); err != nil {
		t.Error(err)
	}
	assertLen(t, b, 2)

	// Delete
	if err = b.Delete(key); err != nil {
		t.Error(err)
	}
	// Entry shouldn't exist anymore
	_, found, err = b.Get(key)
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("An entry was found, but no entry was expected")
	}
	assertLen(t, b, 1)

	if err = b.Clear(); err != nil {
		t.Error(err)
	}
	assertLen(t, b, 0)
	_, found, err = b.Get(otherKey)
	if err != nil {
		t.Error(err)
	}
	if found {
		t.Error("An entry was found after Clear(), but no entry was expected")
	}

	// Clearing an empty backend should NOT lead to an error
	if err = b.Clear(); err != nil {
		t.Error(err)
	}
}

// TestEmptyKey tests if the backend rejects empty keys.
func TestEmptyKey(b localstore.Backend, t *testing.T) {
	if err := b.Set("", "bar"); !errors.Is(err, localstore.ErrKeyEmpty) {
		t.Errorf("Expected a key empty error, but was: %v", err)
	}
	if _, _, err := b.Get(""); !errors.Is(err, localstore.ErrKeyEmpty) {
		t.Errorf("Expected a key empty error, but was: %v", err)
	}
	if err := b.Delete(""); !errors.Is(err, localstore.ErrKeyEmpty) {
		t.Errorf("Expected a key empty error, but was: %v", err)
	}
}

func assertLen(t *testing.T, b localstore.Backend, expected int) {
	t.Helper()
	actual, err := b.Len()
	if err != nil {
		t.Error(err)
	}
	if actual != expected {
		t.Errorf("Expected %d entries, but there were %d", expected, actual)
	}
}

// TestStorage tests the localstore.Storage operations on top of the given backend.
// The backend is cleared at the start, so don't pass a backend with valuable data.
func TestStorage(b localstore.Backend, t *testing.T) {
	s := localstore.New(b, localstore.Options{})
	if _, err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	// Missing entry
	v, found, err := s.Get("hi", localstore.GetOptions{})
	if err != nil {
		t.Error(err)
	}
	if found || v != nil {
		t.Errorf("Expected no entry, but got (%v, %v)", v, found)
	}

	// Stored text is the plain serialization
	if err = s.Set("hi", map[string]any{"everyone": true}); err != nil {
		t.Error(err)
	}
	raw, _, err := b.Get("hi")
	if err != nil {
		t.Error(err)
	}
	if raw != `{"everyone":true}` {
		t.Errorf(`Expected raw text {"everyone":true}, but was: %q`, raw)
	}
	v, found, err = s.Get("hi", localstore.GetOptions{})
	if err != nil {
		t.Error(err)
	}
	if !found {
		t.Error("No value was found, but should have been")
	}
	if diff := deep.Equal(v, map[string]any{"everyone": true}); diff != nil {
		t.Error(diff)
	}

	// Undefined
	if err = s.Set("hi", localstore.Undefined); err != nil {
		t.Error(err)
	}
	raw, _, err = b.Get("hi")
	if err != nil {
		t.Error(err)
	}
	if raw != localstore.UndefinedToken {
		t.Errorf("Expected raw text %q, but was: %q", localstore.UndefinedToken, raw)
	}
	v, found, err = s.Get("hi", localstore.GetOptions{})
	if err != nil {
		t.Error(err)
	}
	if !found || v != localstore.Undefined {
		t.Errorf("Expected (undefined, true), but got (%v, %v)", v, found)
	}
	exists, err := s.Exists("hi")
	if err != nil {
		t.Error(err)
	}
	if !exists {
		t.Error("An entry holding undefined should exist")
	}

	// Destroy
	if err = s.Set("a", 0); err != nil {
		t.Error(err)
	}
	for _, options := range []localstore.GetOptions{
		{},
		{Destroy: false},
		{DestroyOnError: true},
		localstore.ParseGetOptions(map[string]any{"destroy": 1}),
	} {
		if _, _, err = s.Get("a", options); err != nil {
			t.Error(err)
		}
		assertExists(t, s, "a", true)
	}
	v, found, err = s.Get("a", localstore.GetOptions{Destroy: true})
	if err != nil {
		t.Error(err)
	}
	if !found || v != float64(0) {
		t.Errorf("Expected (0, true), but got (%v, %v)", v, found)
	}
	assertExists(t, s, "a", false)

	// DestroyOnError
	if err = b.Set("a", "{bad json"); err != nil {
		t.Error(err)
	}
	_, _, err = s.Get("a", localstore.GetOptions{})
	if !errors.Is(err, localstore.ErrDecode) {
		t.Errorf("Expected a decode error, but was: %v", err)
	}
	assertExists(t, s, "a", true)
	_, _, err = s.Get("a", localstore.GetOptions{DestroyOnError: true})
	if !errors.Is(err, localstore.ErrDecode) {
		t.Errorf("Expected a decode error, but was: %v", err)
	}
	assertExists(t, s, "a", false)

	// Remove
	if err = s.Set("a", "x"); err != nil {
		t.Error(err)
	}
	for _, expected := range []bool{true, false} {
		removed, err := s.Remove("a")
		if err != nil {
			t.Error(err)
		}
		if removed != expected {
			t.Errorf("Expected Remove() to return %v, but was %v", expected, removed)
		}
	}

	// Clear
	for _, expected := range []bool{true, false} {
		cleared, err := s.Clear()
		if err != nil {
			t.Error(err)
		}
		if cleared != expected {
			t.Errorf("Expected Clear() to return %v, but was %v", expected, cleared)
		}
	}
	assertLen(t, b, 0)
}

func assertExists(t *testing.T, s *localstore.Storage, k string, expected bool) {
	t.Helper()
	actual, err := s.Exists(k)
	if err != nil {
		t.Error(err)
	}
	if actual != expected {
		t.Errorf("Expected Exists(%q) to be %v, but was %v", k, expected, actual)
	}
}

// TestTypes tests if setting and getting values works with all Go types.
func TestTypes(b localstore.Backend, t *testing.T) {
	s := localstore.New(b, localstore.Options{})

	testVals := []struct {
		subTestName string
		val         any
		newPtr      func() any
	}{
		{"bool", true, func() any { return new(bool) }},
		{"float", 1.2, func() any { return new(float64) }},
		{"int", 1, func() any { return new(int) }},
		{"rune", '⚡', func() any { return new(rune) }},
		{"string", "foo", func() any { return new(string) }},
		{"struct", Foo{Bar: "baz"}, func() any { return new(Foo) }},
		{"slice of bool", []bool{true, false}, func() any { return new([]bool) }},
		{"slice of byte", []byte("foo"), func() any { return new([]byte) }},
		{"slice of int", []int{1, 2}, func() any { return new([]int) }},
		{"slice of string", []string{"foo", "bar"}, func() any { return new([]string) }},
		{"map", map[string]int{"foo": 1}, func() any { return new(map[string]int) }},
	}

	for _, testVal := range testVals {
		testVal := testVal
		t.Run(testVal.subTestName, func(t *testing.T) {
			key := randomKey()
			if err := s.Set(key, testVal.val); err != nil {
				t.Fatal(err)
			}
			actualPtr := testVal.newPtr()
			found, err := s.GetInto(key, actualPtr, localstore.GetOptions{})
			handleGetError(t, err, found)
			if diff := deep.Equal(deref(actualPtr), testVal.val); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func deref(ptr any) any {
	switch p := ptr.(type) {
	case *bool:
		return *p
	case *float64:
		return *p
	case *int:
		return *p
	case *rune:
		return *p
	case *string:
		return *p
	case *Foo:
		return *p
	case *[]bool:
		return *p
	case *[]byte:
		return *p
	case *[]int:
		return *p
	case *[]string:
		return *p
	case *map[string]int:
		return *p
	}
	return nil
}

func handleGetError(t *testing.T, err error, found bool) {
	t.Helper()
	if err != nil {
		t.Error(err)
	}
	if !found {
		t.Error("No value was found, but should have been")
	}
}

// TestConcurrentInteractions launches a bunch of goroutines that concurrently work with the backend.
func TestConcurrentInteractions(t *testing.T, goroutineCount int, b localstore.Backend) {
	s := localstore.New(b, localstore.Options{})

	waitGroup := sync.WaitGroup{}
	waitGroup.Add(goroutineCount) // Must be called before any goroutine is started
	for i := 0; i < goroutineCount; i++ {
		go InteractWithStorage(s, strconv.Itoa(i), t, &waitGroup)
	}
	waitGroup.Wait()

	// Now make sure that all values are in the store
	expected := Foo{}
	for i := 0; i < goroutineCount; i++ {
		actualPtr := new(Foo)
		found, err := s.GetInto(strconv.Itoa(i), actualPtr, localstore.GetOptions{})
		if err != nil {
			t.Errorf("An error occurred during the test: %v", err)
		}
		if !found {
			t.Error("No value was found, but should have been")
		}
		actual := *actualPtr
		if actual != expected {
			t.Errorf("Expected: %v, but was: %v", expected, actual)
		}
	}
}

// InteractWithStorage reads from and writes to the storage. Meant to be executed in a goroutine.
// Does NOT check if the storage works correctly (that's done elsewhere),
// only checks for errors that might occur due to concurrent access.
func InteractWithStorage(s *localstore.Storage, key string, t *testing.T, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	// Read
	_, err := s.GetInto(key, new(Foo), localstore.GetOptions{})
	if err != nil {
		t.Error(err)
	}
	// Write
	err = s.Set(key, Foo{})
	if err != nil {
		t.Error(err)
	}
	// Read
	_, err = s.GetInto(key, new(Foo), localstore.GetOptions{})
	if err != nil {
		t.Error(err)
	}
	// Check
	if _, err = s.Exists(key); err != nil {
		t.Error(err)
	}
}
