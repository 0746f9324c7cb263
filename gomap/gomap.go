package gomap

import (
	"sync"

	"github.com/localstore/localstore"
)

// Store is a localstore.Backend implementation for a Go map with a sync.RWMutex for concurrent access.
type Store struct {
	m    map[string]string
	lock *sync.RWMutex
}

// Set stores the given text for the given key.
// The key must not be "".
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.m[k] = text
	return nil
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	text, found = s.m[k]
	return text, found, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (s Store) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.m, k)
	return nil
}

// Clear deletes all entries.
func (s Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for k := range s.m {
		delete(s.m, k)
	}
	return nil
}

// Len returns the number of entries.
func (s Store) Len() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.m), nil
}

// Close closes the store.
// All entries are deleted, leaving their memory free for garbage collection.
func (s Store) Close() error {
	return s.Clear()
}

// NewStore creates a new Go map store.
//
// You should call the Close() method on the store when you're done working with it.
func NewStore() Store {
	return Store{
		m:    make(map[string]string),
		lock: new(sync.RWMutex),
	}
}
