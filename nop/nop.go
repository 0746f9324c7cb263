package nop

import "github.com/localstore/localstore"

// Store is a localstore.Backend implementation that does nothing except validate the key if applicable.
// It's always empty, which makes it useful for dry runs.
type Store struct{}

// Set pretends it stores the entry. Always returns nil error unless the key is invalid.
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return nil
}

// Get pretends it fetches the entry. Always returns not found and nil error unless the key is invalid.
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	return "", false, nil
}

// Delete pretends it deletes the entry. Always returns nil error unless the key is invalid.
func (s Store) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return nil
}

// Clear pretends it deletes all entries. Always returns nil error.
func (s Store) Clear() error {
	return nil
}

// Len always returns 0.
func (s Store) Len() (int, error) {
	return 0, nil
}

// Close pretends it closes the store. Always returns nil error.
func (s Store) Close() error {
	return nil
}

// NewStore creates a new nop Store that implements the localstore.Backend interface.
func NewStore() Store {
	return Store{}
}
