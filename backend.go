package localstore

// Backend is an abstraction for the raw key-value facility entries are stored in.
// A backend stores and retrieves text for non-empty string keys.
// It doesn't interpret the text; encoding and decoding is done by Storage.
type Backend interface {
	// Get retrieves the text stored for the given key.
	// If no entry exists it returns ("", false, nil).
	Get(k string) (text string, found bool, err error)
	// Set stores the given text for the given key, replacing any existing entry.
	Set(k, text string) error
	// Delete deletes the entry for the given key.
	// Deleting a non-existing entry does NOT lead to an error.
	Delete(k string) error
	// Clear deletes all entries.
	Clear() error
	// Len returns the number of entries.
	Len() (int, error)
}
