package file

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/localstore/localstore"
)

// fileSuffix is appended to the escaped key to get the file name of an entry.
// Files without this suffix in the directory are ignored.
const fileSuffix = ".entry"

// Store is a localstore.Backend implementation for storing entries as files.
type Store struct {
	// For locking the locks map
	// (no two goroutines may create a lock for a filename that doesn't have a lock yet).
	locksLock *sync.Mutex
	// For locking file access.
	fileLocks map[string]*sync.RWMutex
	directory string
}

// Set stores the given text for the given key.
// The key must not be "".
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	escapedKey := url.PathEscape(k)

	// Prepare file lock.
	lock := s.prepFileLock(escapedKey)

	// File lock and file handling.
	lock.Lock()
	defer lock.Unlock()
	return os.WriteFile(s.filePath(escapedKey), []byte(text), 0600)
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	escapedKey := url.PathEscape(k)

	// Prepare file lock.
	lock := s.prepFileLock(escapedKey)

	// File lock and file handling.
	lock.RLock()
	data, err := os.ReadFile(s.filePath(escapedKey))
	lock.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return string(data), true, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (s Store) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return s.remove(url.PathEscape(k))
}

func (s Store) remove(escapedKey string) error {
	// Prepare file lock.
	lock := s.prepFileLock(escapedKey)

	// File lock and file handling.
	lock.Lock()
	defer lock.Unlock()
	err := os.Remove(s.filePath(escapedKey))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear deletes all entry files in the store's directory.
func (s Store) Clear() error {
	escapedKeys, err := s.escapedKeys()
	if err != nil {
		return err
	}
	for _, escapedKey := range escapedKeys {
		if err := s.remove(escapedKey); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of entry files in the store's directory.
func (s Store) Len() (int, error) {
	escapedKeys, err := s.escapedKeys()
	if err != nil {
		return 0, err
	}
	return len(escapedKeys), nil
}

func (s Store) escapedKeys() ([]string, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if dirEntry.Type().IsRegular() && strings.HasSuffix(name, fileSuffix) {
			result = append(result, strings.TrimSuffix(name, fileSuffix))
		}
	}
	return result, nil
}

func (s Store) filePath(escapedKey string) string {
	return filepath.Join(s.directory, escapedKey+fileSuffix)
}

// Close closes the store.
// The files are kept. Only the in-memory file locks are released.
func (s Store) Close() error {
	s.locksLock.Lock()
	defer s.locksLock.Unlock()
	for k := range s.fileLocks {
		delete(s.fileLocks, k)
	}
	return nil
}

// prepFileLock returns an existing file lock or creates a new one
func (s Store) prepFileLock(escapedKey string) *sync.RWMutex {
	s.locksLock.Lock()
	lock, found := s.fileLocks[escapedKey]
	if !found {
		lock = new(sync.RWMutex)
		s.fileLocks[escapedKey] = lock
	}
	s.locksLock.Unlock()
	return lock
}

// Options are the options for the file store.
type Options struct {
	// The directory in which to store files.
	// Can be absolute or relative.
	// Optional ("localstore" by default).
	Directory string
}

// DefaultOptions is an Options object with default values.
// Directory: "localstore"
var DefaultOptions = Options{
	Directory: "localstore",
}

// NewStore creates a new file store.
//
// You should call the Close() method on the store when you're done working with it.
func NewStore(options Options) (Store, error) {
	result := Store{}

	// Set default options
	if options.Directory == "" {
		options.Directory = DefaultOptions.Directory
	}

	err := os.MkdirAll(options.Directory, 0700)
	if err != nil {
		return result, err
	}

	result.directory = options.Directory
	result.locksLock = new(sync.Mutex)
	result.fileLocks = make(map[string]*sync.RWMutex)

	return result, nil
}
