package leveldb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/localstore/localstore"
)

// Store is a localstore.Backend implementation for LevelDB.
type Store struct {
	db        *leveldb.DB
	writeSync bool
}

func (s Store) writeOptions() *opt.WriteOptions {
	if !s.writeSync {
		return nil
	}
	return &opt.WriteOptions{
		Sync: true,
	}
}

// Set stores the given text for the given key.
// The key must not be "".
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return s.db.Put([]byte(k), []byte(text), s.writeOptions())
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	data, err := s.db.Get([]byte(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
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

	return s.db.Delete([]byte(k), s.writeOptions())
}

// Clear deletes all entries in a single batch.
func (s Store) Clear() error {
	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(nil, nil)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}
	return s.db.Write(batch, s.writeOptions())
}

// Len returns the number of entries.
// LevelDB doesn't keep a count, so all keys are iterated.
func (s Store) Len() (int, error) {
	n := 0
	iter := s.db.NewIterator(nil, nil)
	for iter.Next() {
		n++
	}
	iter.Release()
	return n, iter.Error()
}

// Close closes the store.
// It must be called to releases any outstanding snapshots,
// abort any in-flight compactions and discard open transactions.
func (s Store) Close() error {
	return s.db.Close()
}

// Options are the options for the LevelDB store.
type Options struct {
	// Path of the DB files.
	// Optional ("leveldb" by default).
	Path string
	// Flag to enable immediate file synchronization on writes.
	// If enabled, writes take longer, but no writes are lost when the system crashes.
	// If disabled, writes go to a cache first and are persisted via snapshots automatically.
	// Set(), Delete() and Clear() are writes.
	// Optional (false by default).
	WriteSync bool
}

// DefaultOptions is an Options object with default values.
// Path: "leveldb", WriteSync: false
var DefaultOptions = Options{
	Path: "leveldb",
	// No need to set WriteSync because its zero values is fine.
}

// NewStore creates a new LevelDB store.
//
// You must call the Close() method on the store when you're done working with it.
func NewStore(options Options) (Store, error) {
	result := Store{}

	// Set default values
	if options.Path == "" {
		options.Path = DefaultOptions.Path
	}

	// Open DB
	db, err := leveldb.OpenFile(options.Path, nil)
	if err != nil {
		return result, err
	}

	result.db = db
	result.writeSync = options.WriteSync

	return result, nil
}
