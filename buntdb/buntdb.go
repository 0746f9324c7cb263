package buntdb

import (
	"errors"

	"github.com/tidwall/buntdb"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/util"
)

// Store is a localstore.Backend implementation for BuntDB.
type Store struct {
	db *buntdb.DB
}

// Set stores the given text for the given key.
// The key must not be "".
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(k, text, nil)
		return err
	})
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	err = s.db.View(func(tx *buntdb.Tx) error {
		var err error
		text, err = tx.Get(k)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	return text, true, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (s Store) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(k)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil
	}

	return err
}

// Clear deletes all entries.
func (s Store) Clear() error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		return tx.DeleteAll()
	})
}

// Len returns the number of entries.
func (s Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}

// Close closes the store.
// It must be called to make sure that pending writes are synced to disk.
func (s Store) Close() error {
	return s.db.Close()
}

type SyncPolicy = buntdb.SyncPolicy

const (
	Never       = buntdb.Never
	EverySecond = buntdb.EverySecond
	Always      = buntdb.Always
)

// Options are the options for the BuntDB instance.
type Options struct {
	// Path to database file.
	// Missing parent directories are created.
	// Optional (":memory:" by default).
	Path string

	// SyncPolicy adjusts how often the data is synced to disk.
	// This value can be Never, EverySecond, or Always.
	// Optional (Never, the zero value, if not set).
	SyncPolicy SyncPolicy

	// AutoShrinkPercentage is used by the background process to trigger
	// a shrink of the aof file when the size of the file is larger than the
	// percentage of the result of the previous shrunk file.
	// Optional (100% by default).
	AutoShrinkPercentage int

	// AutoShrinkMinSize defines the minimum size of the aof file before
	// an automatic shrink can occur.
	// Optional (32MB by default).
	AutoShrinkMinSize int

	// AutoShrinkDisabled turns off automatic background shrinking
	// Optional (false by default).
	AutoShrinkDisabled bool
}

// DefaultOptions is an Options object with default values.
var DefaultOptions = Options{
	Path:                 ":memory:",
	SyncPolicy:           EverySecond,
	AutoShrinkPercentage: 100,
	AutoShrinkMinSize:    32 * 1024 * 1024,
	AutoShrinkDisabled:   false,
}

// NewStore creates a new BuntDB store.
//
// You must call the Close() method on the store when you're done working with it.
func NewStore(options Options) (Store, error) {
	result := Store{}

	// Set default values
	if options.Path == "" {
		options.Path = DefaultOptions.Path
	}
	if options.AutoShrinkPercentage == 0 {
		options.AutoShrinkPercentage = DefaultOptions.AutoShrinkPercentage
	}
	if options.AutoShrinkMinSize == 0 {
		options.AutoShrinkMinSize = DefaultOptions.AutoShrinkMinSize
	}

	if options.Path != ":memory:" {
		if err := util.CreateAllDirs(options.Path, 0700); err != nil {
			return result, err
		}
	}

	db, err := buntdb.Open(options.Path)
	if err != nil {
		return result, err
	}

	err = db.SetConfig(buntdb.Config{
		SyncPolicy:           options.SyncPolicy,
		AutoShrinkPercentage: options.AutoShrinkPercentage,
		AutoShrinkMinSize:    options.AutoShrinkMinSize,
		AutoShrinkDisabled:   options.AutoShrinkDisabled,
	})
	if err != nil {
		_ = db.Close()
		return result, err
	}

	result.db = db
	return result, nil
}
