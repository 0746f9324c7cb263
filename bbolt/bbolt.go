package bbolt

import (
	bolt "go.etcd.io/bbolt"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/util"
)

// Store is a localstore.Backend implementation for bbolt (formerly known as Bolt / Bolt DB).
type Store struct {
	db         *bolt.DB
	bucketName []byte
}

// Set stores the given text for the given key.
// The key must not be "".
func (s Store) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Put([]byte(k), []byte(text))
	})
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (s Store) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		txData := b.Get([]byte(k))
		// txData is only valid during the transaction.
		// Converting it to a string copies it.
		if txData != nil {
			text = string(txData)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return text, found, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (s Store) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Delete([]byte(k))
	})
}

// Clear deletes all entries by replacing the bucket with an empty one.
func (s Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(s.bucketName)
		return err
	})
}

// Len returns the number of entries in the bucket.
func (s Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucketName).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

// Close closes the store.
// It must be called to make sure that all open transactions finish and to release all DB resources.
func (s Store) Close() error {
	return s.db.Close()
}

// Options are the options for the bbolt store.
type Options struct {
	// Bucket name for storing the entries.
	// Optional ("default" by default).
	BucketName string
	// Path of the DB file.
	// Missing parent directories are created.
	// Optional ("bbolt.db" by default).
	Path string
}

// DefaultOptions is an Options object with default values.
// BucketName: "default", Path: "bbolt.db"
var DefaultOptions = Options{
	BucketName: "default",
	Path:       "bbolt.db",
}

// NewStore creates a new bbolt store.
// Note: bbolt uses an exclusive write lock on the database file so it cannot be shared by multiple processes.
// So when creating multiple stores you should always use a new database file (by setting a different Path in the options).
//
// You must call the Close() method on the store when you're done working with it.
func NewStore(options Options) (Store, error) {
	result := Store{}

	// Set default values
	if options.BucketName == "" {
		options.BucketName = DefaultOptions.BucketName
	}
	if options.Path == "" {
		options.Path = DefaultOptions.Path
	}

	if err := util.CreateAllDirs(options.Path, 0700); err != nil {
		return result, err
	}

	// Open DB
	db, err := bolt.Open(options.Path, 0600, nil)
	if err != nil {
		return result, err
	}

	// Create a bucket if it doesn't exist yet.
	// In bbolt key/value pairs are stored to and read from buckets.
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(options.BucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return result, err
	}

	result = Store{
		db:         db,
		bucketName: []byte(options.BucketName),
	}

	return result, nil
}
