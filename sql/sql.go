// Package sql contains a localstore.Backend implementation for SQL databases
// that's shared by the packages of specific databases, like sqlite.
package sql

import (
	"database/sql"

	"github.com/localstore/localstore"
)

// Client is a localstore.Backend implementation for SQL databases.
// The statements must take these arguments and return these columns:
//
//	UpsertStmt: key, text
//	GetStmt:    key -> text
//	DeleteStmt: key
//	ClearStmt:  -
//	CountStmt:  -> count
type Client struct {
	C          *sql.DB
	UpsertStmt *sql.Stmt
	GetStmt    *sql.Stmt
	DeleteStmt *sql.Stmt
	ClearStmt  *sql.Stmt
	CountStmt  *sql.Stmt
}

// Set stores the given text for the given key.
// The key must not be "".
func (c Client) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	// Stored as bytes, so codecs with binary output work as well.
	_, err := c.UpsertStmt.Exec(k, []byte(text))
	return err
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (c Client) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	var data []byte
	err = c.GetStmt.QueryRow(k).Scan(&data)
	// If no entry was found return false
	if err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	return string(data), true, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (c Client) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	_, err := c.DeleteStmt.Exec(k)
	return err
}

// Clear deletes all entries of the table.
func (c Client) Clear() error {
	_, err := c.ClearStmt.Exec()
	return err
}

// Len returns the number of entries in the table.
func (c Client) Len() (int, error) {
	var n int
	err := c.CountStmt.QueryRow().Scan(&n)
	return n, err
}

// Close closes the client.
// It must be called to return all open connections to the connection pool and to release any open resources.
func (c Client) Close() error {
	return c.C.Close()
}
