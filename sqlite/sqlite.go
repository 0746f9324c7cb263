package sqlite

import (
	gosql "database/sql"
	"errors"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/localstore/localstore/sql"
	"github.com/localstore/localstore/util"
)

const defaultTableName = "Item"

// ErrInvalidTableName is returned by NewClient for table names that aren't plain identifiers.
var ErrInvalidTableName = errors.New("sqlite: table name must match [A-Za-z_][A-Za-z0-9_]*")

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Client is a localstore.Backend implementation for sqlite.
type Client struct {
	*sql.Client
}

// Options are the options for the sqlite client.
type Options struct {
	// Path of the DB file.
	// Missing parent directories are created.
	// Use ":memory:" for an in-memory DB.
	// Optional ("sqlite.db" by default).
	Path string
	// Name of the table in which the entries are stored.
	// Optional ("Item" by default).
	TableName string
}

// DefaultOptions is an Options object with default values.
// Path: "sqlite.db", TableName: "Item"
var DefaultOptions = Options{
	Path:      "sqlite.db",
	TableName: defaultTableName,
}

// NewClient creates a new sqlite client.
//
// You must call the Close() method on the client when you're done working with it.
func NewClient(options Options) (Client, error) {
	result := Client{}

	// Set default values
	if options.TableName == "" {
		options.TableName = DefaultOptions.TableName
	}
	if options.Path == "" {
		options.Path = DefaultOptions.Path
	}

	// The table name can't be passed as a statement parameter.
	if !tableNameRegexp.MatchString(options.TableName) {
		return result, ErrInvalidTableName
	}

	if options.Path != ":memory:" {
		if err := util.CreateAllDirs(options.Path, 0700); err != nil {
			return result, err
		}
	}

	db, err := gosql.Open("sqlite", options.Path)
	if err != nil {
		return result, err
	}
	// A single connection, so an in-memory DB is the same for all statements.
	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return result, err
	}

	c, err := prepare(db, options.TableName)
	if err != nil {
		_ = db.Close()
		return result, err
	}

	result.Client = c

	return result, nil
}

func prepare(db *gosql.DB, tableName string) (*sql.Client, error) {
	const q = `
	PRAGMA synchronous = NORMAL;
	PRAGMA journal_mode = 'WAL';
	PRAGMA cache_size = -64000;
	`
	if _, err := db.Exec(q); err != nil {
		return nil, err
	}

	// Create table if it doesn't exist yet.
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS " + tableName + " (k TEXT PRIMARY KEY, v BLOB)")
	if err != nil {
		return nil, err
	}

	// Create prepared statements that will be reused for every operation.
	// Note: Prepared statements are handled differently from other programming languages in Go,
	// see: http://go-database-sql.org/prepared.html.
	upsertStmt, err := db.Prepare("INSERT INTO " + tableName + " (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = $2")
	if err != nil {
		return nil, err
	}
	getStmt, err := db.Prepare("SELECT v FROM " + tableName + " WHERE k = $1")
	if err != nil {
		return nil, err
	}
	deleteStmt, err := db.Prepare("DELETE FROM " + tableName + " WHERE k = $1")
	if err != nil {
		return nil, err
	}
	clearStmt, err := db.Prepare("DELETE FROM " + tableName)
	if err != nil {
		return nil, err
	}
	countStmt, err := db.Prepare("SELECT COUNT(*) FROM " + tableName)
	if err != nil {
		return nil, err
	}

	return &sql.Client{
		C:          db,
		UpsertStmt: upsertStmt,
		GetStmt:    getStmt,
		DeleteStmt: deleteStmt,
		ClearStmt:  clearStmt,
		CountStmt:  countStmt,
	}, nil
}
