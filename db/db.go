// ABOUTME: SQLite connection lifecycle for the local store
// ABOUTME: Opens the database in WAL mode and applies the schema on first use
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens the local database at path and applies the schema.
// The parent directory must already exist. SQLite supports one writer at a
// time, so the pool is pinned to a single connection.
func OpenDatabase(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return database, nil
}
