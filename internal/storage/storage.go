// Package storage provides the synchronous key-value layer the store
// persists into. Values are JSON-encoded strings; absence of a key is
// reported as an empty value, not an error.
package storage

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// KV is a synchronous string key-value store
type KV interface {
	// Get returns the value for key, or "" if the key has never been set
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value
	Set(key, value string) error
	Close() error
}

// DB is a SQLite-backed KV implementation
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and initializes the schema
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// DefaultPath returns the default database file path
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "atd")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "atd.db"), nil
}

// Get retrieves a value by key
func (db *DB) Get(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores a value under key
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
