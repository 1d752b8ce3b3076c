package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultDBName is the history file created when the configured path is a
// directory.
const DefaultDBName = "tweetstats.db"

// DB is the run history. It wraps a single-connection *sql.DB.
type DB struct {
	*sql.DB
	path string
}

func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", dbPath, err)
	}
	// cluster_terms rows cascade with their run.
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys on %s: %w", dbPath, err)
	}
	return sqlDB, nil
}

// Open returns the run history at dbPath, creating the file, its directory
// and the schema on first use.
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, errors.New("history database path is empty")
	}
	if info, err := os.Stat(dbPath); err == nil && info.IsDir() {
		dbPath = filepath.Join(dbPath, DefaultDBName)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	sqlDB, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// PRAGMA foreign_keys is per connection; keep a single one.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, path: dbPath}
	if err := db.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureSchema() error {
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return db.InitSchema()
	case err != nil:
		return fmt.Errorf("inspect history schema: %w", err)
	}
	return nil
}

// Path is the resolved database file.
func (db *DB) Path() string {
	return db.path
}

// InitSchema creates the runs and cluster_terms tables and their indexes.
func (db *DB) InitSchema() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}
