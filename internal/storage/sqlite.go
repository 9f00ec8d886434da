package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db            *sql.DB
	encryptionKey []byte
}

// New opens (or creates) the SQLite database at dbPath and initializes the
// schema. Use ":memory:" for tests.
//
// encryptionKey is optional. When it is non-nil it must be exactly 32 bytes
// and values are stored AES-256-GCM encrypted.
func New(dbPath string, encryptionKey []byte) (*SQLiteStorage, error) {
	if encryptionKey != nil && len(encryptionKey) != 32 {
		return nil, ErrInvalidKey
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc.org/sqlite requires a single connection for in-process databases
	// (":memory:" would otherwise give every connection its own database)
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		//nolint:errcheck
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := InitSchema(db); err != nil {
		//nolint:errcheck
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{
		db:            db,
		encryptionKey: encryptionKey,
	}, nil
}

// NewSQLiteStorage wraps an already opened database. The schema must exist.
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
