/*
Package storage implements the local key-value store behind history and settings.

It is the on-disk counterpart of a browser's local storage: string keys mapped to
string values, kept in a single SQLite file under the data directory
(~/.marketing-support/local.db by default) using modernc.org/sqlite, a pure Go,
CGo-free driver.

If the database cannot be opened the store degrades to an in-process map, so the
application keeps working for the current session and only loses persistence.
*/
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Store defines the key-value operations used by the history and settings stores.
type Store interface {
	// GetItem returns the value stored under key. The boolean reports presence.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases the underlying database.
	Close() error
}

// SQLiteStorage implements Store on top of SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once

	// memory holds values while the database is unavailable.
	memory map[string]string
}

// DefaultDataDir returns ~/.marketing-support.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".marketing-support"), nil
}

// NewStorage creates a store backed by <dataDir>/local.db.
//
// The database is opened lazily by Init. An empty dataDir disables persistence.
func NewStorage(dataDir string) *SQLiteStorage {
	if dataDir == "" {
		log.Warn().Msg("no data directory configured, local storage is in-memory only")
		return NewMemoryStorage()
	}

	return &SQLiteStorage{
		dbPath:  filepath.Join(dataDir, "local.db"),
		enabled: true,
		memory:  make(map[string]string),
	}
}

// NewMemoryStorage returns a store that never touches disk.
func NewMemoryStorage() *SQLiteStorage {
	return &SQLiteStorage{memory: make(map[string]string)}
}

// Path returns the database file path, or "" for memory-only stores.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Persistent reports whether values survive the process.
func (s *SQLiteStorage) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && s.db != nil
}

// Init opens the database and runs migrations.
//
// If initialization fails, the store falls back to memory (graceful degradation)
// and the error is returned for the caller to report.
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.disable(initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.disable(initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.disable(initErr)
			return
		}
	})

	return initErr
}

func (s *SQLiteStorage) disable(err error) {
	log.Warn().Err(err).Str("path", s.dbPath).Msg("local storage unavailable, keeping values in memory")
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	s.enabled = false
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}
