package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/camilh/snep-tools/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnavailable reports that the backing database could not be opened or
// reached. Data-shape problems never produce it; callers use errors.Is to
// tell infrastructure failures apart from empty results.
var ErrUnavailable = errors.New("chart store unavailable")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnavailable, dbPath, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
