// Package store implements SQLite persistence for the QuantumHabit ledger:
// habits, completion records, rewards, ACL grants and ciphertext blobs.
// See docs/ARCHITECTURE.md § Storage.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// Store owns the SQLite database holding committed ledger state.
type Store struct {
	mu   sync.RWMutex
	open bool
	cfg  types.Config
	db   *sql.DB
}

// New creates an unopened Store; call Open with a Config to initialize.
func New() *Store {
	return &Store{}
}

// Open initializes the store with the given configuration. Creates DataDir
// if it does not exist and applies the schema idempotently.
// Returns ErrAlreadyOpen if called while already open.
func (s *Store) Open(cfg types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	s.db = db
	s.cfg = cfg
	s.open = true
	return nil
}

// Close releases database resources. Idempotent: closing a closed store
// succeeds. After Close, Queries and Transact return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	return s.db.Close()
}

// Queries returns a read view bound to the database connection.
func (s *Store) Queries() (*Queries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return &Queries{db: s.db}, nil
}

// Transact runs fn inside a single SQLite transaction. The transaction is
// committed when fn returns nil and rolled back otherwise; this is what
// makes every ledger operation atomic.
func (s *Store) Transact(fn func(q *Queries) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(&Queries{db: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// dbtx abstracts *sql.DB and *sql.Tx so row helpers run in either context.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Queries bundles the row-level operations over a database or transaction.
type Queries struct {
	db dbtx
}

// NextID returns the next value of the named monotonic counter and
// advances it. Ids start at zero and are never reused, even across
// deletions.
func (q *Queries) NextID(name string) (uint64, error) {
	var v uint64
	err := q.db.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading counter %s: %w", name, err)
	}
	if _, err := q.db.Exec("UPDATE counters SET value = value + 1 WHERE name = ?", name); err != nil {
		return 0, fmt.Errorf("advancing counter %s: %w", name, err)
	}
	return v, nil
}
