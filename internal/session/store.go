// Package session holds the one piece of durable local state this process
// owns: the admin token record, plus the guard that evaluates it.
package session

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// TokenKey is the single well-known key the token record lives under.
const TokenKey = "adminToken"

// ErrNoRecord means no token record has been persisted (or it was cleared).
var ErrNoRecord = errors.New("session: no record")

// Store persists the raw token record. Raw JSON goes in and out so that a
// corrupted record surfaces as a parse failure in the guard, not a panic
// here. Injectable so guard logic tests run without a database.
type Store interface {
	Get() (string, error)
	Set(raw string) error
	Clear() error
}

// SQLStore keeps the record in a single-row sqlite table, the local-storage
// analog for a server process.
type SQLStore struct {
	db *sqlx.DB
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS admin_kv(
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`); err != nil {
		return nil, err
	}
	return db, nil
}

func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get() (string, error) {
	var raw string
	err := s.db.Get(&raw, `SELECT value FROM admin_kv WHERE key=?`, TokenKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRecord
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (s *SQLStore) Set(raw string) error {
	_, err := s.db.Exec(`
INSERT INTO admin_kv(key,value) VALUES(?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, TokenKey, raw)
	return err
}

func (s *SQLStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM admin_kv WHERE key=?`, TokenKey)
	return err
}

// MemStore is the test double for Store.
type MemStore struct {
	mu  sync.Mutex
	raw string
	set bool
}

func (m *MemStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNoRecord
	}
	return m.raw, nil
}

func (m *MemStore) Set(raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw, m.set = raw, true
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw, m.set = "", false
	return nil
}
