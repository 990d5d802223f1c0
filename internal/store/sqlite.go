package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite is the default durable Store: one kv table in a local database file.
type SQLite struct {
	accessor
	db  *sql.DB
	mu  sync.Mutex // one read-modify-write transaction at a time
	log *zap.Logger
}

// sqlConn is satisfied by both *sql.DB and *sql.Tx.
type sqlConn interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

type sqlKV struct {
	conn sqlConn
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string, opts ...Option) (*SQLite, error) {
	o := buildOptions(opts)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &SQLite{db: db, log: o.log}
	s.accessor = accessor{kv: sqlKV{conn: db}, begin: s.begin}
	o.log.Debug("sqlite store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLite) begin(fn func(kv) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(sqlKV{conn: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLite) Close() error {
	s.log.Debug("sqlite store closed")
	return s.db.Close()
}

func (k sqlKV) get(key string) ([]byte, bool, error) {
	var value string
	err := k.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (k sqlKV) put(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := k.conn.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)`, key, string(value), now)
	return err
}

func (k sqlKV) deleteAll() error {
	_, err := k.conn.Exec("DELETE FROM kv")
	return err
}
