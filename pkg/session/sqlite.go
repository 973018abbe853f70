package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// Pure-Go SQLite driver, no cgo.
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	snapshot   TEXT    NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions(expires_at);`

// SQLiteStore keeps session snapshots in a single SQLite database file.
// Like [FileStore] it survives restarts, but cleanup is one indexed
// DELETE instead of a directory scan.
//
// Get returns a freshly restored session each time; callers must Set it
// again after mutating.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// sessions table exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create session db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func expiresAt(snap Snapshot) time.Time {
	ttl := snap.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return snap.UpdatedAt.Add(ttl)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM sessions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	sess, err := Restore(snap)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		_ = s.Delete(ctx, id)
		return nil, notFound(id)
	}
	return sess, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sess *Session) error {
	if _, err := uuid.Parse(sess.ID); err != nil {
		return fmt.Errorf("invalid session id %q", sess.ID)
	}
	snap := sess.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (id, snapshot, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, expires_at = excluded.expires_at`,
		snap.ID, string(data), expiresAt(snap).UnixNano())
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Cleanup(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	return int(n), nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
