package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileStore persists session snapshots as JSON files so a restarted
// server can pick its sessions back up.
//
// Get returns a freshly restored session each time; callers must Set it
// again after mutating.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-backed store.
// If baseDir is empty, defaults to $XDG_STATE_HOME/tagcloud/sessions.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func defaultDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "tagcloud", "sessions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "tagcloud", "sessions"), nil
}

// sessionPath rejects anything that is not a UUID so IDs taken from a URL
// cannot escape baseDir.
func (s *FileStore) sessionPath(id string) (string, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return filepath.Join(s.baseDir, id+".json"), true
}

func (s *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	path, ok := s.sessionPath(id)
	if !ok {
		return nil, notFound(id)
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
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

func (s *FileStore) Set(ctx context.Context, sess *Session) error {
	path, ok := s.sessionPath(sess.ID)
	if !ok {
		return fmt.Errorf("invalid session id %q", sess.ID)
	}
	data, err := json.MarshalIndent(sess.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, ok := s.sessionPath(id)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, fmt.Errorf("read session dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		ttl := snap.TTL
		if ttl <= 0 {
			ttl = DefaultTTL
		}
		if snap.UpdatedAt.Add(ttl).Before(now()) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Path returns the base directory for session files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
