// Package session keeps long-lived placement engines for the HTTP API.
//
// A [Session] owns one [layout.Layouter] plus the sizes it has placed.
// Engines are not goroutine-safe, so every session serialises access with
// its own mutex; concurrent clients of the same session take turns while
// distinct sessions proceed in parallel.
//
// Sessions are held by a [Store]:
//   - [MemoryStore]: in-process map, the default for `tagcloud serve`
//   - [FileStore]: JSON snapshots on disk that survive a restart
//   - [SQLiteStore]: the same snapshots in one SQLite database file
//
// A snapshot only records the placed sizes. Placement is deterministic, so
// restoring replays the sizes through a fresh engine and arrives at the
// same rectangles.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess, err := session.New(layout.StrategyFrontier, geom.Pt(0, 0), session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // unknown or expired
//	}
//	rect, err := sess.Place(geom.Sz(10, 5))
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 24 * time.Hour

var now = time.Now

// Session is one client's incremental layout.
type Session struct {
	ID        string
	Strategy  layout.Strategy
	Center    geom.Point
	CreatedAt time.Time

	ttl time.Duration

	mu        sync.Mutex
	engine    layout.Layouter
	sizes     []geom.Size
	updatedAt time.Time
}

// Snapshot is the serialisable form of a session.
type Snapshot struct {
	ID        string          `json:"id"`
	Strategy  layout.Strategy `json:"strategy"`
	Center    geom.Point      `json:"center"`
	Sizes     []geom.Size     `json:"sizes"`
	TTL       time.Duration   `json:"ttl"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Unknown and expired sessions both
	// return a SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any earlier version.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many went.
	Cleanup(ctx context.Context) (int, error)
}

// GenerateID returns a random session identifier.
func GenerateID() string {
	return uuid.NewString()
}

// New creates an empty session with a fresh ID.
func New(strategy layout.Strategy, center geom.Point, ttl time.Duration) (*Session, error) {
	engine, err := layout.New(strategy, layout.WithCenter(center))
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if strategy == "" {
		strategy = layout.DefaultStrategy
	}
	created := now()
	return &Session{
		ID:        GenerateID(),
		Strategy:  strategy,
		Center:    center,
		CreatedAt: created,
		ttl:       ttl,
		engine:    engine,
		updatedAt: created,
	}, nil
}

// Restore rebuilds a session from a snapshot by replaying its sizes.
func Restore(snap Snapshot) (*Session, error) {
	if _, err := uuid.Parse(snap.ID); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "session id %q", snap.ID)
	}
	sess, err := New(snap.Strategy, snap.Center, snap.TTL)
	if err != nil {
		return nil, err
	}
	sess.ID = snap.ID
	sess.CreatedAt = snap.CreatedAt
	if _, err := layout.PlaceAll(sess.engine, snap.Sizes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "replay session %s", snap.ID)
	}
	sess.sizes = append(sess.sizes, snap.Sizes...)
	if !snap.UpdatedAt.IsZero() {
		sess.updatedAt = snap.UpdatedAt
	}
	return sess, nil
}

// Place puts the next rectangle into the session's layout. A failed
// placement leaves the session unchanged.
func (s *Session) Place(size geom.Size) (geom.Rectangle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.engine.PutNextRectangle(size)
	if err != nil {
		return geom.Rectangle{}, err
	}
	s.sizes = append(s.sizes, size)
	s.updatedAt = now()
	return r, nil
}

// Rectangles returns a copy of the placed rectangles.
func (s *Session) Rectangles() []geom.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Rectangles()
}

// Len returns the number of placed rectangles.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sizes)
}

// Reset empties the layout but keeps the session alive.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	s.sizes = nil
	s.updatedAt = now()
}

// UpdatedAt returns the time of the last mutation.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// ExpiresAt is the last activity plus the TTL.
func (s *Session) ExpiresAt() time.Time {
	return s.UpdatedAt().Add(s.ttl)
}

// IsExpired returns true if the session has been idle longer than its TTL.
func (s *Session) IsExpired() bool {
	return now().After(s.ExpiresAt())
}

// Snapshot captures the session's state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		Strategy:  s.Strategy,
		Center:    s.Center,
		Sizes:     append([]geom.Size(nil), s.sizes...),
		TTL:       s.ttl,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
}
