package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
)

// setClock pins the package clock for the duration of a test.
func setClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	cur := at
	now = func() time.Time { return cur }
	t.Cleanup(func() { now = time.Now })
	return &cur
}

func mustNew(t *testing.T, strategy layout.Strategy, center geom.Point) *Session {
	t.Helper()
	sess, err := New(strategy, center, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sess
}

func TestNew(t *testing.T) {
	sess := mustNew(t, "", geom.Pt(5, 5))

	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", sess.ID, err)
	}
	if sess.Strategy != layout.DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", sess.Strategy, layout.DefaultStrategy)
	}
	if sess.Len() != 0 {
		t.Errorf("Len = %d, want 0", sess.Len())
	}

	r, err := sess.Place(geom.Sz(4, 2))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if want := geom.Rect(5, 5, 4, 2); r != want {
		t.Errorf("first rectangle = %v, want %v", r, want)
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New("zigzag", geom.Point{}, time.Hour)
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("err = %v, want INVALID_STRATEGY", err)
	}
}

func TestPlaceInvalidLeavesSessionUnchanged(t *testing.T) {
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
	if _, err := sess.Place(geom.Sz(3, 3)); err != nil {
		t.Fatal(err)
	}
	before := sess.UpdatedAt()

	_, err := sess.Place(geom.Sz(-1, 3))
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Fatalf("err = %v, want INVALID_SIZE", err)
	}
	if sess.Len() != 1 {
		t.Errorf("Len = %d, want 1", sess.Len())
	}
	if !sess.UpdatedAt().Equal(before) {
		t.Error("failed placement touched UpdatedAt")
	}
}

func TestReset(t *testing.T) {
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
	for range 3 {
		if _, err := sess.Place(geom.Sz(2, 2)); err != nil {
			t.Fatal(err)
		}
	}
	sess.Reset()
	if n := len(sess.Rectangles()); n != 0 {
		t.Errorf("Rectangles after Reset = %d, want 0", n)
	}
	if n := len(sess.Snapshot().Sizes); n != 0 {
		t.Errorf("snapshot sizes after Reset = %d, want 0", n)
	}
}

func TestSnapshotRestore(t *testing.T) {
	for _, strategy := range layout.Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			sess := mustNew(t, strategy, geom.Pt(-3, 7))
			for i := range 20 {
				if _, err := sess.Place(geom.Sz(10+i, 5+i%4)); err != nil {
					t.Fatal(err)
				}
			}

			got, err := Restore(sess.Snapshot())
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if got.ID != sess.ID {
				t.Errorf("ID = %q, want %q", got.ID, sess.ID)
			}
			want := sess.Rectangles()
			have := got.Rectangles()
			if len(have) != len(want) {
				t.Fatalf("restored %d rectangles, want %d", len(have), len(want))
			}
			for i := range want {
				if have[i] != want[i] {
					t.Errorf("rectangle %d = %v, want %v", i, have[i], want[i])
				}
			}
		})
	}
}

func TestRestoreRejectsBadID(t *testing.T) {
	_, err := Restore(Snapshot{ID: "../../etc/passwd"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestConcurrentPlace(t *testing.T) {
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})

	const workers, each = 8, 25
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				if _, err := sess.Place(geom.Sz(5+w, 5+i%7)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	rects := sess.Rectangles()
	if len(rects) != workers*each {
		t.Fatalf("placed %d, want %d", len(rects), workers*each)
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Fatalf("%v overlaps %v", rects[i], rects[j])
			}
		}
	}
}

func TestExpiry(t *testing.T) {
	clock := setClock(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})

	*clock = clock.Add(59 * time.Minute)
	if sess.IsExpired() {
		t.Error("expired before TTL")
	}
	if _, err := sess.Place(geom.Sz(1, 1)); err != nil {
		t.Fatal(err)
	}

	// Activity pushes expiry forward.
	*clock = clock.Add(59 * time.Minute)
	if sess.IsExpired() {
		t.Error("expired despite recent activity")
	}

	*clock = clock.Add(2 * time.Minute)
	if !sess.IsExpired() {
		t.Error("not expired after idle TTL")
	}
}

// =============================================================================
// Stores
// =============================================================================

func storeImpls(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	db, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
		"sqlite": db,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
			for range 5 {
				if _, err := sess.Place(geom.Sz(4, 3)); err != nil {
					t.Fatal(err)
				}
			}
			if err := store.Set(ctx, sess); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := store.Get(ctx, sess.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Len() != 5 {
				t.Errorf("Len = %d, want 5", got.Len())
			}

			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
				t.Errorf("Get after Delete err = %v, want SESSION_NOT_FOUND", err)
			}
			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{uuid.NewString(), "not-a-uuid", "../escape"} {
				if _, err := store.Get(ctx, id); !errors.Is(err, errors.ErrCodeSessionNotFound) {
					t.Errorf("Get(%q) err = %v, want SESSION_NOT_FOUND", id, err)
				}
			}
		})
	}
}

func TestStoreExpiryAndCleanup(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			clock := setClock(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

			stale := mustNew(t, layout.StrategyFrontier, geom.Point{})
			if err := store.Set(ctx, stale); err != nil {
				t.Fatal(err)
			}
			*clock = clock.Add(30 * time.Minute)
			fresh := mustNew(t, layout.StrategyFrontier, geom.Point{})
			if err := store.Set(ctx, fresh); err != nil {
				t.Fatal(err)
			}

			*clock = clock.Add(45 * time.Minute)
			n, err := store.Cleanup(ctx)
			if err != nil {
				t.Fatalf("Cleanup: %v", err)
			}
			if n != 1 {
				t.Errorf("Cleanup removed %d, want 1", n)
			}
			if _, err := store.Get(ctx, stale.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
				t.Errorf("stale session err = %v, want SESSION_NOT_FOUND", err)
			}
			if _, err := store.Get(ctx, fresh.ID); err != nil {
				t.Errorf("fresh session: %v", err)
			}
		})
	}
}

func TestMemoryStoreGetExpired(t *testing.T) {
	ctx := context.Background()
	clock := setClock(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	store := NewMemoryStore()
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
	_ = store.Set(ctx, sess)

	*clock = clock.Add(2 * time.Hour)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("err = %v, want SESSION_NOT_FOUND", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want expired session evicted", store.Len())
	}
}

func TestFileStoreSetRejectsBadID(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
	sess.ID = "../outside"
	if err := store.Set(context.Background(), sess); err == nil {
		t.Error("Set accepted a non-UUID id")
	}
}

func TestFileStoreDefaultDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	store, err := NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	if want := dir + "/tagcloud/sessions"; store.Path() != want {
		t.Errorf("Path = %q, want %q", store.Path(), want)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sessions.db")

	store, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	sess := mustNew(t, layout.StrategyFrontier, geom.Pt(2, 2))
	for range 3 {
		if _, err := sess.Place(geom.Sz(5, 4)); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}
	want := sess.Rectangles()
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if reopened.Path() != path {
		t.Errorf("Path = %q, want %q", reopened.Path(), path)
	}
	got, err := reopened.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rects := got.Rectangles()
	if len(rects) != len(want) {
		t.Fatalf("restored %d rectangles, want %d", len(rects), len(want))
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect[%d] = %v, want %v", i, rects[i], want[i])
		}
	}
}

func TestSQLiteStoreSetRejectsBadID(t *testing.T) {
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "s.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	sess := mustNew(t, layout.StrategyFrontier, geom.Point{})
	sess.ID = "not-a-uuid"
	if err := store.Set(context.Background(), sess); err == nil {
		t.Error("Set accepted a non-UUID id")
	}
}
