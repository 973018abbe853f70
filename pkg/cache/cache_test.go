package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kokodio/tdd/pkg/geom"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, ok := c.(Clearer); ok {
		t.Error("NullCache must not implement Clearer")
	}
}

func TestNullCacheReportsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewNullCache()

	if _, hit, err := c.Get(ctx, "key"); hit || !errors.Is(err, context.Canceled) {
		t.Errorf("Get = hit %v, err %v; want miss with context.Canceled", hit, err)
	}
	if err := c.Set(ctx, "key", nil, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v, want context.Canceled", err)
	}
	if err := c.Delete(ctx, "key"); !errors.Is(err, context.Canceled) {
		t.Errorf("Delete error = %v, want context.Canceled", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "layout:a"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "layout:a", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:a")
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v; want payload hit", data, hit, err)
	}
	if err := c.Delete(ctx, "layout:a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:a"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned as hit")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	fc := c.(*FileCache)
	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)
	for i := range 5 {
		if err := c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := fc.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 5 {
		t.Errorf("Clear removed %d, want 5", n)
	}
	entries, _ := os.ReadDir(fc.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "frontier"})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "spiral"})
	lk3 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "frontier", CenterX: 1})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "frontier"}) {
		t.Error("LayoutKey should be deterministic")
	}
	if lk1[:7] != "layout:" {
		t.Errorf("LayoutKey prefix: %s", lk1)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Renderer: "auto"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Renderer: "content"})
	if ak1 == ak2 || ak2 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	key := scoped.LayoutKey("h", LayoutKeyOpts{})
	if key[:3] != "v1:" || key[3:] != NewDefaultKeyer().LayoutKey("h", LayoutKeyOpts{}) {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}
	art := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "png"})
	if art[:3] != "v1:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", art)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().LayoutKey("h", LayoutKeyOpts{})
	if got := scoped.LayoutKey("h", LayoutKeyOpts{}); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrCorrupt) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err %v calls %d, want nil / 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrCorrupt
	})
	if err != ErrCorrupt || calls != 1 {
		t.Errorf("non-retryable: err %v calls %d, want ErrCorrupt / 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err %v calls %d, want nil / 2", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) != nil")
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}
	err := classify(netErr)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("classify(net error) = %v, want retryable ErrNetwork", err)
	}
	if IsRetryable(classify(ErrCorrupt)) {
		t.Error("plain error classified as retryable")
	}
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(RedisConfig{Addr: "localhost:6379", DB: 2})
	if err != nil || opts.Addr != "localhost:6379" || opts.DB != 2 {
		t.Errorf("redisOptions(host:port) = %+v, %v", opts, err)
	}
	opts, err = redisOptions(RedisConfig{Addr: "redis://:secret@cache:6380/3"})
	if err != nil || opts.Addr != "cache:6380" || opts.DB != 3 || opts.Password != "secret" {
		t.Errorf("redisOptions(url) = %+v, %v", opts, err)
	}
	if _, err := redisOptions(RedisConfig{}); err == nil {
		t.Error("redisOptions(empty) succeeded")
	}
}

// TestRedisCache runs against a live server when TAGCLOUD_TEST_REDIS is set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TAGCLOUD_TEST_REDIS")
	if addr == "" {
		t.Skip("TAGCLOUD_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "tagcloud-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v; want 1", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHashSizes(t *testing.T) {
	a := []geom.Size{geom.Sz(3, 4), geom.Sz(10, 2)}
	tests := []struct {
		name  string
		other []geom.Size
		same  bool
	}{
		{"identical", []geom.Size{geom.Sz(3, 4), geom.Sz(10, 2)}, true},
		{"reordered", []geom.Size{geom.Sz(10, 2), geom.Sz(3, 4)}, false},
		{"swapped axes", []geom.Size{geom.Sz(4, 3), geom.Sz(10, 2)}, false},
		{"digits shifted", []geom.Size{geom.Sz(34, 10), geom.Sz(2, 0)}, false},
		{"prefix", []geom.Size{geom.Sz(3, 4)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashSizes(a) == HashSizes(tt.other); got != tt.same {
				t.Errorf("HashSizes equal = %v, want %v", got, tt.same)
			}
		})
	}
	if HashSizes(nil) != HashSizes([]geom.Size{}) || HashSizes(nil) != Hash(nil) {
		t.Error("empty sequences should share the empty digest")
	}
}

func TestKeysAreScopedByKind(t *testing.T) {
	k := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	lk := k.LayoutKey(HashSizes(nil), LayoutKeyOpts{})
	ak := k.ArtifactKey(HashSizes(nil), ArtifactKeyOpts{})
	if !strings.HasPrefix(lk, "v1:layout:") || !strings.HasPrefix(ak, "v1:artifact:") {
		t.Errorf("keys = %q, %q; want v1:layout: and v1:artifact: prefixes", lk, ak)
	}
	if len(lk) != len("v1:layout:")+64 {
		t.Errorf("layout key %q should end in a full SHA-256", lk)
	}
}
