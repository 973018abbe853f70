package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCLICacheDirPrefersConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(discard, LogInfo)
	c.Config.Cache.Dir = "/srv/tagcloud-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/tagcloud-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, fallback string
		want                    string
	}{
		{"", "", "cloud", "cloud"},
		{"", "data/sizes.yaml", "cloud", "data/sizes"},
		{"out/result.png", "", "cloud", "out/result"},
		{"out/result.svg", "sizes.json", "cloud", "out/result"},
		{"out/result", "sizes.json", "cloud", "out/result"},
		{"out/result.txt", "", "cloud", "out/result.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.fallback, got, tt.want)
		}
	}
}
