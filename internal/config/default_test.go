package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.FreshnessWindow != 15*time.Minute {
		t.Fatalf("want 15m window, got %s", c.FreshnessWindow)
	}
	if c.Timeout == 0 {
		t.Fatal("want non-zero Timeout")
	}
	if c.VersionURL == "" {
		t.Fatal("want VersionURL")
	}
	if !strings.Contains(c.ResourceURL, VersionPlaceholder) {
		t.Fatalf("ResourceURL %q lacks %s", c.ResourceURL, VersionPlaceholder)
	}
}

func TestDefaultCacheDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	if got, want := DefaultCacheDir(), filepath.Join(dir, AppName); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig()

	t.Setenv(FreshnessEnv, "2s")
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.FreshnessWindow != 2*time.Second {
		t.Fatalf("want 2s, got %s", c.FreshnessWindow)
	}

	t.Setenv(FreshnessEnv, "soon")
	if err := c.ApplyEnv(); err == nil {
		t.Fatal("want error for bad duration")
	}
	if c.FreshnessWindow != 2*time.Second {
		t.Fatalf("bad value must not change the window, got %s", c.FreshnessWindow)
	}
}
