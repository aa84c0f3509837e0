package pathutils

import (
	"path/filepath"
	"testing"
)

func TestToAbsolutePath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ToAbsolutePath("~/.cache/instr")
	if err != nil {
		t.Fatalf("ToAbsolutePath: %v", err)
	}
	if want := filepath.Join(home, ".cache/instr"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	back, err := ToHomePathFormat(got)
	if err != nil {
		t.Fatalf("ToHomePathFormat: %v", err)
	}
	if back != "~/.cache/instr" {
		t.Fatalf("got %q", back)
	}
}

func TestToAbsolutePath_Plain(t *testing.T) {
	got, err := ToAbsolutePath("/var/cache/instr")
	if err != nil || got != "/var/cache/instr" {
		t.Fatalf("got %q, %v", got, err)
	}
}
