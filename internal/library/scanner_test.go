package library

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanCollectsStems(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Song One.mp3"))
	touch(t, filepath.Join(dir, "Another Track.MP3"))
	touch(t, filepath.Join(dir, "leftover.webm"))
	touch(t, filepath.Join(dir, "nested", "Deep.mp3"))

	inv, err := Scan(dir, ".mp3")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if inv.Len() != 2 {
		t.Fatalf("expected 2 stems, got %d", inv.Len())
	}
	if !inv.Contains("Song One") {
		t.Fatal("expected Song One in inventory")
	}
	if !inv.Contains("Another Track") {
		t.Fatal("case-insensitive extension match missing")
	}
	if inv.Contains("leftover") {
		t.Fatal("non-audio file should not be inventoried")
	}
	if inv.Contains("Deep") {
		t.Fatal("scan must not recurse")
	}
}

func TestScanMissingDirectoryIsEmpty(t *testing.T) {
	inv, err := Scan(filepath.Join(t.TempDir(), "absent"), ".mp3")
	if err != nil {
		t.Fatalf("Scan on missing dir: %v", err)
	}
	if inv.Len() != 0 {
		t.Fatalf("expected empty inventory, got %d entries", inv.Len())
	}
}

func TestPathFor(t *testing.T) {
	got := PathFor("/music", "Song One", ".mp3")
	want := filepath.Join("/music", "Song One.mp3")
	if got != want {
		t.Fatalf("PathFor = %q, want %q", got, want)
	}
}
