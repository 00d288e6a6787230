package playlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlist.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePlaylist(t, `[
		{"videoUrl":"https://www.youtube.com/watch?v=ABC","title":"Song One","videoId":"ABC"},
		{"videoUrl":"https://www.youtube.com/watch?v=DEF"},
		{"title":"No Locator"}
	]`)

	items, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Title != "Song One" || items[0].ExternalID != "ABC" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[0].ThumbnailURL != "https://i.ytimg.com/vi/ABC/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail: %q", items[0].ThumbnailURL)
	}
	if items[1].Title != "Video_2" {
		t.Fatalf("expected defaulted title Video_2, got %q", items[1].Title)
	}
	if items[1].Author != "unknown" {
		t.Fatalf("expected unknown author, got %q", items[1].Author)
	}
	if items[2].HasLocator() {
		t.Fatalf("item without videoUrl should have no locator")
	}
}

func TestLoadFileMalformedJSON(t *testing.T) {
	path := writePlaylist(t, `[{"videoUrl": "https://`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadFileNonArrayTopLevel(t *testing.T) {
	path := writePlaylist(t, `{"videoUrl":"https://www.youtube.com/watch?v=ABC"}`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for non-array top level")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
