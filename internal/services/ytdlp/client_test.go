package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, name, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestTitleReturnsFirstLine(t *testing.T) {
	stub := writeStub(t, "yt-dlp", `echo "Song One"`+"\n"+`echo "ignored second line"`)
	cli := NewCLI(WithForms([]string{stub}))

	title, err := cli.Title(context.Background(), "https://www.youtube.com/watch?v=ABC")
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Song One" {
		t.Fatalf("title = %q", title)
	}
}

func TestListFlatParsesRecords(t *testing.T) {
	stub := writeStub(t, "yt-dlp", strings.Join([]string{
		`echo "Song One|||SEP|||https://www.youtube.com/watch?v=ABC|||SEP|||ABC"`,
		`echo "Song Two|||SEP|||https://www.youtube.com/watch?v=DEF|||SEP|||DEF"`,
		`echo "garbage line without separator"`,
		`echo "Odd|||SEP|||https://evil.example/watch?v=X|||SEP|||X"`,
	}, "\n"))
	cli := NewCLI(WithForms([]string{stub}))

	items, err := cli.ListFlat(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if err != nil {
		t.Fatalf("ListFlat: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Song One" || items[0].ExternalID != "ABC" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].SourceLocator != "https://www.youtube.com/watch?v=DEF" {
		t.Fatalf("unexpected locator: %q", items[1].SourceLocator)
	}
}

func TestDownloadFallsBackToSecondForm(t *testing.T) {
	working := writeStub(t, "yt-dlp", `echo "[download] Destination: /tmp/Song One.webm"`)
	cli := NewCLI(WithForms(
		[]string{"tonearm-test-definitely-missing-binary"},
		[]string{working},
	))

	out, err := cli.Download(context.Background(), "https://www.youtube.com/watch?v=ABC", "/tmp/Song One.%(ext)s")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !strings.Contains(out, "Destination: /tmp/Song One.webm") {
		t.Fatalf("missing tool output: %q", out)
	}
}

func TestDownloadReportsFirstFormsFailure(t *testing.T) {
	first := writeStub(t, "yt-dlp", `echo "ERROR: Sign in to confirm" >&2`+"\nexit 1")
	second := writeStub(t, "yt-dlp-alt", "exit 3")
	cli := NewCLI(WithForms([]string{first}, []string{second}))

	_, err := cli.Download(context.Background(), "https://www.youtube.com/watch?v=ABC", "x.%(ext)s")
	if err == nil {
		t.Fatal("expected error when every form fails")
	}
	if !strings.Contains(err.Error(), "Sign in to confirm") {
		t.Fatalf("expected first form's stderr detail, got %v", err)
	}
	if strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("second form's failure leaked into the error: %v", err)
	}
}

func TestVersionAcrossForms(t *testing.T) {
	stub := writeStub(t, "yt-dlp", `echo "2026.08.01"`)
	cli := NewCLI(WithForms([]string{stub}))

	version, err := cli.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != "2026.08.01" {
		t.Fatalf("version = %q", version)
	}
}
