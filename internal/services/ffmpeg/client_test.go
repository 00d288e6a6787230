package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestTranscodeSuccess(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "Song One.mp3")
	// The stub copies nothing; it just creates the output like ffmpeg would.
	stub := writeStub(t, `
out=""
for arg in "$@"; do out="$arg"; done
: > "$out"
exit 0`)

	cli := NewCLI(WithBinary(stub))
	if err := cli.Transcode(context.Background(), filepath.Join(dir, "in.webm"), output); err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestTranscodeFailureCarriesStderrDetail(t *testing.T) {
	stub := writeStub(t, `echo "Invalid data found when processing input" >&2`+"\nexit 1")

	cli := NewCLI(WithBinary(stub))
	err := cli.Transcode(context.Background(), "in.webm", "out.mp3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("expected stderr detail in error, got %v", err)
	}
}

func TestTranscodeValidatesPaths(t *testing.T) {
	cli := NewCLI()
	if err := cli.Transcode(context.Background(), "", "out.mp3"); err == nil {
		t.Fatal("expected error for empty input")
	}
	if err := cli.Transcode(context.Background(), "in.webm", ""); err == nil {
		t.Fatal("expected error for empty output")
	}
}
