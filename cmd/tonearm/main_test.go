package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tonearm/internal/testsupport"
)

// fetchStub mimics the fetch tool closely enough for an end-to-end run: it
// answers --version and --get-title, and on download expands the output
// template and announces the destination.
const fetchStub = `if [ "$1" = "--version" ]; then
  echo "2026.01.01"
  exit 0
fi
if [ "$1" = "--get-title" ]; then
  echo "Cool Song"
  exit 0
fi
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--output" ]; then out="$a"; fi
  prev="$a"
done
path=$(printf '%s' "$out" | sed 's/%(ext)s/webm/')
: > "$path"
echo "Destination: $path"
`

// transcodeStub creates its final argument, standing in for the transcoder.
const transcodeStub = `for a in "$@"; do last="$a"; done
: > "$last"
exit 0
`

func writeStubTools(t *testing.T) {
	t.Helper()
	binDir := t.TempDir()
	testsupport.WriteScript(t, filepath.Join(binDir, "yt-dlp"), fetchStub)
	testsupport.WriteScript(t, filepath.Join(binDir, "ffmpeg"), transcodeStub)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func writeRunConfig(t *testing.T, outputDir string) string {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.toml")
	content := `[paths]
output_dir = "` + outputDir + `"

[history]
enabled = true
path = "` + filepath.Join(base, "history.db") + `"

[logging]
level = "error"
`
	testsupport.WriteFile(t, cfgPath, content)
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunSingleVideoEndToEnd(t *testing.T) {
	writeStubTools(t)
	outputDir := t.TempDir()
	cfgPath := writeRunConfig(t, outputDir)

	out, err := execute(t, "-c", cfgPath, "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("execute: %v\noutput:\n%s", err, out)
	}

	target := filepath.Join(outputDir, "Cool Song.mp3")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected %s to exist: %v", target, err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "Cool Song.webm")); !os.IsNotExist(err) {
		t.Fatal("intermediate file was not removed")
	}
	if !strings.Contains(out, "1 converted, 0 skipped, 0 failed") {
		t.Fatalf("summary line missing:\n%s", out)
	}
}

func TestRunSkipsExistingFile(t *testing.T) {
	writeStubTools(t)
	outputDir := t.TempDir()
	cfgPath := writeRunConfig(t, outputDir)
	testsupport.WriteFile(t, filepath.Join(outputDir, "Cool Song.mp3"), "audio")

	out, err := execute(t, "-c", cfgPath, "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("execute: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "0 converted, 1 skipped, 0 failed") {
		t.Fatalf("expected a skip:\n%s", out)
	}
}

func TestRunRejectsUnrecognizedSource(t *testing.T) {
	writeStubTools(t)
	outputDir := t.TempDir()
	cfgPath := writeRunConfig(t, outputDir)

	_, err := execute(t, "-c", cfgPath, "ftp://example.com/thing")
	if err == nil {
		t.Fatal("expected error for unrecognized source")
	}
	if !strings.Contains(err.Error(), "unrecognized source") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	writeStubTools(t)
	outputDir := t.TempDir()
	cfgPath := writeRunConfig(t, outputDir)

	if out, err := execute(t, "-c", cfgPath, "https://www.youtube.com/watch?v=abc123"); err != nil {
		t.Fatalf("execute: %v\noutput:\n%s", err, out)
	}

	out, err := execute(t, "-c", cfgPath, "history")
	if err != nil {
		t.Fatalf("history: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "youtube.com/watch?v=abc123") {
		t.Fatalf("run not recorded:\n%s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\noutput:\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[audio]") {
		t.Fatal("sample missing [audio] section")
	}

	if _, err := execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}

func TestDepsReportsMissingTool(t *testing.T) {
	outputDir := t.TempDir()
	cfgPath := writeRunConfig(t, outputDir)
	binDir := t.TempDir()
	testsupport.WriteScript(t, filepath.Join(binDir, "ffmpeg"), transcodeStub)
	t.Setenv("PATH", binDir)

	out, err := execute(t, "-c", cfgPath, "deps")
	if err == nil {
		t.Fatalf("expected failure with fetch tool missing:\n%s", out)
	}
	if !strings.Contains(out, "yt-dlp") {
		t.Fatalf("table missing fetch tool row:\n%s", out)
	}
}
