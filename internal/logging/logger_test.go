package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleLoggerWritesCompactLines(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	WithComponent(logger, "convert").Info("fetch started", String(FieldTitle, "Song One"))

	line := buf.String()
	if !strings.Contains(line, "INFO convert: fetch started") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, `title="Song One"`) {
		t.Fatalf("expected quoted title attr, got %q", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should have been filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
