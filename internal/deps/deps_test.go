package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-1234"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("nonexistent binary reported available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("missing binary should carry a detail message")
	}
}

func TestCheckBinariesFindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub executables require a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fakebin")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries([]Requirement{
		{Name: "Fake", Command: "fakebin", Description: "stub"},
	})
	if !statuses[0].Available {
		t.Fatalf("stub binary not found: %+v", statuses[0])
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "Unset"}})
	if statuses[0].Available {
		t.Fatal("empty command reported available")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestAllRequiredAvailable(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b", Optional: true, Available: false},
	}
	if !AllRequiredAvailable(statuses) {
		t.Fatal("optional miss should not fail the set")
	}
	statuses = append(statuses, Status{Name: "c", Available: false})
	if AllRequiredAvailable(statuses) {
		t.Fatal("required miss should fail the set")
	}
}
