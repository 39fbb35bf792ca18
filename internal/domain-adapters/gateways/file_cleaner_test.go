package gateways

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileCleaner_RemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "pe32.sec")
	if err := os.WriteFile(present, []byte("section"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cleaner := NewFileCleaner()

	if err := cleaner.RemoveIfExists(dir, "name.sec", "pe32.sec", "NvStrapsReBar.ffs"); err != nil {
		t.Fatalf("RemoveIfExists() error = %v", err)
	}

	if _, err := os.Stat(present); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("pe32.sec should have been removed, stat error = %v", err)
	}

	// Everything is already gone, so a second pass is a no-op
	if err := cleaner.RemoveIfExists(dir, "name.sec", "pe32.sec", "NvStrapsReBar.ffs"); err != nil {
		t.Errorf("second RemoveIfExists() error = %v", err)
	}
}

func TestFileCleaner_ContinuesAfterFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory removal semantics differ on windows")
	}

	dir := t.TempDir()

	// A non-empty directory cannot be removed with os.Remove
	blocked := filepath.Join(dir, "pe32.sec")
	if err := os.MkdirAll(filepath.Join(blocked, "child"), 0o750); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	after := filepath.Join(dir, "name.sec")
	if err := os.WriteFile(after, []byte("section"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	err := NewFileCleaner().RemoveIfExists(dir, "pe32.sec", "name.sec")
	if err == nil {
		t.Fatal("Expected error for non-empty directory, got nil")
	}

	if _, statErr := os.Stat(after); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("name.sec should be removed even though pe32.sec failed")
	}
}
