package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestChecksumWriter_WriteChecksum(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := filepath.Join(tmpDir, "NvStrapsReBar.ffs")
	if err := os.WriteFile(ffs, []byte("abc"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	writer := NewChecksumWriter()

	sumPath, err := writer.WriteChecksum(context.Background(), ffs)
	if err != nil {
		t.Fatalf("WriteChecksum() error = %v", err)
	}

	if sumPath != ffs+".sha256" {
		t.Errorf("WriteChecksum() path = %s, want %s", sumPath, ffs+".sha256")
	}

	got, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatalf("Failed to read checksum file: %v", err)
	}

	// sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  NvStrapsReBar.ffs\n"
	if string(got) != want {
		t.Errorf("checksum file = %q, want %q", got, want)
	}

	t.Run("verify matching file", func(t *testing.T) {
		if err := writer.VerifyChecksumFile(context.Background(), ffs, sumPath); err != nil {
			t.Errorf("VerifyChecksumFile() error = %v", err)
		}
	})

	t.Run("verify modified file", func(t *testing.T) {
		tampered := filepath.Join(tmpDir, "tampered.ffs")
		if err := os.WriteFile(tampered, []byte("abd"), 0o600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		if err := writer.VerifyChecksumFile(context.Background(), tampered, sumPath); err == nil {
			t.Error("VerifyChecksumFile() with modified file should return error")
		}
	})

	t.Run("verify empty checksum file", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty.sha256")
		if err := os.WriteFile(empty, nil, 0o600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		if err := writer.VerifyChecksumFile(context.Background(), ffs, empty); err == nil {
			t.Error("VerifyChecksumFile() with empty checksum file should return error")
		}
	})
}

func TestChecksumWriter_NonexistentFile(t *testing.T) {
	_, err := NewChecksumWriter().WriteChecksum(context.Background(), "/nonexistent/file.ffs")
	if err == nil {
		t.Error("WriteChecksum() with non-existent file should return error")
	}
}
