package gateways

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/buildffs/internal/testutil"
)

func TestImagePatcher_SetNXCompat(t *testing.T) {
	tests := []struct {
		name       string
		pe32plus   bool
		before     uint16
		wantAfter  uint16
		wantFormat string
	}{
		{"PE32+ without flags", true, 0x0000, 0x0100, "PE32+"},
		{"PE32+ keeps other flags", true, 0x8160 &^ 0x0100, 0x8160, "PE32+"},
		{"PE32+ already set", true, 0x0140, 0x0140, "PE32+"},
		{"PE32 without flags", false, 0x0040, 0x0140, "PE32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteEFIImage(t, t.TempDir(), "NvStrapsReBar.efi", tt.pe32plus, tt.before)
			original, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read image: %v", err)
			}

			patcher := NewImagePatcherGateway()
			result, err := patcher.SetNXCompat(context.Background(), path)
			if err != nil {
				t.Fatalf("SetNXCompat() error = %v", err)
			}

			if result.Before != tt.before {
				t.Errorf("Before = 0x%04x, want 0x%04x", result.Before, tt.before)
			}
			if result.After != tt.wantAfter {
				t.Errorf("After = 0x%04x, want 0x%04x", result.After, tt.wantAfter)
			}
			if result.Format != tt.wantFormat {
				t.Errorf("Format = %s, want %s", result.Format, tt.wantFormat)
			}

			patched, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read patched image: %v", err)
			}

			off := testutil.DllCharacteristicsOffset
			if got := binary.LittleEndian.Uint16(patched[off:]); got != tt.wantAfter {
				t.Errorf("on-disk DllCharacteristics = 0x%04x, want 0x%04x", got, tt.wantAfter)
			}

			// Only the two bytes of the field may differ
			if !bytes.Equal(patched[:off], original[:off]) || !bytes.Equal(patched[off+2:], original[off+2:]) {
				t.Error("SetNXCompat() modified bytes outside DllCharacteristics")
			}
		})
	}
}

func TestImagePatcher_Idempotent(t *testing.T) {
	path := testutil.WriteEFIImage(t, t.TempDir(), "driver.efi", true, 0x0020)
	patcher := NewImagePatcherGateway()

	first, err := patcher.SetNXCompat(context.Background(), path)
	if err != nil {
		t.Fatalf("first SetNXCompat() error = %v", err)
	}
	once, _ := os.ReadFile(path)

	second, err := patcher.SetNXCompat(context.Background(), path)
	if err != nil {
		t.Fatalf("second SetNXCompat() error = %v", err)
	}
	twice, _ := os.ReadFile(path)

	if first.After != second.After {
		t.Errorf("After differs between runs: 0x%04x vs 0x%04x", first.After, second.After)
	}
	if second.Changed() {
		t.Error("second run should not change the field")
	}
	if !bytes.Equal(once, twice) {
		t.Error("patching twice should produce the same image as patching once")
	}
}

func TestImagePatcher_ReadDllCharacteristics(t *testing.T) {
	path := testutil.WriteEFIImage(t, t.TempDir(), "driver.efi", true, 0x4160)

	got, err := NewImagePatcherGateway().ReadDllCharacteristics(path)
	if err != nil {
		t.Fatalf("ReadDllCharacteristics() error = %v", err)
	}
	if got != 0x4160 {
		t.Errorf("ReadDllCharacteristics() = 0x%04x, want 0x4160", got)
	}
}

func TestImagePatcher_NonexistentFile(t *testing.T) {
	_, err := NewImagePatcherGateway().SetNXCompat(context.Background(), "/nonexistent/driver.efi")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestImagePatcher_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.efi")
	content := bytes.Repeat([]byte("this is not a PE image "), 16)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := NewImagePatcherGateway().SetNXCompat(context.Background(), path)
	if err == nil {
		t.Fatal("Expected error for invalid image, got nil")
	}

	// A rejected image is left untouched
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, content) {
		t.Error("invalid image was modified")
	}
}
