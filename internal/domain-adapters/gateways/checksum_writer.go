package gateways

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumSuffix is appended to the artifact path to name its checksum file
const ChecksumSuffix = ".sha256"

// checksumWriter computes and writes SHA-256 checksums in sha256sum format
type checksumWriter struct{}

// NewChecksumWriter creates a new checksum writer
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumWriter() *checksumWriter {
	return &checksumWriter{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (w *checksumWriter) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is the packaged artifact
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksum writes "<hex>  <basename>\n" to filePath + ".sha256"
func (w *checksumWriter) WriteChecksum(_ context.Context, filePath string) (string, error) {
	sum, err := w.CalculateChecksum(filePath)
	if err != nil {
		return "", err
	}

	sumPath := filePath + ChecksumSuffix
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))
	if err := os.WriteFile(sumPath, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("failed to write checksum file: %w", err)
	}

	return sumPath, nil
}

// VerifyChecksumFile checks filePath against the first entry of a sha256sum-format file
func (w *checksumWriter) VerifyChecksumFile(_ context.Context, filePath, sumPath string) error {
	//nolint:gosec // G304: sumPath is user-provided for verification
	f, err := os.Open(sumPath)
	if err != nil {
		return fmt.Errorf("failed to open checksum file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read checksum file: %w", err)
		}
		return fmt.Errorf("checksum file %s is empty", sumPath)
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return fmt.Errorf("checksum file %s is malformed", sumPath)
	}
	expectedSum := strings.ToLower(fields[0])

	actualSum, err := w.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actualSum != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}
