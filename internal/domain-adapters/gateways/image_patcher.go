// Package gateways provides adapter implementations for external tools and the filesystem.
package gateways

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/saferwall/pe"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/services"
)

// Offsets within the NT headers: "PE\0\0" signature, then the COFF file header.
// DllCharacteristics sits at the same optional header offset in PE32 and PE32+.
const (
	peSignatureSize             = 4
	coffFileHeaderSize          = 20
	dllCharacteristicsOptOffset = 70
)

// imagePatcherGateway patches PE/COFF headers. Parsing is done by saferwall/pe,
// the write is a two-byte in-place edit of the file contents.
type imagePatcherGateway struct{}

// NewImagePatcherGateway creates a new image patcher gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewImagePatcherGateway() *imagePatcherGateway {
	return &imagePatcherGateway{}
}

type optionalHeaderInfo struct {
	format             string
	dllCharacteristics uint16
	fieldOffset        int64
}

// SetNXCompat sets IMAGE_DLLCHARACTERISTICS_NX_COMPAT in the image at path.
// The original file is removed and the patched image written to the same path;
// there is no backup in between.
func (g *imagePatcherGateway) SetNXCompat(_ context.Context, path string) (*entities.PatchResult, error) {
	info, err := g.readOptionalHeader(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	//nolint:gosec // G304: path is the located build artifact
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	off := info.fieldOffset
	if off < 0 || off+2 > int64(len(data)) {
		return nil, fmt.Errorf("DllCharacteristics offset 0x%x out of range for %d byte image", off, len(data))
	}
	if got := binary.LittleEndian.Uint16(data[off:]); got != info.dllCharacteristics {
		return nil, fmt.Errorf("DllCharacteristics at 0x%x is 0x%04x, parser reported 0x%04x", off, got, info.dllCharacteristics)
	}

	after := services.SetBit(info.dllCharacteristics, entities.NXCompatBit)
	binary.LittleEndian.PutUint16(data[off:], after)

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to remove original image: %w", err)
	}
	if err := os.WriteFile(path, data, stat.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write patched image: %w", err)
	}

	return &entities.PatchResult{
		Path:   path,
		Format: info.format,
		Before: info.dllCharacteristics,
		After:  after,
	}, nil
}

// ReadDllCharacteristics returns the current field value without modifying the image
func (g *imagePatcherGateway) ReadDllCharacteristics(path string) (uint16, error) {
	info, err := g.readOptionalHeader(path)
	if err != nil {
		return 0, err
	}
	return info.dllCharacteristics, nil
}

// readOptionalHeader parses the headers and releases the mapping before returning,
// so the caller is free to replace the file.
func (g *imagePatcherGateway) readOptionalHeader(path string) (*optionalHeaderInfo, error) {
	f, err := pe.New(path, &pe.Options{Fast: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open PE image: %w", err)
	}
	//nolint:errcheck // Defer close on read-only mapping
	defer f.Close()

	if err := f.Parse(); err != nil {
		return nil, fmt.Errorf("failed to parse PE image: %w", err)
	}

	info := &optionalHeaderInfo{
		fieldOffset: int64(f.DOSHeader.AddressOfNewEXEHeader) +
			peSignatureSize + coffFileHeaderSize + dllCharacteristicsOptOffset,
	}

	switch oh := f.NtHeader.OptionalHeader.(type) {
	case pe.ImageOptionalHeader32:
		info.format = "PE32"
		info.dllCharacteristics = uint16(oh.DllCharacteristics)
	case *pe.ImageOptionalHeader32:
		info.format = "PE32"
		info.dllCharacteristics = uint16(oh.DllCharacteristics)
	case pe.ImageOptionalHeader64:
		info.format = "PE32+"
		info.dllCharacteristics = uint16(oh.DllCharacteristics)
	case *pe.ImageOptionalHeader64:
		info.format = "PE32+"
		info.dllCharacteristics = uint16(oh.DllCharacteristics)
	default:
		return nil, fmt.Errorf("unsupported optional header type %T", oh)
	}

	return info, nil
}
