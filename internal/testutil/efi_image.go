// Package testutil builds small, well-formed PE/COFF images for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Image geometry shared by both formats
const (
	dosHeaderSize = 0x40
	fileAlignment = 0x200
	imageSize     = 0x400

	machineAMD64 = 0x8664
	machineI386  = 0x014c
	magicPE32    = 0x10b
	magicPE32P   = 0x20b

	subsystemEFIBootServiceDriver = 11
)

// DllCharacteristicsOffset is the file offset of the field in images built here
const DllCharacteristicsOffset = dosHeaderSize + 4 + 20 + 70

// EFIImage returns a minimal PE32+ (pe32plus) or PE32 image with one .text
// section and the given DllCharacteristics.
func EFIImage(pe32plus bool, dllCharacteristics uint16) []byte {
	buf := make([]byte, imageSize)
	le := binary.LittleEndian

	// DOS header: "MZ" and e_lfanew
	buf[0], buf[1] = 'M', 'Z'
	le.PutUint32(buf[0x3c:], dosHeaderSize)

	nt := dosHeaderSize
	copy(buf[nt:], "PE\x00\x00")

	optSize := 224
	machine := uint16(machineI386)
	if pe32plus {
		optSize = 240
		machine = machineAMD64
	}

	fh := nt + 4
	le.PutUint16(buf[fh:], machine)
	le.PutUint16(buf[fh+2:], 1) // NumberOfSections
	le.PutUint16(buf[fh+16:], uint16(optSize))
	le.PutUint16(buf[fh+18:], 0x0002|0x0020) // EXECUTABLE_IMAGE | LARGE_ADDRESS_AWARE

	oh := fh + 20
	if pe32plus {
		le.PutUint16(buf[oh:], magicPE32P)
	} else {
		le.PutUint16(buf[oh:], magicPE32)
	}
	le.PutUint32(buf[oh+4:], fileAlignment)  // SizeOfCode
	le.PutUint32(buf[oh+16:], 0x1000)        // AddressOfEntryPoint
	le.PutUint32(buf[oh+20:], 0x1000)        // BaseOfCode
	le.PutUint32(buf[oh+32:], 0x1000)        // SectionAlignment
	le.PutUint32(buf[oh+36:], fileAlignment) // FileAlignment
	le.PutUint32(buf[oh+56:], 0x2000)        // SizeOfImage
	le.PutUint32(buf[oh+60:], fileAlignment) // SizeOfHeaders
	le.PutUint16(buf[oh+68:], subsystemEFIBootServiceDriver)
	le.PutUint16(buf[oh+70:], dllCharacteristics)
	if pe32plus {
		le.PutUint32(buf[oh+108:], 16) // NumberOfRvaAndSizes
	} else {
		le.PutUint32(buf[oh+92:], 16) // NumberOfRvaAndSizes
	}

	sh := oh + optSize
	copy(buf[sh:sh+8], ".text")
	le.PutUint32(buf[sh+8:], fileAlignment)  // VirtualSize
	le.PutUint32(buf[sh+12:], 0x1000)        // VirtualAddress
	le.PutUint32(buf[sh+16:], fileAlignment) // SizeOfRawData
	le.PutUint32(buf[sh+20:], fileAlignment) // PointerToRawData
	le.PutUint32(buf[sh+36:], 0x60000020)    // CODE | EXECUTE | READ

	// ret
	buf[fileAlignment] = 0xc3

	return buf
}

// WriteEFIImage writes EFIImage to dir/name and returns the path
func WriteEFIImage(t *testing.T, dir, name string, pe32plus bool, dllCharacteristics uint16) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create image dir: %v", err)
	}
	if err := os.WriteFile(path, EFIImage(pe32plus, dllCharacteristics), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}
