package entities

// Section types understood by GenSec
const (
	SectionPE32          = "EFI_SECTION_PE32"
	SectionUserInterface = "EFI_SECTION_USER_INTERFACE"
)

// FileTypeDriver is the GenFfs file type of a DXE driver
const FileTypeDriver = "EFI_FV_FILETYPE_DRIVER"

// Intermediate section file names, relative to the image directory
const (
	PE32SectionFile = "pe32.sec"
	NameSectionFile = "name.sec"
)

// SectionSpec describes one GenSec invocation
type SectionSpec struct {
	Output string
	Input  string // empty for sections without an input file
	Type   string
	Name   string // user interface string, only for EFI_SECTION_USER_INTERFACE
}

// FfsSpec describes one GenFfs invocation
type FfsSpec struct {
	GUID     string
	Output   string
	Inputs   []string
	FileType string
	Checksum bool
}
