// Package entities defines core domain models and data structures.
package entities

// Artifact represents a file produced or consumed by the pipeline
type Artifact struct {
	Name      string
	BuildType BuildType
	Path      string
	Type      string // "efi", "ffs", "checksum", "signature"
}

// Artifact types
const (
	ArtifactTypeEFI       = "efi"
	ArtifactTypeFFS       = "ffs"
	ArtifactTypeChecksum  = "checksum"
	ArtifactTypeSignature = "signature"
)
