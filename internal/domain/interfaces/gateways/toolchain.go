// Package gateways defines the contracts for external tools and the filesystem.
package gateways

import (
	"context"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// PlatformBuilder runs the EDK2 platform build
type PlatformBuilder interface {
	// Build runs the build for platform with workspace as working directory.
	// The returned error is a *entities.ToolError when the tool exits non-zero.
	Build(ctx context.Context, workspace, platform string) error
}

// SectionGenerator produces a single FFS section file (GenSec)
type SectionGenerator interface {
	GenerateSection(ctx context.Context, dir string, spec entities.SectionSpec) error
}

// FfsGenerator combines sections into a firmware file (GenFfs)
type FfsGenerator interface {
	GenerateFfs(ctx context.Context, dir string, spec entities.FfsSpec) error
}

// ArtifactLocator finds the single build output matching a pattern
type ArtifactLocator interface {
	// Locate returns *entities.ArtifactNotFoundError unless exactly one file matches.
	Locate(workspace, pattern string) (string, error)
}

// ImagePatcher edits PE/COFF image headers in place
type ImagePatcher interface {
	SetNXCompat(ctx context.Context, path string) (*entities.PatchResult, error)
}

// FileCleaner removes files, treating absence as success
type FileCleaner interface {
	RemoveIfExists(dir string, names ...string) error
}

// TargetConfigGateway edits and reads the EDK2 target configuration file
type TargetConfigGateway interface {
	Substitute(path, find, replace string) error
	ReadEffective(path string) (map[string]string, error)
}
