package services

import (
	"context"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// PackagingService turns a driver image into a firmware file
type PackagingService interface {
	// Package builds <driver>.ffs next to imagePath and removes the intermediate sections
	Package(ctx context.Context, imagePath string) (*entities.Artifact, error)
}
