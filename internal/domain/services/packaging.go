package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
	"github.com/ochairo/buildffs/internal/domain/interfaces/gateways"
	"github.com/ochairo/buildffs/internal/domain/interfaces/services"
)

// packagingService implements PackagingService with GenSec/GenFfs style generators
type packagingService struct {
	project  entities.ProjectConfig
	sections gateways.SectionGenerator
	ffs      gateways.FfsGenerator
	cleaner  gateways.FileCleaner
	logger   interfaces.Logger
}

// NewPackagingService creates a new packaging service
func NewPackagingService(
	project entities.ProjectConfig,
	sections gateways.SectionGenerator,
	ffs gateways.FfsGenerator,
	cleaner gateways.FileCleaner,
	logger interfaces.Logger,
) services.PackagingService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &packagingService{
		project:  project,
		sections: sections,
		ffs:      ffs,
		cleaner:  cleaner,
		logger:   logger,
	}
}

// Package runs every tool in the image directory, using names relative to it
func (s *packagingService) Package(ctx context.Context, imagePath string) (*entities.Artifact, error) {
	dir := filepath.Dir(imagePath)
	ffsName := s.project.FfsName()

	if err := s.cleaner.RemoveIfExists(dir, entities.PE32SectionFile, entities.NameSectionFile, ffsName); err != nil {
		return nil, fmt.Errorf("failed to remove stale intermediates: %w", err)
	}

	sectionSpecs := []entities.SectionSpec{
		{
			Output: entities.PE32SectionFile,
			Input:  filepath.Base(imagePath),
			Type:   entities.SectionPE32,
		},
		{
			Output: entities.NameSectionFile,
			Type:   entities.SectionUserInterface,
			Name:   s.project.DriverName,
		},
	}
	for _, spec := range sectionSpecs {
		s.logger.Debug("generating section", interfaces.F("type", spec.Type), interfaces.F("output", spec.Output))
		if err := s.sections.GenerateSection(ctx, dir, spec); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", spec.Output, err)
		}
	}

	ffsSpec := entities.FfsSpec{
		GUID:     s.project.GUID,
		Output:   ffsName,
		Inputs:   []string{entities.PE32SectionFile, entities.NameSectionFile},
		FileType: entities.FileTypeDriver,
		Checksum: true,
	}
	if err := s.ffs.GenerateFfs(ctx, dir, ffsSpec); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", ffsName, err)
	}

	if err := s.cleaner.RemoveIfExists(dir, entities.PE32SectionFile, entities.NameSectionFile); err != nil {
		return nil, fmt.Errorf("failed to remove intermediate sections: %w", err)
	}

	return &entities.Artifact{
		Name: s.project.DriverName,
		Path: filepath.Join(dir, ffsName),
		Type: entities.ArtifactTypeFFS,
	}, nil
}
