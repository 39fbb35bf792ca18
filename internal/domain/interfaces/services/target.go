// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// EnvLookup resolves an environment variable, like os.LookupEnv
type EnvLookup func(key string) (string, bool)

// AppliedSubstitution records one placeholder replacement in the target config
type AppliedSubstitution struct {
	Placeholder string
	EnvVar      string
	Value       string
}

// TargetSetting is one KEY = VALUE entry of the target config
type TargetSetting struct {
	Key   string
	Value string
}

// TargetService prepares the EDK2 target configuration for a build
type TargetService interface {
	// ConfigureTarget applies subs to the file at path, in order, with values from lookup
	ConfigureTarget(ctx context.Context, path string, subs []entities.Substitution, lookup EnvLookup) ([]AppliedSubstitution, error)

	// EffectiveTarget returns the build-relevant keys of the target config in a
	// fixed order. A missing file yields no settings.
	EffectiveTarget(ctx context.Context, path string) ([]TargetSetting, error)
}
