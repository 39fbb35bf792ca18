// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"fmt"

	"github.com/ochairo/buildffs/internal/domain/entities"
	"github.com/ochairo/buildffs/internal/domain/interfaces"
	"github.com/ochairo/buildffs/internal/domain/interfaces/gateways"
	"github.com/ochairo/buildffs/internal/domain/interfaces/services"
)

// effectiveKeys are the target.txt keys that decide what build produces
var effectiveKeys = []string{"ACTIVE_PLATFORM", "TARGET", "TARGET_ARCH", "TOOL_CHAIN_TAG"}

// targetService implements TargetService on top of a TargetConfigGateway
type targetService struct {
	gateway gateways.TargetConfigGateway
	logger  interfaces.Logger
}

// NewTargetService creates a new target service with dependency injection
func NewTargetService(gateway gateways.TargetConfigGateway, logger interfaces.Logger) services.TargetService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &targetService{gateway: gateway, logger: logger}
}

// ConfigureTarget resolves every substitution before touching the file, so a
// missing variable leaves the config unmodified.
func (s *targetService) ConfigureTarget(
	_ context.Context,
	path string,
	subs []entities.Substitution,
	lookup services.EnvLookup,
) ([]services.AppliedSubstitution, error) {
	applied := make([]services.AppliedSubstitution, 0, len(subs))
	for _, sub := range subs {
		value, ok := lookup(sub.EnvVar)
		if !ok {
			return nil, fmt.Errorf("environment variable %s is not set", sub.EnvVar)
		}
		s.logger.Info("target setting from environment", interfaces.F(sub.EnvVar, value))
		applied = append(applied, services.AppliedSubstitution{
			Placeholder: sub.Placeholder,
			EnvVar:      sub.EnvVar,
			Value:       value,
		})
	}

	for _, a := range applied {
		if err := s.gateway.Substitute(path, a.Placeholder, a.Value); err != nil {
			return nil, fmt.Errorf("failed to substitute %s in %s: %w", a.Placeholder, path, err)
		}
	}

	return applied, nil
}

// EffectiveTarget reads the target config and keeps only the keys build cares about
func (s *targetService) EffectiveTarget(_ context.Context, path string) ([]services.TargetSetting, error) {
	all, err := s.gateway.ReadEffective(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target config %s: %w", path, err)
	}

	var effective []services.TargetSetting
	for _, key := range effectiveKeys {
		if v, ok := all[key]; ok {
			effective = append(effective, services.TargetSetting{Key: key, Value: v})
		}
	}

	return effective, nil
}
