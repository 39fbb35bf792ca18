package gateways

import (
	"context"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// PlatformBuilder runs the EDK2 "build" driver
type PlatformBuilder struct {
	runner CommandRunner
	tool   string
}

// NewPlatformBuilder creates a platform builder invoking tool
func NewPlatformBuilder(runner CommandRunner, tool string) *PlatformBuilder {
	return &PlatformBuilder{runner: runner, tool: tool}
}

// Build runs "build --platform=<platform>" in workspace
func (b *PlatformBuilder) Build(ctx context.Context, workspace, platform string) error {
	config := RunConfig{
		Tool:        b.tool,
		Args:        []string{"--platform=" + platform},
		WorkingDir:  workspace,
		Description: "build",
	}
	return b.runner.Run(ctx, config).ToolError(config)
}

// SectionGenerator runs GenSec
type SectionGenerator struct {
	runner CommandRunner
	tool   string
}

// NewSectionGenerator creates a section generator invoking tool
func NewSectionGenerator(runner CommandRunner, tool string) *SectionGenerator {
	return &SectionGenerator{runner: runner, tool: tool}
}

// GenerateSection runs "GenSec -o <out> [<in>] -S <type> [-n <name>]" in dir
func (g *SectionGenerator) GenerateSection(ctx context.Context, dir string, spec entities.SectionSpec) error {
	config := RunConfig{
		Tool:        g.tool,
		Args:        sectionArgs(spec),
		WorkingDir:  dir,
		Description: "section " + spec.Type,
	}
	return g.runner.Run(ctx, config).ToolError(config)
}

func sectionArgs(spec entities.SectionSpec) []string {
	args := []string{"-o", spec.Output}
	if spec.Input != "" {
		args = append(args, spec.Input)
	}
	args = append(args, "-S", spec.Type)
	if spec.Name != "" {
		args = append(args, "-n", spec.Name)
	}
	return args
}

// FfsGenerator runs GenFfs
type FfsGenerator struct {
	runner CommandRunner
	tool   string
}

// NewFfsGenerator creates an FFS generator invoking tool
func NewFfsGenerator(runner CommandRunner, tool string) *FfsGenerator {
	return &FfsGenerator{runner: runner, tool: tool}
}

// GenerateFfs runs "GenFfs -g <guid> -o <out> -i <sec>... -t <type> [--checksum]" in dir
func (g *FfsGenerator) GenerateFfs(ctx context.Context, dir string, spec entities.FfsSpec) error {
	config := RunConfig{
		Tool:        g.tool,
		Args:        ffsArgs(spec),
		WorkingDir:  dir,
		Description: "ffs",
	}
	return g.runner.Run(ctx, config).ToolError(config)
}

func ffsArgs(spec entities.FfsSpec) []string {
	args := []string{"-g", spec.GUID, "-o", spec.Output}
	for _, in := range spec.Inputs {
		args = append(args, "-i", in)
	}
	args = append(args, "-t", spec.FileType)
	if spec.Checksum {
		args = append(args, "--checksum")
	}
	return args
}
