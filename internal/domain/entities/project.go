package entities

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ProjectConfig describes the driver being packaged and the EDK2 layout around it
type ProjectConfig struct {
	DriverName           string
	GUID                 string
	Platform             string // platform description passed to build --platform
	TargetConfig         string // relative to the workspace root
	BuildDir             string // relative to the workspace root
	Arch                 string
	InteractiveWorkspace string // workspace root relative to the current directory in interactive mode
	Tools                ToolConfig
	Substitutions        []Substitution
}

// ToolConfig names the external executables
type ToolConfig struct {
	Build  string
	GenSec string
	GenFfs string
}

// Substitution replaces the literal Placeholder in the target config
// with the value of the environment variable EnvVar
type Substitution struct {
	Placeholder string
	EnvVar      string
}

// DefaultProjectConfig returns the NvStrapsReBar layout
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		DriverName:           "NvStrapsReBar",
		GUID:                 "90d10790-bbfa-404b-873b-5bdb3ada3c56",
		Platform:             "NvStrapsReBar/ReBarDxe/ReBar.dsc",
		TargetConfig:         "Conf/target.txt",
		BuildDir:             "Build/NvStrapsReBar",
		Arch:                 "X64",
		InteractiveWorkspace: "../..",
		Tools: ToolConfig{
			Build:  "build",
			GenSec: "GenSec",
			GenFfs: "GenFfs",
		},
		Substitutions: []Substitution{
			{Placeholder: "DEBUG", EnvVar: "TARGET"},
			{Placeholder: "IA32", EnvVar: "TARGET_ARCH"},
			{Placeholder: "VS2015x86", EnvVar: "TOOL_CHAIN_TAG"},
		},
	}
}

// Validate checks required fields and normalizes the GUID to its canonical form
func (c *ProjectConfig) Validate() error {
	if c.DriverName == "" {
		return fmt.Errorf("driver name is required")
	}
	if strings.ContainsAny(c.DriverName, `/\*?[`) {
		return fmt.Errorf("driver name %q must be a plain file name", c.DriverName)
	}

	id, err := uuid.Parse(c.GUID)
	if err != nil {
		return fmt.Errorf("invalid driver GUID %q: %w", c.GUID, err)
	}
	c.GUID = id.String()

	if c.Platform == "" {
		return fmt.Errorf("platform description path is required")
	}
	if c.BuildDir == "" || c.Arch == "" {
		return fmt.Errorf("build directory and architecture are required")
	}
	if c.Tools.Build == "" || c.Tools.GenSec == "" || c.Tools.GenFfs == "" {
		return fmt.Errorf("tool names must not be empty")
	}

	for i, s := range c.Substitutions {
		if s.Placeholder == "" || s.EnvVar == "" {
			return fmt.Errorf("substitution %d: placeholder and env var are required", i)
		}
	}

	return nil
}

// ImageName is the file name of the driver image produced by the build
func (c *ProjectConfig) ImageName() string {
	return c.DriverName + ".efi"
}

// FfsName is the file name of the packaged firmware file
func (c *ProjectConfig) FfsName() string {
	return c.DriverName + ".ffs"
}

// ArtifactPattern is the slash-separated glob, relative to the workspace,
// matching the driver image for buildType
func (c *ProjectConfig) ArtifactPattern(buildType BuildType) string {
	return path.Join(c.BuildDir, string(buildType)+"_*", c.Arch, c.ImageName())
}
