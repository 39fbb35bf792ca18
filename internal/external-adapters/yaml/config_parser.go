// Package yaml provides YAML-based project configuration parsing.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// DefaultConfigFile is looked up in the current directory when no path is given
const DefaultConfigFile = "buildffs.yaml"

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Driver               yamlDriver         `yaml:"driver"`
	Platform             string             `yaml:"platform"`
	TargetConfig         string             `yaml:"target_config"`
	BuildDir             string             `yaml:"build_dir"`
	Arch                 string             `yaml:"arch"`
	InteractiveWorkspace string             `yaml:"interactive_workspace"`
	Tools                yamlTools          `yaml:"tools"`
	Substitutions        []yamlSubstitution `yaml:"substitutions"`
}

type yamlDriver struct {
	Name string `yaml:"name"`
	GUID string `yaml:"guid"`
}

type yamlTools struct {
	Build  string `yaml:"build"`
	GenSec string `yaml:"gensec"`
	GenFfs string `yaml:"genffs"`
}

type yamlSubstitution struct {
	Placeholder string `yaml:"placeholder"`
	Env         string `yaml:"env"`
}

// ConfigParser parses buildffs.yaml files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// Load parses filePath. When the file does not exist and required is false the
// defaults are returned.
func (p *ConfigParser) Load(filePath string, required bool) (*entities.ProjectConfig, error) {
	//nolint:gosec // G304: filePath is the user-selected project configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			cfg := entities.DefaultProjectConfig()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	cfg, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

// Parse parses YAML bytes on top of the default configuration
func (p *ConfigParser) Parse(data []byte) (*entities.ProjectConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultProjectConfig()

	override(&cfg.DriverName, raw.Driver.Name)
	override(&cfg.GUID, raw.Driver.GUID)
	override(&cfg.Platform, raw.Platform)
	override(&cfg.TargetConfig, raw.TargetConfig)
	override(&cfg.BuildDir, raw.BuildDir)
	override(&cfg.Arch, raw.Arch)
	override(&cfg.InteractiveWorkspace, raw.InteractiveWorkspace)
	override(&cfg.Tools.Build, raw.Tools.Build)
	override(&cfg.Tools.GenSec, raw.Tools.GenSec)
	override(&cfg.Tools.GenFfs, raw.Tools.GenFfs)

	// A substitution list replaces the default table as a whole
	if raw.Substitutions != nil {
		cfg.Substitutions = convertSubstitutions(raw.Substitutions)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func convertSubstitutions(ys []yamlSubstitution) []entities.Substitution {
	subs := make([]entities.Substitution, 0, len(ys))
	for _, s := range ys {
		subs = append(subs, entities.Substitution{
			Placeholder: s.Placeholder,
			EnvVar:      s.Env,
		})
	}
	return subs
}
