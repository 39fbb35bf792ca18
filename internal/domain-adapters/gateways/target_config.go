package gateways

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// TargetConfig edits and reads EDK2 Conf/target.txt
type TargetConfig struct{}

// NewTargetConfig creates a new target config gateway
func NewTargetConfig() *TargetConfig {
	return &TargetConfig{}
}

// Substitute replaces every occurrence of find with replace and rewrites the
// whole file, even when nothing matched. The file mode is kept.
func (t *TargetConfig) Substitute(path, find, replace string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	//nolint:gosec // G304: path is the configured target file
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := strings.ReplaceAll(string(data), find, replace)

	if err := os.WriteFile(path, []byte(content), stat.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ReadEffective parses target.txt as KEY = VALUE pairs. A missing file yields an empty map.
func (t *TargetConfig) ReadEffective(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:        true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, key := range cfg.Section(ini.DefaultSection).Keys() {
		values[key.Name()] = key.String()
	}

	return values, nil
}
