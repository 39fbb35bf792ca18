package gateways

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ochairo/buildffs/internal/domain/entities"
)

// ArtifactLocator finds build outputs by glob
type ArtifactLocator struct{}

// NewArtifactLocator creates a new artifact locator
func NewArtifactLocator() *ArtifactLocator {
	return &ArtifactLocator{}
}

// Locate globs pattern (slash-separated, relative to workspace) and requires exactly one match.
// Only pattern is interpreted; the workspace path is taken literally.
func (l *ArtifactLocator) Locate(workspace, pattern string) (string, error) {
	display := filepath.Join(workspace, filepath.FromSlash(pattern))

	rel, err := fs.Glob(os.DirFS(workspace), pattern)
	if err != nil {
		return "", fmt.Errorf("failed to glob pattern %s: %w", display, err)
	}

	matches := make([]string, 0, len(rel))
	for _, m := range rel {
		matches = append(matches, filepath.Join(workspace, filepath.FromSlash(m)))
	}
	sort.Strings(matches)

	if len(matches) != 1 {
		return "", &entities.ArtifactNotFoundError{Pattern: display, Matches: matches}
	}

	return matches[0], nil
}
