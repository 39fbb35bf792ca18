package gateways

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// FileCleaner deletes intermediate files
type FileCleaner struct{}

// NewFileCleaner creates a new file cleaner
func NewFileCleaner() *FileCleaner {
	return &FileCleaner{}
}

// RemoveIfExists removes each name in dir. Missing files are skipped; every
// other failure is collected and the remaining names are still attempted.
func (c *FileCleaner) RemoveIfExists(dir string, names ...string) error {
	var result *multierror.Error

	for _, name := range names {
		err := os.Remove(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
