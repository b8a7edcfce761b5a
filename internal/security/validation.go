// Package security guards file system writes driven by user input.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateOutputName checks that a generated file name stays inside dir.
// Plugins take file names from flags, so "../" and absolute names are
// rejected before anything is written.
func ValidateOutputName(name, dir string) error {
	if name == "" {
		return fmt.Errorf("empty output file name")
	}

	if filepath.IsAbs(name) {
		return fmt.Errorf("output file name %q must be relative to the output directory", name)
	}

	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return fmt.Errorf("output file name %q contains directory traversal (..)", name)
		}
	}

	cleanBase := filepath.Clean(dir)
	cleanFinal := filepath.Clean(filepath.Join(dir, name))
	if cleanFinal == cleanBase {
		return fmt.Errorf("output file name %q resolves to the output directory itself", name)
	}
	if cleanBase != "." && !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("output file name %q would escape %s", name, dir)
	}

	return nil
}
