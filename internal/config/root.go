package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the project manifest file name.
const ManifestName = "ion.toml"

// Find walks up from startDir looking for ion.toml. It returns the
// manifest path and true when found, or ok=false when the filesystem
// root is reached without one.
func Find(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve absolute path for %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, true, nil
		} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %s: %w", candidate, statErr)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFromDir finds and loads the manifest governing startDir. When no
// manifest exists the defaults are returned with an empty path.
func LoadFromDir(startDir string) (Manifest, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Manifest{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	m, err := Load(path)
	if err != nil {
		return Manifest{}, "", err
	}
	return m, path, nil
}
