package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestName is the file that marks a project root.
const ManifestName = "minic.toml"

// FindManifest returns the nearest minic.toml at or above startDir.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		candidate := filepath.Join(dir, ManifestName)
		_, statErr := os.Stat(candidate)
		switch {
		case statErr == nil:
			return candidate, true, nil
		case !errors.Is(statErr, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
	}
	return "", false, nil
}

// LoadNearest finds and loads the manifest governing startDir. ok is false
// when there is none.
func LoadNearest(startDir string) (m Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return Manifest{}, false, err
	}
	m, err = Load(path)
	if err != nil {
		return Manifest{}, false, err
	}
	return m, true, nil
}
