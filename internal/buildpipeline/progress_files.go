package buildpipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DisplayNames maps source paths to the names shown in progress events:
// relative to baseDir when the file lives under it, slash-separated.
func DisplayNames(files []string, baseDir string) []string {
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	out := make([]string, len(files))
	for i, file := range files {
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		out[i] = filepath.ToSlash(path)
	}
	return out
}

// ArtifactName is the .ll file produced for a source: "src/a.mini" -> "a.ll".
func ArtifactName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ll"
}

// checkArtifacts rejects inputs that would overwrite each other's output.
func checkArtifacts(files []string) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		name := ArtifactName(f)
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s and %s both produce %s", ErrDuplicateArtifact, prev, f, name)
		}
		seen[name] = f
	}
	return nil
}
