package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in minic.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrVersionMismatch is returned when the running compiler does not
	// satisfy [package].minic.
	ErrVersionMismatch = errors.New("compiler version does not satisfy manifest")
	ErrNoSources       = errors.New("no source files match [build].sources")
	ErrBadFormat       = errors.New("invalid [diagnostics].format")
)

// Manifest is the decoded minic.toml.
type Manifest struct {
	Package     PackageSection     `toml:"package"`
	Build       BuildSection       `toml:"build"`
	Diagnostics DiagnosticsSection `toml:"diagnostics"`

	// Root is the directory holding the manifest; it is not part of the file.
	Root string `toml:"-"`
}

type PackageSection struct {
	Name  string `toml:"name"`
	Minic string `toml:"minic,omitempty"`
}

type BuildSection struct {
	Sources      []string `toml:"sources"`
	OutDir       string   `toml:"out_dir"`
	TargetTriple string   `toml:"target_triple,omitempty"`
	Jobs         int      `toml:"jobs"`
	Cache        bool     `toml:"cache"`
}

type DiagnosticsSection struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"` // pretty | json
}

// Default returns the manifest written by `minic init`.
func Default(name string) Manifest {
	return Manifest{
		Package: PackageSection{Name: name},
		Build: BuildSection{
			Sources: []string{"src/*.mini"},
			OutDir:  "target",
			Cache:   true,
		},
		Diagnostics: DiagnosticsSection{Max: 100, Format: "pretty"},
	}
}

// Load parses minic.toml. Keys missing from the file keep their defaults.
func Load(path string) (Manifest, error) {
	m := Default("")
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Package.Name == "" {
		m.Package.Name = filepath.Base(filepath.Dir(path))
	}
	switch m.Diagnostics.Format {
	case "pretty", "json":
	default:
		return Manifest{}, fmt.Errorf("%s: %w: %q", path, ErrBadFormat, m.Diagnostics.Format)
	}
	m.Root = filepath.Dir(path)
	return m, nil
}

// Write encodes m to path, refusing to overwrite an existing file.
func Write(path string, m Manifest) error {
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// CheckCompiler verifies that version satisfies [package].minic. An empty
// constraint accepts every version.
func (m Manifest) CheckCompiler(version string) error {
	if strings.TrimSpace(m.Package.Minic) == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(m.Package.Minic)
	if err != nil {
		return fmt.Errorf("invalid [package].minic %q: %w", m.Package.Minic, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}
	if ok, errs := constraint.Validate(v); !ok {
		return fmt.Errorf("%w: %s: %w", ErrVersionMismatch, version, errors.Join(errs...))
	}
	return nil
}

// Sources expands [build].sources relative to the manifest root. The result is
// sorted and free of duplicates.
func (m Manifest) Sources() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range m.Build.Sources {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(m.Root, filepath.FromSlash(pattern))
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		for _, p := range matches {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSources
	}
	sort.Strings(out)
	return out, nil
}

// OutDir returns the absolute output directory.
func (m Manifest) OutDir() string {
	dir := m.Build.OutDir
	if dir == "" {
		dir = "target"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}
