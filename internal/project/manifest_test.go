package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "[package]\nname = \"demo\"\n\n[build]\njobs = 2\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Package.Name)
	}
	if m.Build.Jobs != 2 || !m.Build.Cache || m.Build.OutDir != "target" {
		t.Fatalf("unexpected build section: %+v", m.Build)
	}
	if m.Diagnostics.Max != 100 || m.Diagnostics.Format != "pretty" {
		t.Fatalf("unexpected diagnostics section: %+v", m.Diagnostics)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
	if got := m.OutDir(); got != filepath.Join(dir, "target") {
		t.Fatalf("OutDir = %q", got)
	}
}

func TestLoadRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sentinel error
	}{
		{name: "no package", content: "[build]\njobs = 1\n", sentinel: ErrPackageSectionMissing},
		{name: "bad format", content: "[package]\nname = \"x\"\n[diagnostics]\nformat = \"xml\"\n", sentinel: ErrBadFormat},
		{name: "unknown key", content: "[package]\nname = \"x\"\nedition = 2\n"},
		{name: "syntax", content: "[package\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Fatalf("error %v is not %v", err, tt.sentinel)
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	m := Default("hello")
	m.Package.Minic = ">= 0.1.0"
	m.Build.TargetTriple = "x86_64-pc-linux-gnu"
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(path, m); err == nil {
		t.Fatalf("second Write must refuse to overwrite")
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Package != m.Package || got.Build.TargetTriple != m.Build.TargetTriple {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Build.Sources) != 1 || got.Build.Sources[0] != "src/*.mini" {
		t.Fatalf("sources = %v", got.Build.Sources)
	}
}

func TestCheckCompiler(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		wantErr    bool
		mismatch   bool
	}{
		{constraint: "", version: "0.1.0"},
		{constraint: ">= 0.1.0", version: "0.1.0"},
		{constraint: "^0.1", version: "0.1.7"},
		{constraint: ">= 0.2.0", version: "0.1.0", wantErr: true, mismatch: true},
		{constraint: "not a constraint", version: "0.1.0", wantErr: true},
		{constraint: ">= 0.1.0", version: "dev", wantErr: true},
	}
	for _, tt := range tests {
		m := Default("x")
		m.Package.Minic = tt.constraint
		err := m.CheckCompiler(tt.version)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q vs %q: err = %v, wantErr %v", tt.constraint, tt.version, err, tt.wantErr)
		}
		if tt.mismatch && !errors.Is(err, ErrVersionMismatch) {
			t.Fatalf("%q vs %q: want ErrVersionMismatch, got %v", tt.constraint, tt.version, err)
		}
	}
}

func TestSourcesExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "b.mini"), "")
	writeFile(t, filepath.Join(dir, "src", "a.mini"), "")
	writeFile(t, filepath.Join(dir, "src", "notes.txt"), "")

	m := Default("x")
	m.Root = dir
	m.Build.Sources = []string{"src/*.mini", "src/a.mini"}
	got, err := m.Sources()
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	want := []string{filepath.Join(dir, "src", "a.mini"), filepath.Join(dir, "src", "b.mini")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Sources = %v, want %v", got, want)
	}

	m.Build.Sources = []string{"none/*.mini"}
	if _, err := m.Sources(); !errors.Is(err, ErrNoSources) {
		t.Fatalf("want ErrNoSources, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ManifestName), "[package]\nname = \"x\"\n")
	nested := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadNearest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadNearest: ok=%v err=%v", ok, err)
	}
	if m.Root != dir || m.Package.Name != "x" {
		t.Fatalf("root = %q name = %q, want %q x", m.Root, m.Package.Name, dir)
	}

	if _, ok, err := LoadNearest(t.TempDir()); ok || err != nil {
		t.Fatalf("unexpected manifest outside project: ok=%v err=%v", ok, err)
	}
}

func TestFingerprintSeparatesSalts(t *testing.T) {
	var content Digest
	content[0] = 1
	a := Fingerprint(content, "ab", "c")
	b := Fingerprint(content, "a", "bc")
	if a == b {
		t.Fatalf("length-prefixed salts must not collide")
	}
	if Fingerprint(content, "ab", "c") != a {
		t.Fatalf("fingerprint must be deterministic")
	}
}
