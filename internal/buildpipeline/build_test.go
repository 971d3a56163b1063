package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/observ"
	"github.com/maciek-pioro/compiler/internal/project"
)

const goodProgram = `program {
  int x;
  x = 2 + 3;
  write x;
}
`

const badProgram = `program {
  int x;
  bool x;
  write y;
}
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestBuildWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "src/a.mini", goodProgram)
	b := writeSource(t, dir, "src/b.mini", strings.Replace(goodProgram, "2 + 3", "7", 1))
	out := filepath.Join(dir, "target")
	sink := &RecordingSink{}
	timer := observ.NewTimer()

	res, err := Build(context.Background(), &Request{
		Files:    []string{a, b},
		BaseDir:  dir,
		OutDir:   out,
		Jobs:     2,
		Compiler: "0.1.0",
		Progress: sink,
		Timer:    timer,
	})
	be.Err(t, err, nil)
	be.True(t, res.OK)
	be.Equal(t, len(res.Files), 2)
	be.Equal(t, res.Files[0].Display, "src/a.mini")
	be.Equal(t, res.Files[0].Artifact, filepath.Join(out, "a.ll"))
	be.Equal(t, res.Files[1].Artifact, filepath.Join(out, "b.ll"))

	data, err := os.ReadFile(filepath.Join(out, "a.ll"))
	be.Err(t, err, nil)
	be.Equal(t, string(data), res.Files[0].IR)
	be.True(t, strings.Contains(string(data), "define i32 @main()"))

	var queued, written int
	for _, ev := range sink.Events() {
		if ev.Status == StatusQueued {
			queued++
		}
		if ev.Stage == StageWrite && ev.Status == StatusDone && ev.File != "" {
			written++
		}
	}
	be.Equal(t, queued, 2)
	be.Equal(t, written, 2)

	var sawEmit bool
	for _, p := range timer.Report().Phases {
		if p.Name == string(StageEmit) {
			sawEmit = p.Count == 2
		}
	}
	be.True(t, sawEmit)
}

func TestBuildKeepsGoingAfterFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.mini", badProgram)
	good := writeSource(t, dir, "good.mini", goodProgram)
	out := filepath.Join(dir, "target")
	sink := &RecordingSink{}

	res, err := Build(context.Background(), &Request{
		Files:    []string{bad, good},
		OutDir:   out,
		Progress: sink,
	})
	be.Err(t, err, nil)
	be.True(t, !res.OK)

	failed := res.Failed()
	be.Equal(t, len(failed), 1)
	be.Equal(t, failed[0].Source, bad)
	be.Equal(t, failed[0].Artifact, "")
	be.Equal(t, failed[0].Err, nil)

	codes := make([]diag.Code, 0, len(failed[0].Diagnostics))
	for _, d := range failed[0].Diagnostics {
		codes = append(codes, d.Code)
	}
	be.Equal(t, codes, []diag.Code{diag.SemaDuplicateDeclaration, diag.SemaUndeclaredIdentifier})

	_, statErr := os.Stat(filepath.Join(out, "bad.ll"))
	be.True(t, errors.Is(statErr, os.ErrNotExist))
	_, statErr = os.Stat(filepath.Join(out, "good.ll"))
	be.Err(t, statErr, nil)

	var semaError bool
	for _, ev := range sink.Events() {
		if ev.Stage == StageSema && ev.Status == StatusError {
			semaError = true
		}
	}
	be.True(t, semaError)
}

func TestBuildMissingFileIsReported(t *testing.T) {
	dir := t.TempDir()
	res, err := Build(context.Background(), &Request{
		Files:  []string{filepath.Join(dir, "missing.mini")},
		OutDir: filepath.Join(dir, "target"),
	})
	be.Err(t, err, nil)
	be.True(t, !res.OK)
	be.True(t, res.Files[0].Err != nil)
	be.Equal(t, res.Files[0].Diagnostics[0].Code, diag.IOLoadFileError)
}

func TestBuildRejectsBadRequests(t *testing.T) {
	_, err := Build(context.Background(), &Request{})
	be.Err(t, err, ErrNoInputs)

	_, err = Build(context.Background(), &Request{Files: []string{"x/a.mini", "y/a.mini"}})
	be.Err(t, err, ErrDuplicateArtifact)

	_, err = Build(context.Background(), nil)
	be.True(t, err != nil)
}

func TestBuildUsesCache(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.mini", goodProgram)
	cache, err := OpenDiskCache(filepath.Join(dir, "cache"))
	be.Err(t, err, nil)

	req := &Request{
		Files:    []string{src},
		OutDir:   filepath.Join(dir, "target"),
		Compiler: "0.1.0",
		Cache:    cache,
	}
	first, err := Build(context.Background(), req)
	be.Err(t, err, nil)
	be.True(t, first.OK)
	be.True(t, !first.Files[0].Cached)

	second, err := Build(context.Background(), req)
	be.Err(t, err, nil)
	be.True(t, second.Files[0].Cached)
	be.Equal(t, second.Files[0].IR, first.Files[0].IR)

	// a different compiler version misses
	req.Compiler = "0.2.0"
	third, err := Build(context.Background(), req)
	be.Err(t, err, nil)
	be.True(t, !third.Files[0].Cached)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	be.Err(t, err, nil)

	var content project.Digest
	content[1] = 7
	key := CacheKey(content, "0.1.0", "")

	var got CacheEntry
	ok, err := cache.Get(key, &got)
	be.Err(t, err, nil)
	be.True(t, !ok)

	be.Err(t, cache.Put(key, &CacheEntry{Source: "a.mini", IR: "ir"}), nil)
	ok, err = cache.Get(key, &got)
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, got.IR, "ir")
	be.Equal(t, got.Schema, cacheSchemaVersion)

	be.Err(t, cache.DropAll(), nil)
	ok, err = cache.Get(key, &got)
	be.Err(t, err, nil)
	be.True(t, !ok)

	be.True(t, CacheKey(content, "0.1.0", "") != CacheKey(content, "0.1.0", "x86_64-pc-linux-gnu"))
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *DiskCache
	ok, err := cache.Get(project.Digest{}, &CacheEntry{})
	be.Err(t, err, nil)
	be.True(t, !ok)
	be.Err(t, cache.Put(project.Digest{}, &CacheEntry{}), nil)
	be.Err(t, cache.DropAll(), nil)
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "target")
	writeSource(t, out, "a.ll", "x")
	be.Err(t, Clean(out, nil), nil)
	_, err := os.Stat(out)
	be.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDisplayNamesAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	names := DisplayNames([]string{filepath.Join(dir, "src", "a.mini"), "/elsewhere/b.mini"}, dir)
	be.Equal(t, names[0], "src/a.mini")
	be.Equal(t, names[1], "/elsewhere/b.mini")
	be.Equal(t, ArtifactName("src/prog.mini"), "prog.ll")
	be.Equal(t, ArtifactName("noext"), "noext.ll")
}
