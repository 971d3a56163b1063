package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []string{dir}, Options{
			Debounce: 20 * time.Millisecond,
			Match:    ExtMatcher(".mini"),
		}, func(changed []string) { changes <- changed })
	}()

	// дать наблюдателю подписаться
	time.Sleep(100 * time.Millisecond)
	target := filepath.Join(dir, "a.mini")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(target, []byte("program {}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case changed := <-changes:
		if len(changed) != 1 || changed[0] != target {
			t.Fatalf("changed = %v, want [%s]", changed, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop")
	}
}

func TestRunFailsOnMissingDir(t *testing.T) {
	err := Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, Options{}, func([]string) {})
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestDirs(t *testing.T) {
	dir := t.TempDir()
	got := Dirs([]string{
		filepath.Join(dir, "b", "x.mini"),
		filepath.Join(dir, "a", "y.mini"),
		filepath.Join(dir, "a", "z.mini"),
	})
	want := []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Dirs = %v, want %v", got, want)
	}
}
