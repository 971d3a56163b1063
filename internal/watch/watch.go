// Package watch rebuilds on source changes using OS-native file notifications.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Options configure Run.
type Options struct {
	// Debounce groups bursts of events (editors often write a file twice).
	Debounce time.Duration
	// Match selects the paths that trigger a rebuild; nil accepts all.
	Match func(path string) bool
	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// Dirs returns the sorted, de-duplicated parent directories of files.
// fsnotify watches directories so that editors replacing a file by rename
// are still seen.
func Dirs(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	var out []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	sort.Strings(out)
	return out
}

// ExtMatcher accepts files with the given extension.
func ExtMatcher(ext string) func(string) bool {
	return func(path string) bool { return filepath.Ext(path) == ext }
}

// Run watches dirs until ctx is done, calling onChange with the sorted list
// of matching paths that changed since the previous call.
func Run(ctx context.Context, dirs []string, opts Options, onChange func(changed []string)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = w.Close() }()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if opts.Match != nil && !opts.Match(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(changed)
		}
	}
}
