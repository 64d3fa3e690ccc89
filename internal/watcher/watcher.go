// Package watcher polls source trees for changes and reports them in
// debounced batches. It drives `proplint watch`.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Op is the kind of change an Event reports.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   Op
}

// DefaultPollInterval is the default polling interval for file change detection.
const DefaultPollInterval = 500 * time.Millisecond

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
}

// Watcher watches files and directories for changes using a polling approach.
type Watcher struct {
	roots        []string
	match        func(path string) bool
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(events []Event)

	mu       sync.Mutex
	pending  []Event
	timer    *time.Timer
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a watcher over roots (files or directories). match selects
// the files of interest; a nil match accepts every file.
func New(roots []string, match func(path string) bool, debounce time.Duration, onChange func(events []Event)) *Watcher {
	return &Watcher{
		roots:        roots,
		match:        match,
		debounce:     debounce,
		pollInterval: DefaultPollInterval,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
	}
}

// MatchExtensions returns a match function accepting the given extensions.
func MatchExtensions(exts ...string) func(string) bool {
	return func(path string) bool {
		return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
	}
}

// SetPollInterval sets the polling interval for file change detection.
func (w *Watcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// Watch polls for changes until ctx is done or Stop is called. Changes seen
// within the debounce window are delivered to onChange as one batch, sorted
// by path.
func (w *Watcher) Watch(ctx context.Context) error {
	snapshot := w.buildSnapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.cancelTimer()
			return ctx.Err()
		case <-w.stopCh:
			w.cancelTimer()
			return nil
		case <-ticker.C:
			next := w.buildSnapshot()
			if events := w.diff(snapshot, next); len(events) > 0 {
				w.schedule(events)
			}
			snapshot = next
		}
	}
}

func (w *Watcher) schedule(events []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, events...)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()
	if len(pending) > 0 && w.onChange != nil {
		w.onChange(pending)
	}
}

func (w *Watcher) cancelTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

type fileInfo struct {
	modTime time.Time
	size    int64
}

func (w *Watcher) buildSnapshot() map[string]fileInfo {
	snap := make(map[string]fileInfo)
	for _, root := range w.roots {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if w.match != nil && !w.match(path) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			snap[path] = fileInfo{modTime: info.ModTime(), size: info.Size()}
			return nil
		})
	}
	return snap
}

func (w *Watcher) diff(old, new map[string]fileInfo) []Event {
	var events []Event

	for path, newInfo := range new {
		if oldInfo, ok := old[path]; ok {
			if !newInfo.modTime.Equal(oldInfo.modTime) || newInfo.size != oldInfo.size {
				events = append(events, Event{Path: path, Op: OpWrite})
			}
		} else {
			events = append(events, Event{Path: path, Op: OpCreate})
		}
	}

	for path := range old {
		if _, ok := new[path]; !ok {
			events = append(events, Event{Path: path, Op: OpRemove})
		}
	}

	slices.SortFunc(events, func(a, b Event) int { return strings.Compare(a.Path, b.Path) })
	return events
}

// Paths returns the distinct paths of events that still exist (created or
// written), in order.
func Paths(events []Event) []string {
	var out []string
	for _, e := range events {
		if e.Op == OpRemove || slices.Contains(out, e.Path) {
			continue
		}
		out = append(out, e.Path)
	}
	return out
}

