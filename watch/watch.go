// Package watch regenerates hooks when Go sources change.
package watch

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/logger"
)

// RegenerateFunc regenerates the packages in dirs. It is never called
// concurrently with itself.
type RegenerateFunc func(ctx context.Context, dirs []string) error

// Options configure a Watcher.
type Options struct {
	// Debounce is how long the watcher waits for changes to settle.
	Debounce time.Duration
	// Tests makes _test.go changes trigger regeneration.
	Tests bool
}

// Watcher watches directory trees and calls a RegenerateFunc with the
// directories that changed.
type Watcher struct {
	watcher    *fsnotify.Watcher
	regenerate RegenerateFunc
	opts       Options
	logger     *zap.SugaredLogger

	mu sync.Mutex
	// pending holds the files changed since the last regeneration
	pending map[string]bool
	timer   *time.Timer

	// run serializes regenerations
	run sync.Mutex
}

// New creates a watcher for the trees rooted at roots.
func New(roots []string, regenerate RegenerateFunc, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:    fw,
		regenerate: regenerate,
		opts:       opts,
		logger:     logger.ComponentLogger("hookgen.watch"),
		pending:    make(map[string]bool),
	}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches root and every directory below it, skipping hidden,
// vendor and testdata directories like the go command does.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		w.logger.Debugw("watching", logger.FieldFile, path)
		return nil
	})
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if !skipDir(filepath.Base(event.Name)) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warnw("failed to watch new directory", logger.FieldFile, event.Name, logger.FieldError, err)
				}
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if w.ignored(event.Name) {
		return
	}

	w.logger.Debugw("change", logger.FieldFile, event.Name, "op", event.Op.String())
	w.schedule(ctx, event.Name)
}

// ignored reports whether a change to path cannot affect declarations.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".go") || strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "_test.go") && !w.opts.Tests
}

// generated reports whether the file at path carries a generated-code
// header. Files that are gone or do not parse yet count as hand-written.
func generated(path string) bool {
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(f)
}

// schedule debounces changes: the timer restarts on every change and the
// files collected meanwhile are regenerated together.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() {
		w.flush(ctx)
	})
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	files := w.pending
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	// Generated files are checked once the burst settled, so their header
	// is complete. They never trigger a regeneration of their own.
	seen := make(map[string]bool)
	var dirs []string
	for path := range files {
		dir := filepath.Dir(path)
		if seen[dir] || generated(path) {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	if len(dirs) == 0 || ctx.Err() != nil {
		return
	}
	sort.Strings(dirs)

	w.run.Lock()
	defer w.run.Unlock()

	log := logger.ChildLogger(w.logger, logger.FieldCount, len(dirs))
	start := time.Now()
	if err := w.regenerate(ctx, dirs); err != nil {
		log.Errorw("regeneration failed", logger.FieldError, err)
		return
	}
	log.Infow("regenerated", logger.FieldDurationMS, time.Since(start).Milliseconds())
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
