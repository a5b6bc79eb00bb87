package driver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kievzenit/snuplc/internal/ast"
)

const DefaultDebounce = 200 * time.Millisecond

// ParseHandler receives the outcome of every parse done by a Watcher.
type ParseHandler func(module *ast.Module, err error)

// Watcher re-parses a source file whenever it changes on disk.
type Watcher struct {
	env      *Environment
	path     string
	onParse  ParseHandler
	debounce time.Duration
}

func NewWatcher(env *Environment, path string, onParse ParseHandler) *Watcher {
	return &Watcher{
		env:      env,
		path:     filepath.Clean(path),
		onParse:  onParse,
		debounce: DefaultDebounce,
	}
}

func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run parses the file once and then again after every burst of changes. The
// directory is watched rather than the file, since editors often replace
// files by renaming. Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	logger := w.env.Logger.With(slog.String("file", w.path))
	logger.Info("watching for changes")

	w.parse()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("file changed", slog.String("op", event.Op.String()))
			pending = time.After(w.debounce)

		case <-pending:
			pending = nil
			w.parse()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) parse() {
	module, err := w.env.ParseFile(w.path)
	w.onParse(module, err)
}
