package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/logger"
)

// PromptWatcher reloads a prompt store whenever a template file in its
// directory is created, written, removed or renamed.
type PromptWatcher struct {
	dir   string
	store driven.PromptStore
}

// NewPromptWatcher creates a watcher for the prompt files in dir.
func NewPromptWatcher(dir string, store driven.PromptStore) *PromptWatcher {
	return &PromptWatcher{dir: dir, store: store}
}

// Run watches until ctx is cancelled. It blocks and returns nil on
// cancellation.
func (w *PromptWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Debug("Watching prompts in %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isPromptChange(event) {
				logger.Info("Prompt %s changed (%s), reloading", filepath.Base(event.Name), event.Op)
				w.store.Reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher: %v", err)
		}
	}
}

func isPromptChange(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".txt") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
