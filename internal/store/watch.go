package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of writes SQLite makes per commit.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports writes to a database file made by other processes, such
// as the CLI changing tasks while the desktop app is open.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher watches the directory holding path. Journal and WAL files that
// share the database name count as writes to it.
func NewWatcher(path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{path: path, debounce: debounce, logger: logger, fsw: fsw}, nil
}

// Start calls onChange at most once per debounce window while changes keep
// arriving. It returns immediately; the watch ends when ctx is done.
func (w *Watcher) Start(ctx context.Context, onChange func()) {
	go w.loop(ctx, onChange)
}

func (w *Watcher) loop(ctx context.Context, onChange func()) {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	base := filepath.Base(w.path)
	pending := false
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = true
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", "err", err)

		case <-ticker.C:
			if pending {
				pending = false
				w.logger.Debug("store changed on disk", "path", w.path)
				onChange()
			}
		}
	}
}
