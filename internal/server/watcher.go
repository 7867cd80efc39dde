package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goplus/gqlls/gql"
)

// reloadFiles rereads the schema files at paths from disk. Files that no
// longer exist are removed from the project.
func (s *Server) reloadFiles(paths []string) {
	if len(paths) == 0 {
		return
	}
	for _, path := range paths {
		f, err := gql.ReadFile(path)
		switch {
		case err == nil:
			s.proj.PutFile(path, f)
		case errors.Is(err, fs.ErrNotExist):
			if err := s.proj.DeleteFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.logger.Errorw("failed to remove schema file", "path", path, "error", err)
			}
		default:
			s.logger.Errorw("failed to reload schema file", "path", path, "error", err)
		}
	}

	// Build eagerly so that schema errors show up in the log right away.
	if _, err := s.proj.Schema(); err != nil {
		s.logger.Errorw("schema reloaded with errors", "files", len(paths), "error", err)
		return
	}
	s.logger.Infow("schema reloaded", "files", len(paths))
}

// schemaWatcher batches file system events on schema files and reloads them
// once the writes have settled.
type schemaWatcher struct {
	server   *Server
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// WatchSchema reloads schema files when they change in one of dirs. It
// blocks until ctx is done.
func (s *Server) WatchSchema(ctx context.Context, dirs []string, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	s.logger.Infow("watching schema files", "dirs", dirs, "debounce", debounce)

	sw := &schemaWatcher{
		server:   s,
		watcher:  w,
		debounce: debounce,
		pending:  make(map[string]struct{}),
	}
	defer sw.stop()
	return sw.watchLoop(ctx)
}

func (sw *schemaWatcher) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			sw.handleEvent(event)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.server.logger.Errorw("schema watcher error", "error", err)
		}
	}
}

func (sw *schemaWatcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || !sw.server.opts.IsSchemaPath(event.Name) {
		return
	}
	sw.server.logger.Debugw("schema file event", "path", event.Name, "op", event.Op.String())

	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.pending[event.Name] = struct{}{}
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(sw.debounce, sw.flush)
}

// flush reloads the pending files.
func (sw *schemaWatcher) flush() {
	sw.mu.Lock()
	paths := make([]string, 0, len(sw.pending))
	for path := range sw.pending {
		paths = append(paths, path)
	}
	clear(sw.pending)
	sw.timer = nil
	sw.mu.Unlock()

	sw.server.reloadFiles(paths)
}

func (sw *schemaWatcher) stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.timer != nil {
		sw.timer.Stop()
		sw.timer = nil
	}
}
