package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"rulecanvas/internal/rulefile"
)

// RuleWatcher imports rule files dropped into an inbox directory. Each file
// is imported once per distinct (size, modtime) fingerprint, so the burst of
// write events produced by a single save yields a single saved rule. A file
// that changes later updates the rule it was first imported as.
type RuleWatcher struct {
	rules  *RuleService
	dir    string
	logger *zap.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
	imports sync.WaitGroup

	mu      sync.Mutex
	seen    map[string]string // path → fingerprint of the last imported version
	running map[string]bool   // paths with an import goroutine
	dirty   map[string]bool   // paths written to since their import started
}

// NewRuleWatcher creates a watcher for dir. Call Start to begin watching.
func NewRuleWatcher(rules *RuleService, dir string, logger *zap.Logger) *RuleWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleWatcher{
		rules:  rules,
		dir:    dir,
		logger: logger.Named("watcher"),
		seen:    map[string]string{},
		running: map[string]bool{},
		dirty:   map[string]bool{},
	}
}

// Start creates the inbox directory if needed and begins watching it. Events
// are handled on a background goroutine until ctx is done or Close is called.
func (w *RuleWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = watcher
	w.done = make(chan struct{})

	w.logger.Info("watching inbox", zap.String("dir", w.dir))
	go w.loop(ctx)
	return nil
}

// Close stops watching and waits for the event loop and any running
// imports to finish.
func (w *RuleWatcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	w.imports.Wait()
	return err
}

func (w *RuleWatcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !rulefile.Supported(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// schedule starts an import of path, or flags it for the import already running.
func (w *RuleWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty[path] = true
	if w.running[path] {
		return
	}
	w.running[path] = true
	w.imports.Add(1)
	go w.run(ctx, path)
}

// run imports path until no write arrived during the last attempt.
func (w *RuleWatcher) run(ctx context.Context, path string) {
	defer w.imports.Done()
	for {
		w.mu.Lock()
		if !w.dirty[path] || ctx.Err() != nil {
			delete(w.dirty, path)
			delete(w.running, path)
			w.mu.Unlock()
			return
		}
		delete(w.dirty, path)
		w.mu.Unlock()

		w.handle(ctx, path)
	}
}

func (w *RuleWatcher) handle(ctx context.Context, path string) {
	var failed string
	for ctx.Err() == nil {
		fp, ok := fingerprint(path)
		if !ok || fp == failed {
			return
		}
		w.mu.Lock()
		done := w.seen[path] == fp
		w.mu.Unlock()
		if done {
			return
		}

		r, err := w.rules.SyncRuleFile(ctx, path)
		if err != nil {
			// a partially written file fails to decode; retry only once it changes
			w.logger.Warn("import failed", zap.String("file", filepath.Base(path)), zap.Error(err))
			failed = fp
			continue
		}

		w.mu.Lock()
		w.seen[path] = fp
		w.mu.Unlock()
		w.logger.Info("imported rule file", zap.String("file", filepath.Base(path)), zap.String("rule", r.ID))
	}
}

// fingerprint identifies one version of a file by size and modification time.
func fingerprint(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), true
}
