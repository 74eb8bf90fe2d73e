// Package watch regenerates a layout whenever its config file changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/galleryvr/internal/config"
	"github.com/san-kum/galleryvr/internal/layout"
)

const DefaultDebounce = 200 * time.Millisecond

// Result is delivered after every settled change to the watched file.
type Result struct {
	Config     *config.Config
	Request    layout.Request
	Placements []layout.Placement
	Err        error
}

// Watcher follows a single layout config file. It watches the parent
// directory so editors that save by rename are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func(Result)
	logger   *log.Logger

	debounce time.Duration
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func New(path string, onChange func(Result), logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		onChange: onChange,
		logger:   logger,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes how long the file must be quiet before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Start loads the file once, then watches it in the background.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		if cerr := w.watcher.Close(); cerr != nil {
			w.logger.Error("close watcher", "err", cerr)
		}
		return err
	}
	w.logger.Info("watching", "path", w.path)

	w.onChange(w.Reload())
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("close watcher", "err", err)
	}
}

// Done is closed once the watch loop exits.
func (w *Watcher) Done() <-chan struct{} { return w.doneCh }

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)
		case now := <-ticker.C:
			if w.settled(now) {
				w.onChange(w.Reload())
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.relevant(ev) {
		return
	}
	w.logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// relevant reports whether ev touches the watched file with a content change.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// settled reports whether a pending change has been quiet for the debounce
// window at now, and clears it if so.
func (w *Watcher) settled(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

// Reload reads the file and computes its layout.
func (w *Watcher) Reload() Result {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("reload failed", "path", w.path, "err", err)
		return Result{Err: err}
	}
	req := cfg.Request()
	e := cfg.Engine()
	ps := e.Generate(req)
	w.logger.Debug("reloaded", "archetype", req.Archetype, "count", len(ps))
	return Result{
		Config:     cfg,
		Request:    layout.Sanitize(req, e.Defaults()),
		Placements: ps,
	}
}
