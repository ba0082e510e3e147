// Package watch re-runs workbook comparisons when their inputs change.
// It monitors the new/ and prev/ folders under a base directory and
// triggers the configured handler per modified workbook, debounced.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/xlcompare/internal/scan"
)

// Config holds the watcher configuration.
type Config struct {
	// BaseDir contains the new/, prev/, and template/ folders.
	BaseDir string
	// DebounceMs is how long to wait after the last write before
	// re-comparing, in milliseconds.
	DebounceMs int
}

// Event records one processed file change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Workbook  string    `json:"workbook"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Handler re-runs the comparison for one workbook name (the filename
// shared by the new/prev/template copies).
type Handler func(workbook string) error

// Watcher monitors the input folders and triggers re-comparisons.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler

	mu       sync.Mutex
	events   []Event
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a Watcher over baseDir's input folders.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 500
	}

	return &Watcher{
		Config:   cfg,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, sub := range []string{scan.NewDir, scan.PrevDir} {
		dir := filepath.Join(w.Config.BaseDir, sub)
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	w.Logger.Printf("Watching %s and %s under %s",
		scan.NewDir, scan.PrevDir, w.Config.BaseDir)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !isWorkbook(event.Name) {
		return
	}

	name := filepath.Base(event.Name)

	// Debounce per workbook name, so a matched new/prev pair being
	// refreshed together triggers a single re-compare.
	w.mu.Lock()
	if timer, ok := w.debounce[name]; ok {
		timer.Stop()
	}
	op := event.Op.String()
	w.debounce[name] = time.AfterFunc(time.Duration(w.Config.DebounceMs)*time.Millisecond, func() {
		w.process(event.Name, name, op)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(path, name, operation string) {
	evt := Event{
		Time:      time.Now(),
		Path:      path,
		Workbook:  name,
		Operation: operation,
	}

	if w.Handler == nil {
		evt.Status = "skipped"
	} else if err := w.Handler(name); err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.Logger.Printf("Error re-comparing %s: %v", name, err)
	} else {
		evt.Status = "processed"
		w.Logger.Printf("Re-compared %s", name)
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}

// isWorkbook filters for .xlsx files, excluding Office lock files.
func isWorkbook(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	return strings.ToLower(filepath.Ext(base)) == ".xlsx"
}
