package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klytics/xlcompare/internal/scan"
)

func TestNewWatcherDefaults(t *testing.T) {
	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	if w.Config.DebounceMs != 500 {
		t.Errorf("DebounceMs = %d, want the 500ms default", w.Config.DebounceMs)
	}
}

func TestIsWorkbook(t *testing.T) {
	cases := map[string]bool{
		"/base/new/report.xlsx":   true,
		"/base/new/REPORT.XLSX":   true,
		"/base/new/~$report.xlsx": false,
		"/base/new/.~lock.xlsx":   false,
		"/base/new/report.csv":    false,
		"/base/new/report.xls":    false,
	}
	for path, want := range cases {
		if got := isWorkbook(path); got != want {
			t.Errorf("isWorkbook(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestProcessRecordsHandlerOutcome(t *testing.T) {
	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	var handled []string
	w.Handler = func(name string) error {
		handled = append(handled, name)
		return nil
	}

	w.process("/base/new/report.xlsx", "report.xlsx", "WRITE")

	if len(handled) != 1 || handled[0] != "report.xlsx" {
		t.Errorf("handler calls = %v", handled)
	}
	events := w.Events()
	if len(events) != 1 || events[0].Status != "processed" {
		t.Errorf("events = %+v", events)
	}
}

func TestProcessWithoutHandlerSkips(t *testing.T) {
	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	w.process("/base/prev/report.xlsx", "report.xlsx", "CREATE")

	events := w.Events()
	if len(events) != 1 || events[0].Status != "skipped" {
		t.Errorf("events = %+v", events)
	}
}

func TestDebouncedWriteTriggersOnce(t *testing.T) {
	base := t.TempDir()
	for _, sub := range []string{scan.NewDir, scan.PrevDir} {
		if err := os.MkdirAll(filepath.Join(base, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(Config{BaseDir: base, DebounceMs: 50})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	done := make(chan string, 1)
	w.Handler = func(name string) error {
		done <- name
		return nil
	}
	if err := w.watcher.Add(filepath.Join(base, scan.NewDir)); err != nil {
		t.Fatal(err)
	}
	go func() {
		for event := range w.watcher.Events {
			w.handleEvent(event)
		}
	}()

	path := filepath.Join(base, scan.NewDir, "report.xlsx")
	// Two quick writes should collapse into one re-compare.
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("two"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-done:
		if name != "report.xlsx" {
			t.Errorf("handled %q, want report.xlsx", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never triggered")
	}

	select {
	case name := <-done:
		t.Errorf("handler triggered twice (second: %q)", name)
	case <-time.After(200 * time.Millisecond):
	}
}
