package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/store"
)

// DefaultDebounce is how long the watcher waits after the last write before
// re-analyzing.
const DefaultDebounce = 200 * time.Millisecond

// Event is delivered once per analysis of the watched file.
type Event struct {
	Path       string
	Report     analyzer.Report
	AnalysisID int64 // 0 when no store is configured
	Time       time.Time
}

// Watcher re-analyzes a single file whenever it is written.
type Watcher struct {
	path     string
	store    *store.Store
	debounce time.Duration
	onReport func(Event)

	fsw      *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Watcher for path. st may be nil, in which case reports are
// only passed to the OnReport callback.
func New(path string, st *store.Store) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return &Watcher{
		path:     abs,
		store:    st,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// SetDebounce changes the quiet period before re-analysis. Must be called
// before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnReport registers the callback that receives every analysis. Must be
// called before Start.
func (w *Watcher) OnReport(fn func(Event)) {
	w.onReport = fn
}

// Start analyzes the file once and then begins watching it for changes.
// The initial analysis must succeed; later read failures are logged and
// skipped, since editors briefly remove files while saving.
func (w *Watcher) Start() error {
	if _, err := w.AnalyzeOnce(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()

	return nil
}

// run handles fsnotify events until Stop is called.
func (w *Watcher) run() {
	defer w.wg.Done()

	// A fresh timer channel per event; superseded timers expire unobserved.
	var pending <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: fsnotify error: %v\n", err)

		case <-pending:
			pending = nil
			if _, err := w.AnalyzeOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "watcher: re-analysis failed: %v\n", err)
			}

		case <-w.stopCh:
			return
		}
	}
}

// AnalyzeOnce reads and analyzes the file, saves the report if a store is
// configured, and delivers it to the OnReport callback.
func (w *Watcher) AnalyzeOnce() (Event, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Event{}, fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	ev := Event{
		Path:   w.path,
		Report: analyzer.New(string(data)).Analyze(),
		Time:   time.Now(),
	}

	if w.store != nil {
		id, err := w.store.SaveAnalysisAt(w.path, ev.Report, ev.Time)
		if err != nil {
			return Event{}, fmt.Errorf("failed to save analysis: %w", err)
		}
		ev.AnalysisID = id
	}

	if w.onReport != nil {
		w.onReport(ev)
	}

	return ev, nil
}

// Stop halts the watcher and waits for the event loop to exit. It is safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.fsw != nil {
			err = w.fsw.Close()
		}
		w.wg.Wait()
	})
	return err
}
