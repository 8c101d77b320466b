// Package watcher fires pipeline rebuilds when the extracted records or the curated table change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"JournalClub/internal/ports"
)

// DefaultDebounce is the quiet period required before a burst of events triggers a rebuild.
const DefaultDebounce = 500 * time.Millisecond

var (
	yearDirExpr  = regexp.MustCompile(`^20[0-9][0-9]$`)
	monthDirExpr = regexp.MustCompile(`^[01][0-9]$`)
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("watcher already started")

// FileTrigger watches <root>/<year>/<month>/<records file> and the curated table.
// The job runs once on start and then after every debounced burst of relevant events,
// always on the watcher goroutine, so two jobs never overlap.
type FileTrigger struct {
	root        string
	recordsFile string
	table       string
	debounce    time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

var _ ports.Trigger = (*FileTrigger)(nil)

// NewFileTrigger wires the watched locations.
func NewFileTrigger(root, recordsFile, table string, debounce time.Duration, logger *slog.Logger) *FileTrigger {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileTrigger{
		root:        filepath.Clean(root),
		recordsFile: recordsFile,
		table:       filepath.Clean(table),
		debounce:    debounce,
		logger:      logger,
	}
}

// Start registers the watches, runs job once and keeps running it on changes until ctx is done
// or Stop is called.
func (t *FileTrigger) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.watcher != nil {
		return ErrAlreadyStarted
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := t.addTree(w); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(t.table)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(t.table), err)
	}

	t.watcher = w
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.run(ctx, w, job, t.stopCh, t.doneCh)
	return nil
}

// Stop halts the watcher goroutine and waits for an in-flight job to finish.
func (t *FileTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	w, stopCh, doneCh := t.watcher, t.stopCh, t.doneCh
	t.watcher, t.stopCh, t.doneCh = nil, nil, nil
	t.mu.Unlock()

	if w == nil {
		return nil
	}

	close(stopCh)
	select {
	case <-doneCh:
	case <-ctx.Done():
		_ = w.Close()
		return ctx.Err()
	}
	return w.Close()
}

func (t *FileTrigger) run(ctx context.Context, w *fsnotify.Watcher, job func(time.Time), stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	job(time.Now())

	tick := t.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending bool
	var last time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if t.handle(w, event) {
				pending = true
				last = time.Now()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			t.logger.Warn("watch error", "error", err)
		case now := <-ticker.C:
			if pending && now.Sub(last) >= t.debounce {
				pending = false
				job(now)
			}
		}
	}
}

// handle reports whether the event concerns a pipeline input. New year and month
// directories are added to the watch list as they appear.
func (t *FileTrigger) handle(w *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	kind, ok := t.classify(event.Name)
	if !ok {
		return false
	}

	if event.Op&fsnotify.Create != 0 && (kind == kindYear || kind == kindMonth) {
		if err := t.addDir(w, event.Name, kind); err != nil {
			t.logger.Warn("watch new directory failed", "path", event.Name, "error", err)
		}
	}

	t.logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
	return true
}

type pathKind int

const (
	kindTable pathKind = iota
	kindYear
	kindMonth
	kindRecords
)

// classify maps a changed path to the input it belongs to.
func (t *FileTrigger) classify(path string) (pathKind, bool) {
	path = filepath.Clean(path)
	if path == t.table {
		return kindTable, true
	}

	rel, err := filepath.Rel(t.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return 0, false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	if !yearDirExpr.MatchString(parts[0]) {
		return 0, false
	}
	switch len(parts) {
	case 1:
		return kindYear, true
	case 2:
		return kindMonth, monthDirExpr.MatchString(parts[1])
	case 3:
		return kindRecords, monthDirExpr.MatchString(parts[1]) && parts[2] == t.recordsFile
	}
	return 0, false
}

func (t *FileTrigger) addTree(w *fsnotify.Watcher) error {
	if err := w.Add(t.root); err != nil {
		return fmt.Errorf("watch %s: %w", t.root, err)
	}

	years, err := os.ReadDir(t.root)
	if err != nil {
		return fmt.Errorf("list %s: %w", t.root, err)
	}
	for _, year := range years {
		if !year.IsDir() || !yearDirExpr.MatchString(year.Name()) {
			continue
		}
		if err := t.addDir(w, filepath.Join(t.root, year.Name()), kindYear); err != nil {
			return err
		}
	}
	return nil
}

func (t *FileTrigger) addDir(w *fsnotify.Watcher, dir string, kind pathKind) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if kind != kindYear {
		return nil
	}

	months, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	for _, month := range months {
		if !month.IsDir() || !monthDirExpr.MatchString(month.Name()) {
			continue
		}
		path := filepath.Join(dir, month.Name())
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return nil
}
