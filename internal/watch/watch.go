/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com

Package watch re-analyzes a local checkout whenever its file tree or one of
its manifests changes.
*/
package watch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/codeintel/manifest"
	"github.com/josephgoksu/RepoWing/internal/source"
)

// ChangeKind says how a filesystem event can affect a report.
type ChangeKind string

const (
	KindTree     ChangeKind = "tree"     // path created, removed or renamed
	KindManifest ChangeKind = "manifest" // manifest content changed
	KindIgnore   ChangeKind = "ignore"   // cannot change the report
)

// Change is one relevant filesystem event.
type Change struct {
	Path      string
	Kind      ChangeKind
	Timestamp time.Time
}

// Analyzer is the engine operation the watcher re-runs.
type Analyzer interface {
	Analyze(ctx context.Context, repo source.RepoID) (*analyzer.AnalysisReport, error)
}

// ReportHandler receives every completed analysis; prev is nil the first time.
type ReportHandler func(prev, cur *analyzer.AnalysisReport)

// Config wires a Watcher.
type Config struct {
	Root          string
	Repo          source.RepoID
	Analyzer      Analyzer
	OnReport      ReportHandler
	Delay         time.Duration // quiet period for tree changes, default 500ms
	ManifestDelay time.Duration // quiet period for manifest edits, default 2s
	Logger        *slog.Logger
}

// Watcher drives re-analysis from fsnotify events.
type Watcher struct {
	cfg       Config
	logger    *slog.Logger
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	hashes    *ContentHashTracker

	runMu sync.Mutex
	last  *analyzer.AnalysisReport

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher; nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.Analyzer == nil {
		return nil, fmt.Errorf("watch: analyzer is required")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 500 * time.Millisecond
	}
	if cfg.ManifestDelay <= 0 {
		cfg.ManifestDelay = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:    cfg,
		logger: logger,
		fsw:    fsw,
		hashes: NewContentHashTracker(),
	}
	w.debouncer = NewDebouncer(cfg.Delay, cfg.ManifestDelay, w.handleBatch)
	return w, nil
}

// Start runs an initial analysis, then watches Root until Stop or ctx ends.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	if err := w.addWatchRecursive(w.cfg.Root); err != nil {
		return fmt.Errorf("add watch paths: %w", err)
	}
	w.logger.Info("watching", "root", w.cfg.Root)

	if err := w.analyze(); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop ends watching and waits for the event loop.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	_ = w.fsw.Close()
	w.debouncer.Stop()
	w.wg.Wait()
}

// Last returns the most recent report.
func (w *Watcher) Last() *analyzer.AnalysisReport {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	return w.last
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	rel, err := filepath.Rel(w.cfg.Root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	kind := Classify(rel, event.Op)
	if kind == KindIgnore {
		return
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addWatchRecursive(event.Name)
		}
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.hashes.Remove(event.Name)
	case kind == KindManifest && !w.hashes.HasChanged(event.Name):
		w.logger.Debug("skip unchanged manifest", "path", rel)
		return
	}

	w.logger.Debug("change", "op", event.Op.String(), "path", rel, "kind", kind)
	w.debouncer.Add(Change{Path: rel, Kind: kind, Timestamp: time.Now()})
}

// Classify maps an event to its effect on the report. Only the path set and
// manifest contents feed the analysis, so plain writes to other files are
// ignored.
func Classify(relPath string, op fsnotify.Op) ChangeKind {
	for _, part := range strings.Split(relPath, "/") {
		if source.IsSkippedDir(part) {
			return KindIgnore
		}
	}

	if op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		return KindTree
	}
	if op&fsnotify.Write != 0 && manifest.ScannerFor(relPath) != nil {
		return KindManifest
	}
	return KindIgnore
}

func (w *Watcher) handleBatch(changes []Change) {
	if len(changes) == 0 {
		return
	}
	w.logger.Info("re-analyzing", "changes", len(changes))
	if err := w.analyze(); err != nil {
		w.logger.Warn("re-analysis failed", "error", err)
	}
}

// analyze runs one analysis; runs never overlap.
func (w *Watcher) analyze() error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	report, err := w.cfg.Analyzer.Analyze(w.ctx, w.cfg.Repo)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", w.cfg.Root, err)
	}
	if w.cfg.OnReport != nil {
		w.cfg.OnReport(w.last, report)
	}
	w.last = report
	return nil
}

func (w *Watcher) addWatchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && source.IsSkippedDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// ContentHashTracker remembers file digests so a save without edits does not
// trigger a run.
type ContentHashTracker struct {
	hashes map[string]string
	mu     sync.Mutex
}

func NewContentHashTracker() *ContentHashTracker {
	return &ContentHashTracker{hashes: make(map[string]string)}
}

// HasChanged reports whether path differs from the last digest seen.
// Unreadable files count as changed.
func (t *ContentHashTracker) HasChanged(path string) bool {
	hash, err := computeHash(path)
	if err != nil {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	old, exists := t.hashes[path]
	t.hashes[path] = hash
	return !exists || hash != old
}

// Remove forgets path.
func (t *ContentHashTracker) Remove(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hashes, path)
}

func computeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
