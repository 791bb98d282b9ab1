package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		op   fsnotify.Op
		want ChangeKind
	}{
		{"src/app.js", fsnotify.Create, KindTree},
		{"src/app.js", fsnotify.Remove, KindTree},
		{"src/app.js", fsnotify.Rename, KindTree},
		{"src/app.js", fsnotify.Write, KindIgnore},
		{"package.json", fsnotify.Write, KindManifest},
		{"client/package.json", fsnotify.Write, KindManifest},
		{"go.mod", fsnotify.Write, KindManifest},
		{"Cargo.lock", fsnotify.Write, KindIgnore},
		{"poetry.lock", fsnotify.Write, KindIgnore},
		{"node_modules/react/index.js", fsnotify.Create, KindIgnore},
		{".git/HEAD", fsnotify.Write, KindIgnore},
		{"src/app.js", fsnotify.Chmod, KindIgnore},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path, tt.op), "%s %s", tt.path, tt.op)
	}
}

func TestDebouncer_BatchesBurst(t *testing.T) {
	var mu sync.Mutex
	var batches [][]Change
	d := NewDebouncer(30*time.Millisecond, 60*time.Millisecond, func(c []Change) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, c)
	})
	defer d.Stop()

	d.Add(Change{Path: "a", Kind: KindTree})
	d.Add(Change{Path: "b", Kind: KindTree})
	d.Add(Change{Path: "package.json", Kind: KindManifest})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, batches[0], 3)
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	flushed := make(chan struct{}, 1)
	d := NewDebouncer(20*time.Millisecond, 20*time.Millisecond, func([]Change) { flushed <- struct{}{} })

	d.Add(Change{Path: "a", Kind: KindTree})
	d.Stop()
	d.Add(Change{Path: "b", Kind: KindTree})

	select {
	case <-flushed:
		t.Fatal("flush after Stop")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestContentHashTracker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	tr := NewContentHashTracker()
	assert.True(t, tr.HasChanged(path))
	assert.False(t, tr.HasChanged(path))

	require.NoError(t, os.WriteFile(path, []byte(`{"dependencies":{}}`), 0o644))
	assert.True(t, tr.HasChanged(path))

	tr.Remove(path)
	assert.True(t, tr.HasChanged(path))
	assert.True(t, tr.HasChanged(filepath.Join(t.TempDir(), "missing")))
}

func TestNew_RequiresAnalyzer(t *testing.T) {
	_, err := New(Config{Root: t.TempDir()})
	assert.Error(t, err)
}

func TestWatcher_ReanalyzesOnTreeChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# app"), 0o644))

	fetcher := source.NewFSFetcher(afero.NewOsFs(), root)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := analyzer.New(fetcher, analyzer.Config{Logger: logger})

	var mu sync.Mutex
	var seen []int
	w, err := New(Config{
		Root:     root,
		Repo:     fetcher.RepoID(),
		Analyzer: engine,
		Delay:    20 * time.Millisecond,
		Logger:   logger,
		OnReport: func(prev, cur *analyzer.AnalysisReport) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, cur.FileStats.Total)
		},
	})
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM scratch"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 2 && seen[len(seen)-1] == 2
	}, 5*time.Second, 20*time.Millisecond)

	assert.True(t, w.Last().Structure.HasDocker)
}
