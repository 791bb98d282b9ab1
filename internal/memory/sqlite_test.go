package memory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func sampleReport(repo string, score int) *analyzer.AnalysisReport {
	return &analyzer.AnalysisReport{
		Repo:        repo,
		Fingerprint: "fp-" + repo,
		ProjectType: analyzer.ProjectAPI,
		Quality:     analyzer.QualityReport{Score: score, Grade: analyzer.GradeFor(score)},
	}
}

func TestSaveAndGet(t *testing.T) {
	store := setupTestStore(t)

	rec, err := store.Save(sampleReport("octo/app", 75))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, analyzer.GradeB, rec.Grade)

	got, err := store.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "octo/app", got.Repo)
	assert.Equal(t, 75, got.Score)
	assert.Equal(t, analyzer.ProjectAPI, got.ProjectType)
	assert.False(t, got.Partial)
	require.NotNil(t, got.Report)
	assert.Equal(t, "fp-octo/app", got.Report.Fingerprint)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestGet_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSave_Nil(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Save(nil)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	store := setupTestStore(t)

	for i, repo := range []string{"octo/app", "octo/lib", "octo/app"} {
		_, err := store.Save(sampleReport(repo, 10*(i+1)))
		require.NoError(t, err)
	}

	all, err := store.List("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{30, 20, 10}, []int{all[0].Score, all[1].Score, all[2].Score})
	assert.Nil(t, all[0].Report)

	app, err := store.List("octo/app", 10)
	require.NoError(t, err)
	require.Len(t, app, 2)
	assert.Equal(t, 30, app[0].Score)

	limited, err := store.List("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := store.List("nobody/none", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPartialFlag(t *testing.T) {
	store := setupTestStore(t)

	r := sampleReport("octo/app", 0)
	r.Warnings = []string{analyzer.WarnTree}
	rec, err := store.Save(r)
	require.NoError(t, err)

	got, err := store.Get(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Partial)
}

func TestNewSQLiteStore_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	_, err = store.Save(sampleReport("octo/app", 50))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List("", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.FileExists(t, filepath.Join(dir, "history.db"))
}
