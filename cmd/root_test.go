package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	mcppresenter "github.com/josephgoksu/RepoWing/internal/mcp"
	"github.com/josephgoksu/RepoWing/internal/source"
)

// isolate keeps config lookups and history away from the real home.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Chdir(home)
	viper.Reset()
	appConfig = nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}

func TestRootCmd(t *testing.T) {
	isolate(t)

	output, err := execute(t, "--help")
	assert.NoError(t, err)

	assert.Contains(t, output, "RepoWing - repository analysis")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, name := range []string{"analyze", "compare", "type", "history", "serve", "mcp", "watch", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "repowing "+GetVersion()+"\n", output)
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestAnalyzeCmd_LocalDirJSON(t *testing.T) {
	isolate(t)
	repo := t.TempDir()
	writeFiles(t, repo, map[string]string{
		"package.json":           `{"dependencies":{"express":"^4.18.0"}}`,
		"src/routes/users.js":    "module.exports = {}",
		"src/controllers/app.js": "module.exports = {}",
		"Dockerfile":             "FROM node:20",
	})

	output, err := execute(t, "analyze", repo, "--json")
	require.NoError(t, err)

	var report analyzer.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, "local/"+filepath.Base(repo), report.Repo)
	assert.True(t, report.Structure.HasDocker)
	assert.Contains(t, report.TechStack.Backend, "express")
}

func TestAnalyzeCmd_InvalidTarget(t *testing.T) {
	isolate(t)

	_, err := execute(t, "analyze", "not-a-repo", "--json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrInvalidRepoID))
	assert.Contains(t, friendlyMessage(err), "owner/name")
}

func TestCompareCmd_RequiresPhases(t *testing.T) {
	isolate(t)
	comparePhasesFile = ""

	_, err := execute(t, "compare", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--phases")
}

func TestHistoryCmd_EmptyJSON(t *testing.T) {
	isolate(t)

	output, err := execute(t, "history", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", output)
}

func TestResolveTarget(t *testing.T) {
	isolate(t)
	cfg, err := currentConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	fetcher, repo, err := resolveTarget(cfg, dir)
	require.NoError(t, err)
	assert.IsType(t, &source.FSFetcher{}, fetcher)
	assert.Equal(t, "local", repo.Owner)

	fetcher, repo, err = resolveTarget(cfg, "vercel/next.js@canary")
	require.NoError(t, err)
	assert.IsType(t, &source.CachedFetcher{}, fetcher)
	assert.Equal(t, source.RepoID{Owner: "vercel", Name: "next.js", Ref: "canary"}, repo)

	_, _, err = resolveTarget(cfg, "just-a-name")
	assert.ErrorIs(t, err, source.ErrInvalidRepoID)
}

func TestToolResponse(t *testing.T) {
	res, err := toolResponse(&mcppresenter.ToolResult{Content: "# ok"}, nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = toolResponse(&mcppresenter.ToolResult{Error: "bad repo"}, nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = toolResponse(nil, errors.New("boom"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
