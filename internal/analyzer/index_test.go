package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/RepoWing/internal/source"
)

func TestBuildIndex(t *testing.T) {
	entries := []source.RepoEntry{
		{Path: "src", Kind: source.KindTree},
		{Path: "src/App.TSX", Kind: source.KindBlob},
		{Path: "src/index.ts", Kind: source.KindBlob},
		{Path: ".gitignore", Kind: source.KindBlob},
		{Path: "Makefile", Kind: source.KindBlob},
		{Path: "weird.", Kind: source.KindBlob},
		{Path: "docs/guide/README.md", Kind: source.KindBlob},
		{Path: "src/index.ts", Kind: source.KindBlob},
	}

	ix := BuildIndex(entries)

	assert.Equal(t, []string{
		".gitignore",
		"docs/guide/readme.md",
		"makefile",
		"src",
		"src/app.tsx",
		"src/index.ts",
		"weird.",
	}, ix.Paths)
	assert.Equal(t, 6, ix.FileStats.Total)
	assert.Equal(t, map[string]int{"tsx": 1, "ts": 1, "gitignore": 1, "md": 1}, ix.FileStats.ByExtension)
	assert.Equal(t, map[string]int{"src": 2, "docs": 1}, ix.FileStats.ByFolder)

	assert.True(t, ix.HasTopLevel("src"))
	assert.True(t, ix.HasTopLevel("docs"))
	assert.False(t, ix.HasTopLevel("makefile"))
}

func TestBuildIndex_Empty(t *testing.T) {
	ix := BuildIndex(nil)
	assert.Empty(t, ix.Paths)
	assert.Equal(t, 0, ix.FileStats.Total)
	assert.Empty(t, ix.FileStats.ByExtension)
	assert.Empty(t, ix.FileStats.ByFolder)
}

func TestBuildIndex_OrderIndependent(t *testing.T) {
	a := indexOf("b/x.go", "a/y.go", "README.md")
	b := indexOf("README.md", "a/y.go", "b/x.go")
	assert.Equal(t, a.Paths, b.Paths)
	assert.Equal(t, a.FileStats, b.FileStats)
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/App.JSX", "jsx"},
		{"archive.tar.gz", "gz"},
		{".env", "env"},
		{"Dockerfile", ""},
		{"notes.", ""},
		{"v1.2/Makefile", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionOf(tt.path), tt.path)
	}
}

func TestIndexMatching(t *testing.T) {
	ix := indexOf("a/auth.js", "b/auth.js", "c/login.js", "d/other.js")
	assert.Equal(t, []string{"a/auth.js", "b/auth.js"}, ix.Matching([]string{"auth", "login"}, 2))
	assert.Len(t, ix.Matching([]string{"auth", "login"}, 0), 3)
	assert.Empty(t, ix.Matching([]string{"payment"}, 5))
}

func TestIndexMatching_SkipsDirectories(t *testing.T) {
	ix := BuildIndex([]source.RepoEntry{
		{Path: "server", Kind: source.KindTree},
		{Path: "server/auth", Kind: source.KindTree},
		{Path: "server/auth/login.js", Kind: source.KindBlob},
		{Path: "docker", Kind: source.KindTree},
		{Path: "docker/Dockerfile", Kind: source.KindBlob},
	})

	assert.Equal(t, []string{"server/auth/login.js"}, ix.Matching([]string{"auth"}, 0))
	assert.Contains(t, ix.Paths, "server/auth")
	assert.Equal(t, map[string]bool{"docker": true}, ix.Dirs("dockerfile"))
}

func TestRules(t *testing.T) {
	rules := []Rule[string]{
		{Keywords: []string{"react"}, Result: "frontend"},
		{Keywords: []string{"testing-library"}, Result: "testing"},
	}

	got, ok := FirstMatch(rules, "@Testing-Library/React")
	assert.True(t, ok)
	assert.Equal(t, "frontend", got)

	_, ok = FirstMatch(rules, "lodash")
	assert.False(t, ok)

	assert.Equal(t, []string{"testing"}, AllMatches(rules, []string{"@testing-library/dom"}))
	assert.True(t, AnyContains([]string{"x", "reactive"}, []string{"react"}))
	assert.False(t, AnyContains(nil, []string{"react"}))
}

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	assert.Equal(t, []string{"b", "a"}, s.Items())
	assert.True(t, s.Has("a"))
	assert.Equal(t, 2, s.Len())
}
