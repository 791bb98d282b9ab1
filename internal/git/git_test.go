package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/RepoWing/internal/source"
)

// MockCommander returns configured responses keyed by the full command line.
// Unknown commands fail.
type MockCommander struct {
	Calls     []string
	Responses map[string]MockResponse
}

// MockResponse holds the output and error for a mocked command.
type MockResponse struct {
	Output string
	Error  error
}

func NewMockCommander() *MockCommander {
	return &MockCommander{Responses: make(map[string]MockResponse)}
}

func (m *MockCommander) RunInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	m.Calls = append(m.Calls, key)
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Error
	}
	return "", errors.New("exit status 128")
}

func (m *MockCommander) SetResponse(cmd, output string, err error) {
	m.Responses[cmd] = MockResponse{Output: output, Error: err}
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()

	t.Run("github remote with origin HEAD", func(t *testing.T) {
		m := NewMockCommander()
		m.SetResponse("git rev-parse --is-inside-work-tree", "true", nil)
		m.SetResponse("git symbolic-ref refs/remotes/origin/HEAD", "refs/remotes/origin/main", nil)
		m.SetResponse("git remote get-url origin", "git@github.com:vercel/next.js.git", nil)

		details, err := NewClientWithCommander("/repo", m).Describe(ctx)
		require.NoError(t, err)
		assert.Equal(t, &source.RepoDetails{
			FullName:      "vercel/next.js",
			DefaultBranch: "main",
			Homepage:      "https://github.com/vercel/next.js",
		}, details)
	})

	t.Run("no remote falls back to local branches", func(t *testing.T) {
		m := NewMockCommander()
		m.SetResponse("git rev-parse --is-inside-work-tree", "true", nil)
		m.SetResponse("git rev-parse --verify --quiet master", "abc123", nil)

		details, err := NewClientWithCommander("/repo", m).Describe(ctx)
		require.NoError(t, err)
		assert.Equal(t, "master", details.DefaultBranch)
		assert.Empty(t, details.FullName)
	})

	t.Run("detached head without main or master", func(t *testing.T) {
		m := NewMockCommander()
		m.SetResponse("git rev-parse --is-inside-work-tree", "true", nil)
		m.SetResponse("git rev-parse --abbrev-ref HEAD", "HEAD", nil)

		details, err := NewClientWithCommander("/repo", m).Describe(ctx)
		require.NoError(t, err)
		assert.Empty(t, details.DefaultBranch)
	})

	t.Run("not a work tree", func(t *testing.T) {
		_, err := NewClientWithCommander("/tmp", NewMockCommander()).Describe(ctx)
		assert.ErrorIs(t, err, ErrNotGitRepository)
	})
}

func TestGitHubRepo(t *testing.T) {
	tests := []struct {
		remote string
		want   string
		ok     bool
	}{
		{"git@github.com:owner/app.git", "owner/app", true},
		{"https://github.com/owner/app.git", "owner/app", true},
		{"https://github.com/owner/app", "owner/app", true},
		{"ssh://git@github.com/owner/app.git", "owner/app", true},
		{"https://gitlab.com/owner/app.git", "", false},
		{"git@github.com:owner", "", false},
	}
	for _, tt := range tests {
		repo, ok := GitHubRepo(tt.remote)
		if ok != tt.ok {
			t.Errorf("GitHubRepo(%q) ok = %v, want %v", tt.remote, ok, tt.ok)
			continue
		}
		if ok && repo.String() != tt.want {
			t.Errorf("GitHubRepo(%q) = %s, want %s", tt.remote, repo, tt.want)
		}
	}
}
