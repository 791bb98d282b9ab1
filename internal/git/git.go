// Package git reads checkout metadata through the git CLI. It shells out
// instead of using go-git so it sees the same config the user's git does.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/josephgoksu/RepoWing/internal/source"
)

// ErrNotGitRepository is returned when the directory is not a work tree.
var ErrNotGitRepository = errors.New("not a git repository")

// Commander is an interface for executing commands.
// This allows mocking in tests.
type Commander interface {
	RunInDir(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ShellCommander executes real shell commands.
type ShellCommander struct{}

// RunInDir executes a command in the specified directory.
func (ShellCommander) RunInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client runs read-only git queries against one work tree.
type Client struct {
	commander Commander
	workDir   string
}

// NewClient creates a client for workDir using the git binary.
func NewClient(workDir string) *Client {
	return NewClientWithCommander(workDir, ShellCommander{})
}

// NewClientWithCommander creates a client with a custom commander (for testing).
func NewClientWithCommander(workDir string, commander Commander) *Client {
	return &Client{commander: commander, workDir: workDir}
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	return c.commander.RunInDir(ctx, c.workDir, "git", args...)
}

// IsRepository reports whether workDir is inside a git work tree.
func (c *Client) IsRepository(ctx context.Context) bool {
	out, err := c.git(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the checked-out branch, or "HEAD" when detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get current branch: %w", err)
	}
	return out, nil
}

// DefaultBranch returns origin's HEAD branch, falling back to main or master.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	// output is like "refs/remotes/origin/main"
	if out, err := c.git(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil && out != "" {
		return out[strings.LastIndex(out, "/")+1:], nil
	}
	for _, branch := range []string{"main", "master"} {
		if _, err := c.git(ctx, "rev-parse", "--verify", "--quiet", branch); err == nil {
			return branch, nil
		}
	}
	return "", fmt.Errorf("could not determine default branch")
}

// RemoteURL returns the URL of the specified remote.
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := c.git(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("get remote URL: %w", err)
	}
	return out, nil
}

// Describe reports what git knows about the checkout. Only a missing work
// tree is an error; absent branches or remotes leave fields empty.
func (c *Client) Describe(ctx context.Context) (*source.RepoDetails, error) {
	if !c.IsRepository(ctx) {
		return nil, fmt.Errorf("%w: %s", ErrNotGitRepository, c.workDir)
	}

	details := &source.RepoDetails{}
	if branch, err := c.DefaultBranch(ctx); err == nil {
		details.DefaultBranch = branch
	} else if branch, err := c.CurrentBranch(ctx); err == nil && branch != "HEAD" {
		details.DefaultBranch = branch
	}
	if remote, err := c.RemoteURL(ctx, "origin"); err == nil {
		if repo, ok := GitHubRepo(remote); ok {
			details.FullName = repo.String()
			details.Homepage = "https://github.com/" + repo.String()
		}
	}
	return details, nil
}

// GitHubRepo extracts owner/name from a GitHub remote in HTTPS or SSH form.
func GitHubRepo(remote string) (source.RepoID, bool) {
	remote = strings.TrimSpace(remote)
	for _, prefix := range []string{"git@github.com:", "ssh://git@github.com/", "https://github.com/", "http://github.com/"} {
		if strings.HasPrefix(remote, prefix) {
			repo, err := source.ParseRepoID(strings.TrimPrefix(remote, prefix))
			if err != nil || repo.Ref != "" {
				return source.RepoID{}, false
			}
			return repo, true
		}
	}
	return source.RepoID{}, false
}
