package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultGitHubBaseURL is the public GitHub REST endpoint.
const DefaultGitHubBaseURL = "https://api.github.com"

// GitHubConfig configures a GitHubFetcher.
type GitHubConfig struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// GitHubFetcher reads repository snapshots through the GitHub REST API.
type GitHubFetcher struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewGitHubFetcher creates a fetcher. Zero values in cfg fall back to defaults.
func NewGitHubFetcher(cfg GitHubConfig) *GitHubFetcher {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultGitHubBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &GitHubFetcher{
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

type githubRepo struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
	Homepage      string `json:"homepage"`
	Language      string `json:"language"`
}

type githubTree struct {
	Truncated bool `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	} `json:"tree"`
}

// FetchDetails returns repository metadata. A 404 means the repository does
// not resolve.
func (g *GitHubFetcher) FetchDetails(ctx context.Context, repo RepoID) (*RepoDetails, error) {
	var payload githubRepo
	endpoint := fmt.Sprintf("/repos/%s/%s", url.PathEscape(repo.Owner), url.PathEscape(repo.Name))
	if err := g.getJSON(ctx, endpoint, &payload); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, repo)
		}
		return nil, err
	}
	return &RepoDetails{
		FullName:      payload.FullName,
		DefaultBranch: payload.DefaultBranch,
		Description:   payload.Description,
		Homepage:      payload.Homepage,
		Language:      payload.Language,
	}, nil
}

// FetchTree returns the recursive tree at repo.Ref (HEAD when empty). When
// GitHub cuts the listing short the partial entries come with
// ErrTreeTruncated.
func (g *GitHubFetcher) FetchTree(ctx context.Context, repo RepoID) ([]RepoEntry, error) {
	ref := repo.Ref
	if ref == "" {
		ref = "HEAD"
	}

	var payload githubTree
	endpoint := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1",
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), url.PathEscape(ref))
	if err := g.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	entries := make([]RepoEntry, 0, len(payload.Tree))
	for _, item := range payload.Tree {
		kind := KindBlob
		if item.Type == "tree" {
			kind = KindTree
		} else if item.Type != "blob" {
			// submodules ("commit") carry no files of their own
			continue
		}
		entries = append(entries, RepoEntry{Path: item.Path, Kind: kind, Size: item.Size})
	}
	if payload.Truncated {
		return entries, fmt.Errorf("%w: %s has more entries than the API returns", ErrTreeTruncated, repo)
	}
	return entries, nil
}

// FetchFile returns the raw content of path.
func (g *GitHubFetcher) FetchFile(ctx context.Context, repo RepoID, path string) (*File, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s",
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), escapePath(path))
	if repo.Ref != "" {
		endpoint += "?ref=" + url.QueryEscape(repo.Ref)
	}

	resp, err := g.do(ctx, endpoint, "application/vnd.github.raw+json")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Path: path, Content: content}, nil
}

func (g *GitHubFetcher) getJSON(ctx context.Context, endpoint string, v any) error {
	resp, err := g.do(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// do issues a GET and maps 404 to ErrNotFound. The caller closes the body on
// success.
func (g *GitHubFetcher) do(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
