package source

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedFetcher memoizes tree, file and details lookups of another Fetcher.
// Not-found results are cached too; transport failures are not.
type CachedFetcher struct {
	next    Fetcher
	trees   *expirable.LRU[string, []RepoEntry]
	files   *expirable.LRU[string, *File]
	details *expirable.LRU[string, *RepoDetails]
}

// NewCachedFetcher wraps next with LRU caches of the given size and TTL.
func NewCachedFetcher(next Fetcher, size int, ttl time.Duration) *CachedFetcher {
	if size <= 0 {
		size = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedFetcher{
		next:    next,
		trees:   expirable.NewLRU[string, []RepoEntry](size, nil, ttl),
		files:   expirable.NewLRU[string, *File](size*8, nil, ttl),
		details: expirable.NewLRU[string, *RepoDetails](size, nil, ttl),
	}
}

// FetchTree implements Fetcher.
func (c *CachedFetcher) FetchTree(ctx context.Context, repo RepoID) ([]RepoEntry, error) {
	key := repo.String()
	if entries, ok := c.trees.Get(key); ok {
		if entries == nil {
			return nil, ErrNotFound
		}
		return entries, nil
	}

	entries, err := c.next.FetchTree(ctx, repo)
	switch {
	case errors.Is(err, ErrNotFound):
		c.trees.Add(key, nil)
		return nil, err
	case err != nil:
		// truncated listings are passed through uncached
		return entries, err
	}
	if entries == nil {
		entries = []RepoEntry{}
	}
	c.trees.Add(key, entries)
	return entries, nil
}

// FetchFile implements Fetcher.
func (c *CachedFetcher) FetchFile(ctx context.Context, repo RepoID, path string) (*File, error) {
	key := repo.String() + "|" + path
	if file, ok := c.files.Get(key); ok {
		if file == nil {
			return nil, ErrNotFound
		}
		return file, nil
	}

	file, err := c.next.FetchFile(ctx, repo, path)
	switch {
	case errors.Is(err, ErrNotFound):
		c.files.Add(key, nil)
		return nil, err
	case err != nil:
		return nil, err
	}
	c.files.Add(key, file)
	return file, nil
}

// FetchDetails implements DetailsFetcher when the wrapped fetcher does.
func (c *CachedFetcher) FetchDetails(ctx context.Context, repo RepoID) (*RepoDetails, error) {
	df, ok := c.next.(DetailsFetcher)
	if !ok {
		return nil, ErrNotFound
	}

	key := repo.String()
	if d, ok := c.details.Get(key); ok {
		return d, nil
	}
	d, err := df.FetchDetails(ctx, repo)
	if err != nil {
		return nil, err
	}
	c.details.Add(key, d)
	return d, nil
}

// Purge drops every cached entry.
func (c *CachedFetcher) Purge() {
	c.trees.Purge()
	c.files.Purge()
	c.details.Purge()
}
