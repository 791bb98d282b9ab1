/*
Package source defines the read-only contract the analyzer uses to reach a
repository snapshot, plus the fetchers that implement it (GitHub REST, a local
checkout through afero, and an LRU caching decorator).
*/
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a file or path is absent from the snapshot.
	// It is an expected condition, never a failure.
	ErrNotFound = errors.New("not found")

	// ErrRepoNotFound is returned when the repository itself does not resolve.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrInvalidRepoID is returned when a repository reference cannot be parsed.
	ErrInvalidRepoID = errors.New("invalid repository id")

	// ErrTreeTruncated accompanies a partial but usable tree listing.
	ErrTreeTruncated = errors.New("tree listing truncated")
)

// EntryKind distinguishes files from directories in a tree listing.
type EntryKind string

const (
	KindBlob EntryKind = "blob"
	KindTree EntryKind = "tree"
)

// RepoEntry is one file or directory of a repository snapshot.
type RepoEntry struct {
	Path string    `json:"path"`
	Kind EntryKind `json:"kind"`
	Size int64     `json:"size"`
}

// IsBlob reports whether the entry is a file.
func (e RepoEntry) IsBlob() bool {
	return e.Kind == KindBlob
}

// RepoID identifies a repository and an optional ref.
type RepoID struct {
	Owner string `json:"owner" validate:"required,excludesall=/ "`
	Name  string `json:"name" validate:"required,excludesall=/ "`
	Ref   string `json:"ref,omitempty"`
}

// ParseRepoID parses "owner/name" or "owner/name@ref".
func ParseRepoID(s string) (RepoID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://github.com/")
	s = strings.TrimSuffix(s, ".git")

	var ref string
	if idx := strings.LastIndex(s, "@"); idx != -1 {
		ref = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoID{}, fmt.Errorf("%w: %q (want owner/name[@ref])", ErrInvalidRepoID, s)
	}
	return RepoID{Owner: parts[0], Name: parts[1], Ref: ref}, nil
}

// String returns "owner/name" or "owner/name@ref".
func (r RepoID) String() string {
	if r.Ref != "" {
		return r.Owner + "/" + r.Name + "@" + r.Ref
	}
	return r.Owner + "/" + r.Name
}

// File is the content of a fetched file.
type File struct {
	Path    string
	Content []byte
}

// RepoDetails is repository metadata that some fetchers can provide.
type RepoDetails struct {
	FullName      string `json:"fullName"`
	DefaultBranch string `json:"defaultBranch,omitempty"`
	Description   string `json:"description,omitempty"`
	Homepage      string `json:"homepage,omitempty"`
	Language      string `json:"language,omitempty"`
}

// Fetcher is the capability handed to the analyzer for one invocation.
//
// FetchTree returns the flat recursive listing; ErrNotFound means the tree is
// empty or missing. FetchFile returns ErrNotFound when the path is absent.
// ErrTreeTruncated comes with the entries that were listed. Any other error
// is a transport failure. ErrRepoNotFound from either method
// means the repository does not resolve at all.
type Fetcher interface {
	FetchTree(ctx context.Context, repo RepoID) ([]RepoEntry, error)
	FetchFile(ctx context.Context, repo RepoID, path string) (*File, error)
}

// DetailsFetcher is implemented by fetchers that can describe the repository.
type DetailsFetcher interface {
	FetchDetails(ctx context.Context, repo RepoID) (*RepoDetails, error)
}
