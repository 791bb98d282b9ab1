package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// skippedDirs are never descended into when walking a local checkout.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"__pycache__":  true,
	".next":        true,
	".nuxt":        true,
	"coverage":     true,
	".venv":        true,
}

// IsSkippedDir reports whether a directory name is excluded from local walks.
func IsSkippedDir(name string) bool {
	return skippedDirs[name]
}

// Describer supplies metadata for a local checkout, such as its git remote.
type Describer interface {
	Describe(ctx context.Context) (*RepoDetails, error)
}

// FSFetcher serves a repository snapshot from a directory on an afero
// filesystem. The RepoID passed to its methods is ignored; the root decides.
type FSFetcher struct {
	fs        afero.Fs
	root      string
	describer Describer
}

// NewFSFetcher creates a fetcher rooted at root. A nil fs means the OS
// filesystem.
func NewFSFetcher(fsys afero.Fs, root string) *FSFetcher {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FSFetcher{fs: fsys, root: filepath.Clean(root)}
}

// WithDescriber makes FetchDetails merge in what d reports.
func (f *FSFetcher) WithDescriber(d Describer) *FSFetcher {
	f.describer = d
	return f
}

// Root returns the directory the fetcher serves.
func (f *FSFetcher) Root() string {
	return f.root
}

// RepoID returns a synthetic identifier for the local checkout.
func (f *FSFetcher) RepoID() RepoID {
	name := filepath.Base(f.root)
	if name == "." || name == string(filepath.Separator) {
		name = "workspace"
	}
	return RepoID{Owner: "local", Name: name}
}

// FetchDetails describes the checkout. A missing root means the repository
// does not resolve.
func (f *FSFetcher) FetchDetails(ctx context.Context, repo RepoID) (*RepoDetails, error) {
	if err := f.checkRoot(); err != nil {
		return nil, err
	}
	details := &RepoDetails{FullName: f.RepoID().String()}
	if f.describer == nil {
		return details, nil
	}

	extra, err := f.describer.Describe(ctx)
	if err != nil {
		// not every checkout is a git work tree
		return details, nil
	}
	if extra.FullName != "" {
		details.FullName = extra.FullName
	}
	details.DefaultBranch = extra.DefaultBranch
	details.Description = extra.Description
	details.Homepage = extra.Homepage
	details.Language = extra.Language
	return details, nil
}

// FetchTree walks the root and returns every file and directory below it.
func (f *FSFetcher) FetchTree(ctx context.Context, repo RepoID) ([]RepoEntry, error) {
	if err := f.checkRoot(); err != nil {
		return nil, err
	}

	var entries []RepoEntry
	err := afero.Walk(f.fs, f.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == f.root {
			return nil
		}

		rel, relErr := filepath.Rel(f.root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if skippedDirs[info.Name()] {
				return filepath.SkipDir
			}
			entries = append(entries, RepoEntry{Path: rel, Kind: KindTree})
			return nil
		}
		entries = append(entries, RepoEntry{Path: rel, Kind: KindBlob, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", f.root, err)
	}
	return entries, nil
}

// FetchFile reads a file relative to the root.
func (f *FSFetcher) FetchFile(ctx context.Context, repo RepoID, p string) (*File, error) {
	// cleaning against "/" keeps the result inside the root
	clean := path.Clean("/" + filepath.ToSlash(p))

	content, err := afero.ReadFile(f.fs, filepath.Join(f.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return &File{Path: p, Content: content}, nil
}

func (f *FSFetcher) checkRoot() error {
	ok, err := afero.DirExists(f.fs, f.root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.root, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRepoNotFound, f.root)
	}
	return nil
}
