package analyzer

import (
	"context"

	"github.com/josephgoksu/RepoWing/internal/codeintel/manifest"
	"github.com/josephgoksu/RepoWing/internal/source"
)

// fakeFetcher serves a fixed snapshot with programmable failures.
type fakeFetcher struct {
	entries    []source.RepoEntry
	files      map[string]string
	fileErrs   map[string]error
	treeErr    error
	details    *source.RepoDetails
	detailsErr error
}

func (f *fakeFetcher) FetchTree(ctx context.Context, repo source.RepoID) ([]source.RepoEntry, error) {
	if f.treeErr != nil {
		return nil, f.treeErr
	}
	return f.entries, nil
}

func (f *fakeFetcher) FetchFile(ctx context.Context, repo source.RepoID, path string) (*source.File, error) {
	if err, ok := f.fileErrs[path]; ok {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, source.ErrNotFound
	}
	return &source.File{Path: path, Content: []byte(content)}, nil
}

func (f *fakeFetcher) FetchDetails(ctx context.Context, repo source.RepoID) (*source.RepoDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	if f.details == nil {
		return nil, source.ErrNotFound
	}
	return f.details, nil
}

func blobs(paths ...string) []source.RepoEntry {
	entries := make([]source.RepoEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, source.RepoEntry{Path: p, Kind: source.KindBlob, Size: 1})
	}
	return entries
}

func indexOf(paths ...string) *Index {
	return BuildIndex(blobs(paths...))
}

func depsOf(names ...string) *Dependencies {
	return depsWithScripts(nil, names...)
}

func depsWithScripts(scripts map[string]string, names ...string) *Dependencies {
	m := &manifest.Manifest{SourcePath: "package.json", Ecosystem: manifest.EcosystemNpm, Scripts: scripts}
	for _, n := range names {
		m.Dependencies = append(m.Dependencies, manifest.Dependency{Name: n})
	}
	return MergeManifests([]*manifest.Manifest{m})
}
