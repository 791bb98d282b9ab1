package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/RepoWing/internal/codeintel/manifest"
	"github.com/josephgoksu/RepoWing/internal/source"
)

// DefaultManifestPaths are the candidate manifest locations, root first.
var DefaultManifestPaths = []string{
	"package.json",
	"client/package.json",
	"server/package.json",
	"frontend/package.json",
	"backend/package.json",
	"web/package.json",
	"api/package.json",
	"app/package.json",
	"go.mod",
	"requirements.txt",
	"pyproject.toml",
	"Cargo.toml",
	"server/go.mod",
	"backend/requirements.txt",
}

// primaryManifestPath is the manifest whose scripts feed quality signals.
const primaryManifestPath = "package.json"

// ManifestSummary lists one discovered manifest in the report.
type ManifestSummary struct {
	SourcePath   string `json:"sourcePath"`
	Ecosystem    string `json:"ecosystem"`
	Dependencies int    `json:"dependencies"`
}

// Dependencies is the merged view of every manifest found in a snapshot.
type Dependencies struct {
	// Names is the union of dependency names in candidate order, then
	// declaration order.
	Names []string
	// Scripts holds the primary manifest's scripts, if any.
	Scripts   map[string]string
	Manifests []*manifest.Manifest

	lower []string
}

// Lower returns the lower-cased dependency names.
func (d *Dependencies) Lower() []string {
	return d.lower
}

// ScriptNames returns the primary manifest's script names, sorted.
func (d *Dependencies) ScriptNames() []string {
	names := make([]string, 0, len(d.Scripts))
	for name := range d.Scripts {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)
	return names
}

// Summaries lists the parsed manifests for the report.
func (d *Dependencies) Summaries() []ManifestSummary {
	out := make([]ManifestSummary, 0, len(d.Manifests))
	for _, m := range d.Manifests {
		out = append(out, ManifestSummary{
			SourcePath:   m.SourcePath,
			Ecosystem:    m.Ecosystem,
			Dependencies: len(m.Names()),
		})
	}
	return out
}

// MergeManifests unions manifests in the given order. The manifest at the
// primary path contributes its scripts.
func MergeManifests(manifests []*manifest.Manifest) *Dependencies {
	deps := &Dependencies{Names: []string{}, lower: []string{}}
	set := newOrderedSet()
	for _, m := range manifests {
		if m == nil {
			continue
		}
		deps.Manifests = append(deps.Manifests, m)
		if m.SourcePath == primaryManifestPath && deps.Scripts == nil {
			deps.Scripts = m.Scripts
		}
		set.AddAll(m.Names()...)
	}
	deps.Names = set.Items()
	for _, n := range deps.Names {
		deps.lower = append(deps.lower, strings.ToLower(n))
	}
	return deps
}

// collectManifests fetches every candidate concurrently and merges what it
// finds. Missing and malformed manifests are skipped. The returned error joins
// transport failures; the merged result is still usable when it is non-nil.
func (a *Analyzer) collectManifests(ctx context.Context, repo source.RepoID) (*Dependencies, error) {
	candidates := a.cfg.ManifestPaths
	results := make([]*manifest.Manifest, len(candidates))
	errs := make([]error, len(candidates))

	var g errgroup.Group
	g.SetLimit(a.cfg.MaxConcurrentFetches)
	for i, p := range candidates {
		g.Go(func() error {
			results[i], errs[i] = a.fetchManifest(ctx, repo, p)
			return nil
		})
	}
	_ = g.Wait()

	return MergeManifests(results), errors.Join(errs...)
}

func (a *Analyzer) fetchManifest(ctx context.Context, repo source.RepoID, p string) (*manifest.Manifest, error) {
	scanner := manifest.ScannerFor(p)
	if scanner == nil {
		a.logger.Debug("no scanner for manifest candidate", "path", p)
		return nil, nil
	}

	file, err := a.fetcher.FetchFile(ctx, repo, p)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", p, err)
	}

	m, err := scanner.Scan(p, file.Content)
	if err != nil {
		a.logger.Debug("skipping malformed manifest", "path", p, "error", err)
		return nil, nil
	}
	return m, nil
}

// logTransport records a degraded section without failing the analysis.
func logTransport(logger *slog.Logger, repo source.RepoID, section string, err error) {
	logger.Warn("fetch failed, using empty section", "repo", repo.String(), "section", section, "error", err)
}
