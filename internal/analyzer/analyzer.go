/*
Package analyzer classifies a repository snapshot: tech stack, structure and
features, code quality, paradigm and architecture, deploy platform, and how
far a project plan appears to be implemented.

Every classifier is a pure function of the tree Index and the merged
Dependencies. The Analyzer only adds fetching: it fans out the tree, details
and manifest fetches, degrades a section to its empty value on transport
failure, and fails only when the repository itself does not resolve.
*/
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/task"
)

// validate is a singleton validator instance
var validate = validator.New()

// Warnings attached to partial reports.
const (
	WarnDetails   = "repository details unavailable: transport error"
	WarnTree      = "tree: transport error"
	WarnManifests = "manifests: transport error"
	WarnTruncated = "tree: truncated"
)

// Config configures an Analyzer. Zero values fall back to defaults.
type Config struct {
	ManifestPaths        []string
	MaxConcurrentFetches int
	Logger               *slog.Logger
}

// Analyzer runs analyses against one fetcher.
type Analyzer struct {
	fetcher source.Fetcher
	cfg     Config
	logger  *slog.Logger
}

// New creates an analyzer reading through fetcher.
func New(fetcher source.Fetcher, cfg Config) *Analyzer {
	if len(cfg.ManifestPaths) == 0 {
		cfg.ManifestPaths = DefaultManifestPaths
	}
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = 8
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{fetcher: fetcher, cfg: cfg, logger: logger}
}

// snapshot is everything fetched for one analysis.
type snapshot struct {
	details  *source.RepoDetails
	index    *Index
	deps     *Dependencies
	warnings []string
}

// Analyze produces the full report for repo. Only an invalid id or a
// repository that does not resolve is an error; any other fetch failure
// yields a partial report with warnings.
func (a *Analyzer) Analyze(ctx context.Context, repo source.RepoID) (*AnalysisReport, error) {
	if err := validate.Struct(repo); err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrInvalidRepoID, err)
	}

	snap, err := a.fetchSnapshot(ctx, repo)
	if err != nil {
		return nil, err
	}

	report := ComposeReport(repo, snap.index, snap.deps, snap.details, snap.warnings)
	a.logger.Debug("analysis complete",
		"repo", repo.String(),
		"files", report.FileStats.Total,
		"score", report.Quality.Score,
		"warnings", len(report.Warnings))
	return report, nil
}

func (a *Analyzer) fetchSnapshot(ctx context.Context, repo source.RepoID) (*snapshot, error) {
	var (
		details     *source.RepoDetails
		entries     []source.RepoEntry
		deps        *Dependencies
		detailsErr  error
		treeErr     error
		manifestErr error
	)

	// Siblings never cancel each other; each records its own error.
	var g errgroup.Group
	if df, ok := a.fetcher.(source.DetailsFetcher); ok {
		g.Go(func() error {
			details, detailsErr = df.FetchDetails(ctx, repo)
			return nil
		})
	}
	g.Go(func() error {
		entries, treeErr = a.fetcher.FetchTree(ctx, repo)
		return nil
	})
	g.Go(func() error {
		deps, manifestErr = a.collectManifests(ctx, repo)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{detailsErr, treeErr, manifestErr} {
		if errors.Is(err, source.ErrRepoNotFound) {
			return nil, fmt.Errorf("analyze %s: %w", repo, err)
		}
	}

	snap := &snapshot{details: details, deps: deps}

	switch {
	case detailsErr == nil:
	case errors.Is(detailsErr, source.ErrNotFound):
		snap.details = nil
	default:
		logTransport(a.logger, repo, "details", detailsErr)
		snap.details = nil
		snap.warnings = append(snap.warnings, WarnDetails)
	}

	entries, warning := a.resolveTree(repo, entries, treeErr)
	if warning != "" {
		snap.warnings = append(snap.warnings, warning)
	}
	snap.index = BuildIndex(entries)

	if manifestErr != nil {
		logTransport(a.logger, repo, "manifests", manifestErr)
		snap.deps = nil
		snap.warnings = append(snap.warnings, WarnManifests)
	}
	return snap, nil
}

// resolveTree applies the degradation rules to a tree fetch result and
// returns the usable entries plus the warning to attach, if any.
func (a *Analyzer) resolveTree(repo source.RepoID, entries []source.RepoEntry, err error) ([]source.RepoEntry, string) {
	switch {
	case err == nil:
		return entries, ""
	case errors.Is(err, source.ErrNotFound):
		return nil, ""
	case errors.Is(err, source.ErrTreeTruncated):
		a.logger.Warn("partial tree", "repo", repo.String(), "entries", len(entries))
		return entries, WarnTruncated
	default:
		logTransport(a.logger, repo, "tree", err)
		return nil, WarnTree
	}
}

// CompareTasks matches every sub-task of phases against the repository tree.
// Details are fetched alongside the tree when the fetcher offers them, since
// only details tell a missing repository from an empty tree. A tree
// transport failure is logged and every task scores zero.
func (a *Analyzer) CompareTasks(ctx context.Context, repo source.RepoID, phases []task.Phase) ([]PhaseMatch, error) {
	if err := validate.Struct(repo); err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrInvalidRepoID, err)
	}
	if err := task.Validate(phases); err != nil {
		return nil, err
	}

	var (
		entries    []source.RepoEntry
		treeErr    error
		detailsErr error
	)
	var g errgroup.Group
	if df, ok := a.fetcher.(source.DetailsFetcher); ok {
		g.Go(func() error {
			_, detailsErr = df.FetchDetails(ctx, repo)
			return nil
		})
	}
	g.Go(func() error {
		entries, treeErr = a.fetcher.FetchTree(ctx, repo)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{detailsErr, treeErr} {
		if errors.Is(err, source.ErrRepoNotFound) {
			return nil, fmt.Errorf("compare tasks %s: %w", repo, err)
		}
	}

	entries, _ = a.resolveTree(repo, entries, treeErr)
	return MatchPhases(BuildIndex(entries), phases), nil
}
