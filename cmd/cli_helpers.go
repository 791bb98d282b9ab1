package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/config"
	"github.com/josephgoksu/RepoWing/internal/git"
	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/ui"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// currentConfig returns appConfig, resolving it if no command has yet.
func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	if err := InitConfig(); err != nil {
		return nil, err
	}
	return appConfig, nil
}

// resolveTarget turns a CLI target into a fetcher and the id to analyze.
// An existing directory is read from disk; anything else must parse as
// owner/name[@ref] and is fetched from GitHub.
func resolveTarget(cfg *config.Config, target string) (source.Fetcher, source.RepoID, error) {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, source.RepoID{}, fmt.Errorf("resolve %s: %w", target, err)
		}
		fetcher := source.NewFSFetcher(afero.NewOsFs(), abs).WithDescriber(git.NewClient(abs))
		return fetcher, fetcher.RepoID(), nil
	}

	repo, err := source.ParseRepoID(target)
	if err != nil {
		return nil, source.RepoID{}, err
	}
	return newGitHubFetcher(cfg), repo, nil
}

// newGitHubFetcher builds the cached, rate-limited GitHub fetcher.
func newGitHubFetcher(cfg *config.Config) source.Fetcher {
	gh := source.NewGitHubFetcher(source.GitHubConfig{
		BaseURL:           cfg.GitHub.BaseURL,
		Token:             cfg.GitHub.Token,
		Timeout:           cfg.GitHub.Timeout,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	})
	return source.NewCachedFetcher(gh, cfg.Cache.Size, cfg.Cache.TTL)
}

func newAnalyzer(cfg *config.Config, fetcher source.Fetcher) *analyzer.Analyzer {
	return analyzer.New(fetcher, analyzer.Config{
		ManifestPaths:        cfg.Analysis.ManifestPaths,
		MaxConcurrentFetches: cfg.Analysis.MaxConcurrentFetches,
		Logger:               slog.Default(),
	})
}

func openStore(cfg *config.Config) (*memory.SQLiteStore, error) {
	store, err := memory.NewSQLiteStore(cfg.Memory.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// withSpinner runs fn behind a spinner on stderr when attached to a terminal.
func withSpinner(label string, fn func() error) error {
	if isJSON() || !ui.IsInteractive() {
		return fn()
	}
	s := ui.NewSpinner(os.Stderr, label)
	s.Start()
	defer s.Stop()
	return fn()
}
