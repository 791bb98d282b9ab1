/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/git"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/ui"
	"github.com/josephgoksu/RepoWing/internal/watch"
)

var watchDelay time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-analyze a local checkout whenever it changes",
	Long: `Watch a directory and re-run the analysis when files are added, removed
or renamed, or when a dependency manifest's content changes. Each run
prints the quality score and how it moved since the previous run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		root, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", dir, err)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", source.ErrRepoNotFound, root)
		}

		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		fetcher := source.NewFSFetcher(afero.NewOsFs(), root).WithDescriber(git.NewClient(root))
		out := cmd.OutOrStdout()

		w, err := watch.New(watch.Config{
			Root:     root,
			Repo:     fetcher.RepoID(),
			Analyzer: newAnalyzer(cfg, fetcher),
			Delay:    watchDelay,
			Logger:   slog.Default(),
			OnReport: func(prev, cur *analyzer.AnalysisReport) {
				if isJSON() {
					_ = printJSON(out, cur)
					return
				}
				ui.RenderDelta(out, prev, cur)
			},
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := w.Start(ctx); err != nil {
			w.Stop()
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", root)

		<-ctx.Done()
		w.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 500*time.Millisecond, "quiet period before re-analyzing")
}
