/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/ui"
)

var analyzeSave bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir|owner/name[@ref]>",
	Short: "Analyze a repository and print its report",
	Long: `Analyze a local directory or GitHub repository.

The report covers file statistics, tech stack, project structure and
features, a code-quality score, design paradigm, architecture style,
deploy platform and project type. Sections that could not be fetched are
left empty and listed as warnings.`,
	Example: `  repowing analyze .
  repowing analyze vercel/next.js@canary --json
  repowing analyze owner/app --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var savedID string
		if analyzeSave {
			store, err := openStore(appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := store.Save(report)
			if err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			savedID = rec.ID
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, report)
		}
		ui.RenderReport(out, report)
		if savedID != "" {
			fmt.Fprintf(out, "\n%s saved as %s\n", ui.Icon("✓", ui.StyleSuccess), ui.TruncateID(savedID))
		}
		return nil
	},
}

// runAnalyze resolves target and analyzes it.
func runAnalyze(ctx context.Context, target string) (*analyzer.AnalysisReport, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}
	fetcher, repo, err := resolveTarget(cfg, target)
	if err != nil {
		return nil, err
	}

	var report *analyzer.AnalysisReport
	err = withSpinner(" Analyzing "+repo.String(), func() error {
		var runErr error
		report, runErr = newAnalyzer(cfg, fetcher).Analyze(ctx, repo)
		return runErr
	})
	return report, err
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save the report to history")
}
