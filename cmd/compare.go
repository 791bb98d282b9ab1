package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/task"
	"github.com/josephgoksu/RepoWing/internal/ui"
)

var comparePhasesFile string

var compareCmd = &cobra.Command{
	Use:   "compare <dir|owner/name[@ref]> --phases plan.yaml",
	Short: "Estimate how much of a task plan a repository already implements",
	Long: `Compare a phased task plan (YAML or JSON) with a repository's file tree.

Each sub-task is scored by matching its title against the categories of
files present in the repository and reported as likely done, in progress
or not started.`,
	Example: `  repowing compare . --phases plan.yaml
  repowing compare owner/app --phases plan.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if comparePhasesFile == "" {
			return fmt.Errorf("%w: --phases is required", task.ErrInvalidPlan)
		}
		phases, err := task.LoadPhases(comparePhasesFile)
		if err != nil {
			return err
		}

		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		fetcher, repo, err := resolveTarget(cfg, args[0])
		if err != nil {
			return err
		}

		var matches []analyzer.PhaseMatch
		err = withSpinner(fmt.Sprintf(" Comparing %d tasks with %s", task.TaskCount(phases), repo), func() error {
			var runErr error
			matches, runErr = newAnalyzer(cfg, fetcher).CompareTasks(cmd.Context(), repo, phases)
			return runErr
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, map[string]any{"repo": repo.String(), "phases": matches})
		}
		ui.RenderComparison(out, repo.String(), matches)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&comparePhasesFile, "phases", "p", "", "path to a YAML or JSON task plan")
}
