package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/ui"
)

var typeCmd = &cobra.Command{
	Use:   "type <dir|owner/name[@ref]>",
	Short: "Print the project type of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pt := analyzer.DetectProjectType(report)

		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, map[string]any{"repo": report.Repo, "projectType": pt})
		}
		ui.RenderProjectType(out, report.Repo, pt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
}
