package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/ui"
)

var (
	historyRepo  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [report-id]",
	Short: "List saved reports, or show one by ID",
	Example: `  repowing history
  repowing history --repo vercel/next.js --limit 5
  repowing history 3f2a9c1e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 1 {
			return fmt.Errorf("--limit must be at least 1")
		}
		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		out := cmd.OutOrStdout()

		if len(args) == 1 {
			rec, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out, rec)
			}
			ui.RenderReport(out, rec.Report)
			return nil
		}

		repo := historyRepo
		if repo != "" {
			// accept the same forms analyze does, e.g. a github.com URL
			if id, err := source.ParseRepoID(repo); err == nil {
				repo = id.String()
			}
		}
		records, err := store.List(repo, historyLimit)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(out, records)
		}
		ui.RenderHistory(out, records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyRepo, "repo", "", "only list reports for this repository")
	historyCmd.Flags().IntVar(&historyLimit, "limit", memory.DefaultListLimit, "maximum number of reports")
}
