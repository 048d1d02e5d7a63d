package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/history"
	"github.com/soldes-dev/soldes/internal/report"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the analyses recorded for the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, filepath.Dir(opts.configPath))
		},
	}
}

func runHistory(cmd *cobra.Command, dir string) error {
	entries, err := history.Read(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tExercice\tFichier\tChiffre d'affaires\tRésultat\tStatut")
	for _, e := range entries {
		status := e.Status
		if e.Details != "" {
			status += " (" + e.Details + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Year,
			e.Source,
			report.Money(e.Turnover),
			report.Money(e.NetIncome),
			status,
		)
	}
	return tw.Flush()
}
