package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/report"
)

func newSIGCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sig",
		Short: "Compute the SIG waterfall and compare two fiscal years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSIG(cmd, opts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, csv or json")

	return cmd
}

func runSIG(cmd *cobra.Command, opts *globalOptions, format string) error {
	switch format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	p, err := loadProject(opts)
	if err != nil {
		return err
	}
	sess := p.openSession(opts.logger)
	p.record(sess, opts.logger)

	current, previous := p.cfg.Comparison.Current, p.cfg.Comparison.Previous
	if sess.Result(current) == nil && sess.Result(previous) == nil {
		return errors.New("no fiscal year could be analysed (format not recognized or no file)")
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return report.WriteCSV(out, sess.Compare(current, previous), current, previous)
	case "json":
		return report.WriteJSON(out, report.NewAnalysis(sess, current, previous))
	}

	if c := p.cfg.Company; c.Name != "" {
		if c.SIREN != "" {
			fmt.Fprintf(out, "%s (SIREN %s)\n\n", c.Name, c.SIREN)
		} else {
			fmt.Fprintf(out, "%s\n\n", c.Name)
		}
	}
	return report.WriteTable(out, sess.Compare(current, previous), current, previous)
}
