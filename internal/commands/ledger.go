package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/ledger"
)

func newLedgerCommand(opts *globalOptions) *cobra.Command {
	var year string
	var output string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Export the per-account ledger of a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(cmd, opts, year, output)
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "fiscal year label (default: the current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")

	return cmd
}

func runLedger(cmd *cobra.Command, opts *globalOptions, yearFlag, output string) error {
	p, err := loadProject(opts)
	if err != nil {
		return err
	}
	label := p.year(yearFlag)
	sess := p.openSession(opts.logger)

	y, ok := sess.Year(label)
	if !ok {
		return fmt.Errorf("no file for fiscal year %s", label)
	}
	if y.Err != nil {
		return fmt.Errorf("fiscal year %s: %w", label, y.Err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	if err := ledger.WriteLedger(w, y.Ledger.Accounts); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if output != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d accounts to %s\n", y.Ledger.Len(), output)
	}
	return nil
}
