package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/report"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that each fiscal year balances (classes 6-7 against 1-5)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a fiscal year is missing, unreadable or unbalanced")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *globalOptions, strict bool) error {
	p, err := loadProject(opts)
	if err != nil {
		return err
	}
	sess := p.openSession(opts.logger)
	p.record(sess, opts.logger)

	failed := 0
	for _, fy := range p.cfg.FiscalYears {
		y, _ := sess.Year(fy.Label)
		fmt.Fprintln(cmd.OutOrStdout(), report.ConsistencyMessage(fy.Label, y))
		if !y.OK() || !y.Consistency.Balanced() {
			failed++
		}
	}

	if strict && failed > 0 {
		return fmt.Errorf("%d fiscal year(s) failed the consistency check", failed)
	}
	return nil
}
