package commands

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/report"
	"github.com/soldes-dev/soldes/internal/sig"
)

func newDetailCommand(opts *globalOptions) *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "detail <line>",
		Short: "List the accounts behind a SIG line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetail(cmd, opts, args[0], year)
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "fiscal year label (default: the current year)")

	return cmd
}

// resolveLine matches name against the SIG vocabulary, ignoring case, and
// suggests the closest line when nothing matches.
func resolveLine(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, line := range sig.Lines {
		if strings.EqualFold(line, name) {
			return line, nil
		}
	}
	cm := closestmatch.New(sig.Lines, []int{2, 3, 4})
	if suggestion := cm.Closest(name); suggestion != "" {
		return "", fmt.Errorf("unknown SIG line %q, did you mean %q?", name, suggestion)
	}
	return "", fmt.Errorf("unknown SIG line %q", name)
}

func runDetail(cmd *cobra.Command, opts *globalOptions, name, yearFlag string) error {
	line, err := resolveLine(name)
	if err != nil {
		return err
	}

	p, err := loadProject(opts)
	if err != nil {
		return err
	}
	label := p.year(yearFlag)
	sess := p.openSession(opts.logger)

	accounts, err := sess.Detail(label, line)
	if err != nil {
		return err
	}

	rule, curated := sig.DetailRule(line)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, exercice %s (comptes %s)\n", line, label, rule)
	if !curated {
		fmt.Fprintln(out, "Pas de règle dédiée : tous les comptes de charges et de produits.")
	}
	return report.WriteDetail(out, accounts)
}
