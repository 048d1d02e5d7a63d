package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/config"
	"github.com/soldes-dev/soldes/internal/registry"
)

func newInitCommand() *cobra.Command {
	var name string
	var siren string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new soldes project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, siren)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&siren, "siren", "", "SIREN or SIRET of the company")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, siren string) error {
	cfg := config.Default(name)
	if siren != "" {
		normalized, err := registry.NormalizeSIREN(siren)
		if err != nil {
			return err
		}
		cfg.Company.SIREN = normalized
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	for _, d := range []string{"import", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Accounting exports and run logs stay out of version control.
	gitignore := "import/\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized soldes project at %s\n", dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Copy the exports to %s and %s\n",
		filepath.Join(dir, cfg.FiscalYears[0].File), filepath.Join(dir, cfg.FiscalYears[1].File))
	return nil
}
