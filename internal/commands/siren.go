package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/config"
	"github.com/soldes-dev/soldes/internal/registry"
)

func newSIRENCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "siren [siren]",
		Short: "Look up the company in the Sirene register",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siren := ""
			if len(args) > 0 {
				siren = args[0]
			}
			return runSIREN(cmd, opts, siren)
		},
	}
}

// registrySettings reads the register settings from the project file when
// there is one, then applies environment overrides.
func registrySettings(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = &config.Config{}
	} else if err != nil {
		return nil, err
	}
	if opts.env != nil {
		opts.env.Apply(cfg)
	}
	return cfg, nil
}

func runSIREN(cmd *cobra.Command, opts *globalOptions, siren string) error {
	cfg, err := registrySettings(opts)
	if err != nil {
		return err
	}
	if siren == "" {
		siren = cfg.Company.SIREN
	}
	if siren == "" {
		return errors.New("no SIREN given and none configured")
	}

	client := registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
	company, err := client.Lookup(cmd.Context(), siren)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", siren, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "SIREN : %s\n", company.SIREN)
	fmt.Fprintf(out, "Nom : %s\n", company.Name)
	fmt.Fprintf(out, "Dirigeant : %s\n", company.Representative)
	fmt.Fprintf(out, "Adresse : %s\n", company.Address)
	if city := company.CityLine(); city != "" {
		fmt.Fprintf(out, "Ville : %s\n", city)
	}
	return nil
}
