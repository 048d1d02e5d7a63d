package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/soldes-dev/soldes/internal/buildinfo"
	"github.com/soldes-dev/soldes/internal/config"
)

// globalOptions holds the persistent flags and the environment shared by
// every subcommand.
type globalOptions struct {
	configPath string
	years      []string
	current    string
	previous   string

	env    *config.Env
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "soldes",
		Short:   "Soldes intermédiaires de gestion from FEC and trial balance exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			opts.env = env
			opts.logger = config.NewLogger(env, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.FileName, "project configuration file")
	pf.StringArrayVar(&opts.years, "year", nil, "fiscal year file as LABEL=PATH (repeatable)")
	pf.StringVar(&opts.current, "current", "", "label of the current fiscal year")
	pf.StringVar(&opts.previous, "previous", "", "label of the previous fiscal year")

	rootCmd.AddCommand(
		newInitCommand(),
		newCheckCommand(opts),
		newSIGCommand(opts),
		newDetailCommand(opts),
		newLedgerCommand(opts),
		newHistoryCommand(opts),
		newSIRENCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}
