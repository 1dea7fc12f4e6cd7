package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running it without a subcommand
// runs check. The container is built once flags are parsed, because --root
// and --config decide which project and config it serves.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	settings := app.Settings{Verbose: opts.Verbose}
	container := &app.Container{}

	checkCmd := newCheckCommand(container)

	root := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check a Python backend project for missing pieces",
		Long: `healthcheck inspects a Python backend project: expected files, content
patterns, declared dependencies, environment variables, and whether the
interpreter, the application import, and the database actually work.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := app.BuildContainer(cmd.Context(), settings)
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		RunE:          checkCmd.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	flags := root.PersistentFlags()
	flags.StringVar(&settings.Root, "root", ".", "Project root to check")
	flags.StringVar(&settings.ConfigPath, "config", "", "Config file (default <root>/.healthcheck.yaml, then built-in defaults)")
	flags.BoolVarP(&settings.Verbose, "verbose", "v", opts.Verbose, "Log progress to stderr")
	root.Flags().AddFlagSet(checkCmd.Flags())

	root.AddCommand(checkCmd)
	root.AddCommand(commands.NewInitCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewTreeCommand(container))
	root.AddCommand(commands.NewCollectCommand(container))
	root.AddCommand(commands.NewUsersCommand(container))
	root.AddCommand(commands.NewVenvCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
