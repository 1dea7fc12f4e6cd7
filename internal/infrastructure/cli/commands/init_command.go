package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/infrastructure/config"
)

// NewInitCommand creates the init command, which writes the built-in defaults
// to the project's config file so they can be edited.
func NewInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to .healthcheck.yaml",
		Long: `Write the built-in check configuration to <root>/.healthcheck.yaml.

The defaults describe a FastAPI project with an app/ package, a
requirements.txt manifest, and a .env file. Edit the expected files,
patterns, package roles, and required variables to match your project,
then run 'healthcheck check'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(out io.Writer, container *app.Container, force bool) error {
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	path, err := container.ConfigLoader.WriteDefault(force)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%s already exists; use --force to overwrite it", path)
	}
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(out, "Configuration written: %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Adjust files, inspections, and dependencies to your project")
	fmt.Fprintln(out, "  2. Run: healthcheck check --skip-runtime")
	fmt.Fprintln(out, "  3. Run: healthcheck check")
	return nil
}
