package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/application/venv"
	"github.com/doeshing/healthcheck/internal/infrastructure/cli/helpers"
)

// NewVenvCommand creates the venv command group.
func NewVenvCommand(container *app.Container) *cobra.Command {
	venvCmd := &cobra.Command{
		Use:   "venv",
		Short: "Manage the project's virtual environment",
	}

	var (
		yes         bool
		interpreter string
	)
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete and recreate the virtual environment, then install the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := container.VenvService
			if svc == nil {
				return errors.New(ErrVenvServiceUnavailable)
			}
			opts := venv.Options{Root: container.Root, Interpreter: interpreter}
			dir, err := svc.Plan(cmd.Context(), opts)
			if err != nil {
				return err
			}
			question := fmt.Sprintf("Delete and recreate %s?", dir)
			if err := helpers.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question, yes); err != nil {
				if errors.Is(err, helpers.ErrNotConfirmed) {
					fmt.Fprintln(cmd.OutOrStdout(), MsgResetCancelled)
					return nil
				}
				return err
			}

			result, err := svc.Reset(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("reset venv: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Virtual environment recreated: %s\n", result.Dir)
			if result.Installed != "" {
				fmt.Fprintf(out, "Installed packages from %s\n", result.Installed)
			} else {
				fmt.Fprintln(out, "No manifest found; nothing installed")
			}
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().StringVar(&interpreter, "interpreter", "", "Interpreter used to create the venv (default runtime.interpreter)")

	venvCmd.AddCommand(resetCmd)
	return venvCmd
}
