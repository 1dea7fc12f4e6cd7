package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/infrastructure/cli/helpers"
)

// NewUsersCommand creates the users command, which lists rows of the
// application's users table through the configured database URL.
func NewUsersCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users from the application database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Users == nil {
				return errors.New(ErrUserListerUnavailable)
			}
			_, url, err := helpers.DatabaseURL(cmd.Context(), container.ConfigProvider, container.ProjectFS, helpers.ProcessEnv())
			if err != nil {
				return err
			}
			users, err := container.Users.ListUsers(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, MsgNoUsersFound)
				return nil
			}
			fmt.Fprintf(out, "Found %d user(s):\n", len(users))
			for _, u := range users {
				fmt.Fprintf(out, "ID: %s, Email: %s, Name: %s\n", u.ID, u.Email, u.FullName)
			}
			return nil
		},
	}
}
