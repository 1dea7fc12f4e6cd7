package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/application/collect"
)

// NewCollectCommand creates the collect command, which bundles the project's
// key files into one text file for review.
func NewCollectCommand(container *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Bundle key project files into one review file",
		Long: `Concatenate every expected and inspected file that exists into a single
review file, each preceded by a "===== path =====" header. Files marked
sensitive (such as .env) are never copied. The output is overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CollectService == nil {
				return errors.New(ErrCollectServiceUnavailable)
			}
			result, err := container.CollectService.Run(cmd.Context(), collect.Options{
				Root:   container.Root,
				FS:     container.ProjectFS,
				Output: output,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Review bundle written: %s (%d files, %s)\n",
				result.Path, len(result.Included), humanize.Bytes(uint64(result.Bytes)))
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "Skipped: %s\n", strings.Join(result.Skipped, ", "))
			}
			if len(result.Missing) > 0 {
				fmt.Fprintf(out, "Missing: %s\n", strings.Join(result.Missing, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Bundle file (default collect.output, review_bundle.txt)")
	return cmd
}
