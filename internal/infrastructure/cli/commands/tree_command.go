package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/domain"
)

// NewTreeCommand creates the tree command, which writes the directory snapshot
// on its own.
func NewTreeCommand(container *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Write a directory tree snapshot of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Snapshot == nil {
				return errors.New(ErrSnapshotUnavailable)
			}
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := output
			if path == "" {
				path = cfg.Snapshot.Path
			}
			if path == "" {
				path = domain.DefaultSnapshotFile
			}
			result, err := container.Snapshot.Write(path, container.Root, cfg.Snapshot)
			if err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written: %s (%d directories, %d files, %s)\n",
				result.Path, result.Dirs, result.Files, humanize.Bytes(uint64(result.TotalBytes)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot file (default snapshot.path, project_structure.txt)")
	return cmd
}
