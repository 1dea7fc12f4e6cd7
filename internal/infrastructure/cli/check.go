package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/healthcheck/internal/app"
	"github.com/doeshing/healthcheck/internal/application/doctor"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/infrastructure/cli/helpers"
)

type checkOptions struct {
	only        []string
	skipRuntime bool
	snapshot    string
	noColor     bool
	timeout     time.Duration
}

func newCheckCommand(container *app.Container) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the project health checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, container, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "Run only these stages (files,patterns,deps,env,runtime)")
	cmd.Flags().BoolVar(&opts.skipRuntime, "skip-runtime", false, "Do not run interpreter, import, or database probes")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Also write a directory tree snapshot to this path")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-probe timeout (default from config, 30s)")
	return cmd
}

// runCheck prints the report whenever one was produced. A failed mandatory
// check is returned after printing so main exits non-zero.
func runCheck(cmd *cobra.Command, container *app.Container, opts checkOptions) error {
	if container.DoctorService == nil {
		return fmt.Errorf("doctor service unavailable")
	}
	stages, err := doctor.ParseStages(opts.only)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if helpers.IsTerminal(cmd.ErrOrStderr()) {
		spinner = NewSpinner(cmd.ErrOrStderr(), "checking "+container.Root)
		spinner.Start()
	}
	report, runErr := container.DoctorService.Run(cmd.Context(), doctor.Options{
		Root:        container.Root,
		FS:          container.ProjectFS,
		Env:         helpers.ProcessEnv(),
		Stages:      stages,
		SkipRuntime: opts.skipRuntime,
		Timeout:     opts.timeout,
	})
	if spinner != nil {
		spinner.Stop()
	}

	var fault *domain.EnvironmentFault
	if runErr != nil && !errors.As(runErr, &fault) {
		return runErr
	}

	RenderReport(cmd.OutOrStdout(), report, RenderOptions{
		Color: helpers.ColorEnabled(cmd.OutOrStdout(), opts.noColor),
	})

	if opts.snapshot != "" {
		if err := writeSnapshot(cmd, container, opts.snapshot); err != nil {
			return err
		}
	}
	return runErr
}

func writeSnapshot(cmd *cobra.Command, container *app.Container, path string) error {
	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	result, err := container.Snapshot.Write(path, container.Root, cfg.Snapshot)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Snapshot written: %s\n", result.Path)
	return nil
}
