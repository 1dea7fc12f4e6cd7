package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/ports"
)

// LocalExecutor runs programs directly (no shell) on the host.
type LocalExecutor struct{}

// NewLocalExecutor builds a new executor.
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{}
}

// Run implements ports.CommandRunner. A non-zero exit returns both the result
// and an *exec.ExitError.
func (e *LocalExecutor) Run(ctx context.Context, dir string, name string, args ...string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		c.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Ran:        err == nil,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		result.Err = ctxErr
		return result, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result, err
	}
	if err != nil {
		result.Err = err
		return result, err
	}
	return result, nil
}

var _ ports.CommandRunner = (*LocalExecutor)(nil)
