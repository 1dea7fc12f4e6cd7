package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/healthcheck/internal/ports"
)

// Interpreter probes a Python interpreter through a CommandRunner.
type Interpreter struct {
	binary string
	runner ports.CommandRunner
}

// NewInterpreter builds a probe for the given interpreter binary.
func NewInterpreter(binary string, runner ports.CommandRunner) *Interpreter {
	return &Interpreter{binary: binary, runner: runner}
}

// Version returns the interpreter's reported version, e.g. "Python 3.12.1".
func (p *Interpreter) Version(ctx context.Context) (string, error) {
	result, err := p.runner.Run(ctx, "", p.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", p.binary, cause(err, result.Stderr))
	}
	// Python 2 printed the version on stderr
	version := strings.TrimSpace(result.Stdout)
	if version == "" {
		version = strings.TrimSpace(result.Stderr)
	}
	if version == "" {
		return "", fmt.Errorf("%s --version printed nothing", p.binary)
	}
	return version, nil
}

// Import checks that module imports from dir.
func (p *Interpreter) Import(ctx context.Context, dir, module string) error {
	if module == "" {
		return errors.New("no application module configured")
	}
	result, err := p.runner.Run(ctx, dir, p.binary, "-c", "import "+module)
	if err != nil {
		return fmt.Errorf("import %s: %w", module, cause(err, result.Stderr))
	}
	return nil
}

// cause prefers the last line of stderr (the Python exception) over the exit status.
func cause(err error, stderr string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return errors.New(last)
	}
	return err
}

var _ ports.InterpreterProbe = (*Interpreter)(nil)
