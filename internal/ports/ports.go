// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application layer (scan, doctor, collect, venv) depends only on these
// contracts. Infrastructure adapters implement them: the YAML config loader,
// the exec-based interpreter probe, the database/sql probe, and the slog logger.
// Tests swap in stubs so every check runs without a real interpreter or database.
package ports

import (
	"context"

	"github.com/doeshing/healthcheck/internal/domain"
)

// ConfigProvider loads the check configuration for a project root.
// Implementations read .healthcheck.yaml or fall back to embedded defaults.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CommandRunner executes an external program and captures its output.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (domain.ExecutionResult, error)
}

// InterpreterProbe reports the interpreter version and whether the application imports.
type InterpreterProbe interface {
	Version(ctx context.Context) (string, error)
	Import(ctx context.Context, dir, module string) error
}

// DatabaseProbe checks connectivity for a database URL.
type DatabaseProbe interface {
	Ping(ctx context.Context, url string) error
}

// UserLister reads application users from the database.
type UserLister interface {
	ListUsers(ctx context.Context, url string) ([]domain.User, error)
}

// SnapshotWriter persists a directory tree listing, overwriting any previous one.
type SnapshotWriter interface {
	Write(path, root string, settings domain.SnapshotSettings) (domain.SnapshotResult, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations must never write to stdout, which carries the report.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
