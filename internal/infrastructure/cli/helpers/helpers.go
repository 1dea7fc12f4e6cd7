// Package helpers holds small pieces shared by the CLI commands.
package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/doeshing/healthcheck/internal/application/scan"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/ports"
)

// ProcessEnv snapshots the process environment as a map.
func ProcessEnv() map[string]string {
	return EnvFromList(os.Environ())
}

// EnvFromList parses KEY=value pairs. Later duplicates win.
func EnvFromList(list []string) map[string]string {
	env := make(map[string]string, len(list))
	for _, kv := range list {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// IsTerminal reports whether w (or r) is an interactive terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled decides whether the report should be colored.
func ColorEnabled(out io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(out)
}

// DatabaseURL resolves the configured database variable, process env first,
// then the project's env file.
func DatabaseURL(ctx context.Context, provider ports.ConfigProvider, fsys fs.FS, env map[string]string) (string, string, error) {
	cfg, err := provider.Load(ctx)
	if err != nil {
		return "", "", fmt.Errorf("load config: %w", err)
	}
	name := cfg.Runtime.DatabaseEnvVar
	if name == "" {
		name = domain.DefaultDatabaseEnvVar
	}
	values, _ := scan.LoadEnvFile(fsys, cfg.Environment.File)
	url := scan.Lookup(name, values, env)
	if url == "" {
		return name, "", errors.New(name + " is not set")
	}
	return name, url, nil
}
