package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/healthcheck/assets"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/pkg/filesystem"
	"github.com/doeshing/healthcheck/internal/ports"
)

// ErrConfigExists is returned by WriteDefault when the target file is present.
var ErrConfigExists = errors.New("config file already exists")

// FileLoader loads YAML configuration from <root>/.healthcheck.yaml
// (overridable via --config or HEALTHCHECK_CONFIG). Without a file the
// embedded defaults are used.
type FileLoader struct {
	root         string
	overridePath string
}

// NewFileLoader builds a new loader for a project root.
func NewFileLoader(root, path string) *FileLoader {
	if root == "" {
		root = "."
	}
	return &FileLoader{root: root, overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path, explicit := l.resolvePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return DefaultConfig()
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the config file the loader reads.
func (l *FileLoader) Path() string {
	path, _ := l.resolvePath()
	return path
}

// WriteDefault writes the embedded defaults to Path.
func (l *FileLoader) WriteDefault(force bool) (string, error) {
	path := l.Path()
	if _, err := os.Stat(path); err == nil && !force {
		return path, ErrConfigExists
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return path, err
	}
	return path, os.WriteFile(path, assets.DefaultConfigYAML, domain.ReportFilePermissions)
}

func (l *FileLoader) resolvePath() (string, bool) {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath), true
	}
	if custom := os.Getenv("HEALTHCHECK_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom), true
	}
	return filepath.Join(l.root, domain.DefaultConfigFile), false
}

// DefaultConfig decodes the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Dependencies.Manifest == "" {
		cfg.Dependencies.Manifest = domain.DefaultManifest
	}
	if cfg.Environment.File == "" {
		cfg.Environment.File = domain.DefaultEnvFile
	}
	if cfg.Runtime.Interpreter == "" {
		cfg.Runtime.Interpreter = domain.DefaultInterpreter
	}
	if cfg.Runtime.AppModule == "" {
		cfg.Runtime.AppModule = domain.DefaultAppModule
	}
	if cfg.Runtime.DatabaseEnvVar == "" {
		cfg.Runtime.DatabaseEnvVar = domain.DefaultDatabaseEnvVar
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = domain.DefaultSnapshotFile
	}
	if cfg.Collect.Output == "" {
		cfg.Collect.Output = domain.DefaultReviewFile
	}
	if cfg.Venv.Dir == "" {
		cfg.Venv.Dir = domain.DefaultVenvDir
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
