// Package venv recreates the project's Python virtual environment.
package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/pkg/logger"
	"github.com/doeshing/healthcheck/internal/ports"
)

// Service resets virtual environments through a CommandRunner.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Runner         ports.CommandRunner
	Logger         ports.Logger
}

// Options describes one reset. Interpreter overrides runtime.interpreter.
type Options struct {
	Root        string
	Interpreter string
}

// Result reports what the reset did.
type Result struct {
	Dir       string
	Removed   bool
	Installed string
}

// Plan resolves the venv directory without touching anything, so callers can
// show it before asking for confirmation.
func (s *Service) Plan(ctx context.Context, opts Options) (string, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return venvDir(opts.Root, cfg.Venv.Dir)
}

// Reset removes the venv directory, recreates it, and installs the manifest
// into it when the manifest exists.
func (s *Service) Reset(ctx context.Context, opts Options) (Result, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}
	dir, err := venvDir(opts.Root, cfg.Venv.Dir)
	if err != nil {
		return Result{}, err
	}
	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = cfg.Runtime.Interpreter
	}
	if interpreter == "" {
		interpreter = domain.DefaultInterpreter
	}

	result := Result{Dir: dir}
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return result, fmt.Errorf("remove %s: %w", dir, err)
		}
		result.Removed = true
		s.log().Info("removed virtual environment", map[string]interface{}{"dir": dir})
	}

	if err := s.run(ctx, opts.Root, interpreter, "-m", "venv", dir); err != nil {
		return result, err
	}

	manifest := cfg.Dependencies.Manifest
	if manifest == "" {
		return result, nil
	}
	if _, err := os.Stat(filepath.Join(opts.Root, manifest)); err != nil {
		s.log().Warn("manifest not found, skipping install", map[string]interface{}{"manifest": manifest})
		return result, nil
	}
	if err := s.run(ctx, opts.Root, venvPython(dir), "-m", "pip", "install", "-r", manifest); err != nil {
		return result, err
	}
	result.Installed = manifest
	return result, nil
}

func (s *Service) run(ctx context.Context, dir, name string, args ...string) error {
	s.log().Debug("running", map[string]interface{}{"cmd": name, "args": strings.Join(args, " ")})
	result, err := s.Runner.Run(ctx, dir, name, args...)
	if err == nil {
		return nil
	}
	step := filepath.Base(name) + " " + strings.Join(args, " ")
	lines := strings.Split(strings.TrimSpace(result.Stderr), "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return fmt.Errorf("%s: %s", step, last)
	}
	return fmt.Errorf("%s: %w", step, err)
}

// venvDir resolves the configured directory and refuses anything that is not
// strictly inside root.
func venvDir(root, configured string) (string, error) {
	if configured == "" {
		configured = domain.DefaultVenvDir
	}
	if filepath.IsAbs(configured) {
		return "", fmt.Errorf("venv.dir %q must be relative to the project root", configured)
	}
	clean := filepath.Clean(configured)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("venv.dir must name a directory inside the project root")
	}
	return filepath.Join(root, clean), nil
}

func venvPython(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

func (s *Service) log() ports.Logger {
	if s.Logger == nil {
		return logger.Nop{}
	}
	return s.Logger
}
