// Package collect bundles the project's key source files into one review file.
package collect

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	appconfig "github.com/doeshing/healthcheck/internal/application/config"
	"github.com/doeshing/healthcheck/internal/application/scan"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/pkg/logger"
	"github.com/doeshing/healthcheck/internal/ports"
)

// Service writes review bundles for a project.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Logger         ports.Logger
}

// Options describes one bundle run. Output defaults to the configured path and
// is resolved against Root when relative.
type Options struct {
	Root   string
	FS     fs.FS
	Output string
}

// Result lists what went into the bundle.
type Result struct {
	Path     string
	Included []string
	Skipped  []string
	Missing  []string
	Bytes    int64
}

// Run gathers every found expected file and inspected file, in config order,
// and overwrites the bundle. Sensitive files are listed as skipped and never copied.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = cfg.Collect.Output
	}
	if output == "" {
		output = domain.DefaultReviewFile
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(opts.Root, output)
	}

	content, result := Build(opts.FS, cfg)
	if err := os.WriteFile(output, content, domain.ReportFilePermissions); err != nil {
		return Result{}, fmt.Errorf("write bundle: %w", err)
	}
	result.Path = output
	result.Bytes = int64(len(content))
	s.log().Debug("review bundle written", map[string]interface{}{"path": output, "files": len(result.Included)})
	return result, nil
}

// Build renders the bundle content without touching the disk.
func Build(fsys fs.FS, cfg domain.Config) ([]byte, Result) {
	var (
		buf    bytes.Buffer
		result Result
	)
	for _, c := range candidates(cfg) {
		if c.sensitive {
			result.Skipped = append(result.Skipped, c.path)
			continue
		}
		name, ok := scan.FSPath(c.path)
		if !ok {
			result.Missing = append(result.Missing, c.path)
			continue
		}
		info, err := fs.Stat(fsys, name)
		if err != nil {
			result.Missing = append(result.Missing, c.path)
			continue
		}
		if info.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil || !utf8.Valid(data) {
			result.Skipped = append(result.Skipped, c.path)
			continue
		}
		fmt.Fprintf(&buf, "===== %s =====\n", c.path)
		buf.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
		result.Included = append(result.Included, c.path)
	}
	return buf.Bytes(), result
}

type candidate struct {
	path      string
	sensitive bool
}

func candidates(cfg domain.Config) []candidate {
	seen := make(map[string]int)
	var out []candidate
	add := func(path string, sensitive bool) {
		if i, ok := seen[path]; ok {
			out[i].sensitive = out[i].sensitive || sensitive
			return
		}
		seen[path] = len(out)
		out = append(out, candidate{path: path, sensitive: sensitive})
	}
	for _, f := range cfg.Files {
		add(f.Path, f.Sensitive)
	}
	for _, insp := range cfg.Inspections {
		add(insp.File, false)
	}
	if cfg.Dependencies.Manifest != "" {
		add(cfg.Dependencies.Manifest, false)
	}
	if cfg.Environment.File != "" {
		add(cfg.Environment.File, true)
	}
	return out
}

func (s *Service) log() ports.Logger {
	if s.Logger == nil {
		return logger.Nop{}
	}
	return s.Logger
}
