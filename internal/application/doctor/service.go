package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	appconfig "github.com/doeshing/healthcheck/internal/application/config"
	"github.com/doeshing/healthcheck/internal/application/scan"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/pkg/dburl"
	"github.com/doeshing/healthcheck/internal/pkg/logger"
	"github.com/doeshing/healthcheck/internal/ports"
)

// Service runs the project health checks: scan, inspect, check, then probes.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Interpreter    ports.InterpreterProbe
	Database       ports.DatabaseProbe
	Logger         ports.Logger
}

// Options describes one run. The project and the environment are passed in
// explicitly so the service never reads ambient process state.
type Options struct {
	Root        string
	FS          fs.FS
	Env         map[string]string
	Stages      []domain.Stage
	SkipRuntime bool
	// Timeout overrides runtime.timeout when positive.
	Timeout time.Duration
}

// Run executes checks and returns a report. The returned error is non-nil only
// for configuration problems or a failed mandatory check; in the latter case the
// report is still complete and should be rendered.
func (s *Service) Run(ctx context.Context, opts Options) (domain.HealthReport, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.HealthReport{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Timeout > 0 {
		cfg.Runtime.Timeout = opts.Timeout.String()
	}
	if err := appconfig.Validate(cfg); err != nil {
		return domain.HealthReport{}, fmt.Errorf("invalid config: %w", err)
	}

	stages := selectStages(opts.Stages)
	report := domain.HealthReport{
		Project: cfg.Project.Name,
		Root:    opts.Root,
		Stages:  stages,
	}
	var fault error

	presence := scan.Presence(opts.FS, cfg.Files)
	if report.Ran(domain.StageFiles) {
		report.Files = presence
		if missing := mandatoryMissing(presence); len(missing) > 0 {
			fault = &domain.EnvironmentFault{
				Check: domain.CheckFiles,
				Err:   fmt.Errorf("missing %s", strings.Join(missing, ", ")),
			}
		}
		s.log().Debug("presence scan finished", map[string]interface{}{"expected": len(presence), "found": report.FoundFiles()})
	}

	if report.Ran(domain.StagePatterns) {
		inspections, err := scan.InspectFiles(opts.FS, cfg.Inspections, presence)
		if err != nil {
			return domain.HealthReport{}, fmt.Errorf("invalid config: %w", err)
		}
		report.Inspections = inspections
	}

	if report.Ran(domain.StageDeps) {
		report.Dependencies = scan.CheckManifest(opts.FS, cfg.Dependencies)
		s.log().Debug("manifest checked", map[string]interface{}{"manifest": cfg.Dependencies.Manifest, "status": report.Dependencies.Status})
	}

	envValues, envStatus := scan.LoadEnvFile(opts.FS, cfg.Environment.File)
	if report.Ran(domain.StageEnv) {
		report.Environment = scan.CheckEnvironment(envValues, envStatus, cfg.Environment, opts.Env)
	}

	if report.Ran(domain.StageRuntime) {
		if opts.SkipRuntime || cfg.Runtime.Skip {
			report.Runtime = skipped(probeOrder, "runtime checks disabled")
		} else {
			dbURL := scan.Lookup(cfg.Runtime.DatabaseEnvVar, envValues, opts.Env)
			checks, runtimeFault := s.runProbes(ctx, opts.Root, cfg.Runtime, dbURL)
			report.Runtime = checks
			if fault == nil {
				fault = runtimeFault
			}
		}
	}

	report.Recommendations = Recommend(report, cfg)
	return report, fault
}

var probeOrder = []string{domain.CheckInterpreter, domain.CheckImport, domain.CheckDatabase}

// runProbes runs the mandatory probes in order and stops at the first failure.
func (s *Service) runProbes(ctx context.Context, root string, rt domain.RuntimeSettings, dbURL string) ([]domain.HealthCheck, error) {
	var checks []domain.HealthCheck
	timeout := rt.TimeoutDuration()

	for i, name := range probeOrder {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		details, err := s.probe(pctx, name, root, rt, dbURL)
		expired := errors.Is(pctx.Err(), context.DeadlineExceeded)
		cancel()
		if err != nil {
			if expired || errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("timed out after %s", timeout)
			}
			s.log().Error("mandatory check failed", err, map[string]interface{}{"check": name})
			checks = append(checks, fail(name, err.Error()))
			checks = append(checks, skipped(probeOrder[i+1:], fmt.Sprintf("not run: %s failed", name))...)
			return checks, &domain.EnvironmentFault{Check: name, Err: err}
		}
		checks = append(checks, ok(name, details))
	}
	return checks, nil
}

func (s *Service) probe(ctx context.Context, name, root string, rt domain.RuntimeSettings, dbURL string) (string, error) {
	switch name {
	case domain.CheckInterpreter:
		if s.Interpreter == nil {
			return "", errors.New("interpreter probe not configured")
		}
		version, err := s.Interpreter.Version(ctx)
		if err != nil {
			return "", err
		}
		return version, nil
	case domain.CheckImport:
		if s.Interpreter == nil {
			return "", errors.New("interpreter probe not configured")
		}
		if err := s.Interpreter.Import(ctx, root, rt.AppModule); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s imports cleanly", rt.AppModule), nil
	case domain.CheckDatabase:
		if s.Database == nil {
			return "", errors.New("database probe not configured")
		}
		if dbURL == "" {
			return "", fmt.Errorf("%s is not set", rt.DatabaseEnvVar)
		}
		info, err := dburl.Parse(dbURL)
		if err != nil {
			return "", err
		}
		if err := s.Database.Ping(ctx, dbURL); err != nil {
			return "", err
		}
		return fmt.Sprintf("connected to %s", info.Redacted()), nil
	default:
		return "", fmt.Errorf("unknown probe %s", name)
	}
}

func (s *Service) log() ports.Logger {
	if s.Logger == nil {
		return logger.Nop{}
	}
	return s.Logger
}

func selectStages(requested []domain.Stage) []domain.Stage {
	if len(requested) == 0 {
		return domain.AllStages
	}
	want := make(map[domain.Stage]bool, len(requested))
	for _, st := range requested {
		want[st] = true
	}
	var stages []domain.Stage
	for _, st := range domain.AllStages {
		if want[st] {
			stages = append(stages, st)
		}
	}
	return stages
}

// ParseStages converts --only values into stages.
func ParseStages(values []string) ([]domain.Stage, error) {
	var stages []domain.Stage
	for _, v := range values {
		st := domain.Stage(strings.ToLower(strings.TrimSpace(v)))
		if st == "" {
			continue
		}
		valid := false
		for _, known := range domain.AllStages {
			if st == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown check %q (want files|patterns|deps|env|runtime)", v)
		}
		stages = append(stages, st)
	}
	return stages, nil
}

func mandatoryMissing(items []domain.CheckItem) []string {
	var missing []string
	for _, item := range items {
		if item.Mandatory && !item.Found {
			missing = append(missing, item.Path)
		}
	}
	return missing
}

func skipped(names []string, details string) []domain.HealthCheck {
	checks := make([]domain.HealthCheck, 0, len(names))
	for _, name := range names {
		checks = append(checks, domain.HealthCheck{Name: name, Status: domain.HealthSkip, Details: details})
	}
	return checks
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
