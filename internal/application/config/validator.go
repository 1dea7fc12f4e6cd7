package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/doeshing/healthcheck/internal/application/scan"
	"github.com/doeshing/healthcheck/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Files) == 0 {
		return errors.New("at least one expected file must be configured")
	}
	for i, f := range cfg.Files {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("files[%d].path must be set", i)
		}
	}
	if err := validateInspections(cfg.Inspections); err != nil {
		return err
	}
	if err := validateDependencies(cfg.Dependencies); err != nil {
		return err
	}
	if err := validateRuntime(cfg.Runtime); err != nil {
		return err
	}
	if cfg.Snapshot.MaxDepth < 0 {
		return fmt.Errorf("snapshot.max_depth must be >= 0")
	}
	return nil
}

func validateInspections(inspections []domain.InspectionSettings) error {
	for _, insp := range inspections {
		if insp.File == "" {
			return errors.New("inspections[].file must be set")
		}
		seen := map[string]bool{}
		for _, rule := range insp.Patterns {
			if rule.Name == "" {
				return fmt.Errorf("inspection %s: pattern name must be set", insp.File)
			}
			if seen[rule.Name] {
				return fmt.Errorf("inspection %s: duplicate pattern name %q", insp.File, rule.Name)
			}
			seen[rule.Name] = true
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return fmt.Errorf("inspection %s: pattern %q invalid: %w", insp.File, rule.Name, err)
			}
		}
	}
	return nil
}

func validateDependencies(deps domain.DependencySettings) error {
	allowed := map[string]bool{}
	for _, name := range deps.Packages {
		allowed[scan.NormalizeName(name)] = true
	}
	for _, role := range deps.Roles {
		if role.Name == "" {
			return errors.New("dependencies.roles[].name must be set")
		}
		for _, pkg := range role.Packages {
			if !allowed[scan.NormalizeName(pkg)] {
				return fmt.Errorf("role %s references %s which is not in dependencies.packages", role.Name, pkg)
			}
		}
	}
	return nil
}

func validateRuntime(rt domain.RuntimeSettings) error {
	if rt.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(rt.Timeout)
	if err != nil {
		return fmt.Errorf("runtime.timeout invalid: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("runtime.timeout must be > 0")
	}
	return nil
}
