package scan

import (
	"io/fs"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/healthcheck/internal/domain"
)

// LoadEnvFile parses a KEY=value file. The returned map holds secrets and must
// only be used to resolve values, never rendered.
func LoadEnvFile(fsys fs.FS, name string) (map[string]string, domain.ResourceStatus) {
	if !exists(fsys, name) {
		return nil, domain.ResourceMissing
	}
	content, reason := readText(fsys, name)
	if reason != "" {
		return nil, domain.ResourceUnreadable
	}
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, domain.ResourceUnreadable
	}
	return values, domain.ResourceFound
}

// CheckEnvironment reports each required variable. A variable is declared when
// the file assigns it a non-empty value; process holds the caller's environment.
func CheckEnvironment(values map[string]string, status domain.ResourceStatus, settings domain.EnvironmentSettings, process map[string]string) domain.EnvironmentReport {
	report := domain.EnvironmentReport{
		File:   settings.File,
		Status: status,
	}
	for _, v := range values {
		if v != "" {
			report.DeclaredCount++
		}
	}
	for _, name := range settings.Required {
		fileValue := values[name]
		procValue := process[name]
		report.Vars = append(report.Vars, domain.EnvVarStatus{
			Name:        name,
			Declared:    fileValue != "",
			InProcess:   procValue != "",
			Placeholder: isPlaceholder(fileValue, settings.Placeholders) || isPlaceholder(procValue, settings.Placeholders),
		})
	}
	return report
}

// Lookup resolves a variable from the process environment first, then the env file.
func Lookup(name string, values, process map[string]string) string {
	if v := process[name]; v != "" {
		return v
	}
	return values[name]
}

func isPlaceholder(value string, placeholders []string) bool {
	if value == "" {
		return false
	}
	for _, p := range placeholders {
		if strings.EqualFold(strings.TrimSpace(value), p) {
			return true
		}
	}
	return false
}
