package domain

import "time"

// Config mirrors .healthcheck.yaml.
type Config struct {
	ConfigFormatVersion string               `yaml:"config_format_version"`
	Project             ProjectSettings      `yaml:"project"`
	Files               []ExpectedFile       `yaml:"files"`
	Inspections         []InspectionSettings `yaml:"inspections"`
	Dependencies        DependencySettings   `yaml:"dependencies"`
	Environment         EnvironmentSettings  `yaml:"environment"`
	Runtime             RuntimeSettings      `yaml:"runtime"`
	Snapshot            SnapshotSettings     `yaml:"snapshot"`
	Collect             CollectSettings      `yaml:"collect"`
	Venv                VenvSettings         `yaml:"venv"`
}

// ProjectSettings names the project in report headers.
type ProjectSettings struct {
	Name string `yaml:"name"`
}

// ExpectedFile is one entry of the presence scan.
type ExpectedFile struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
	Mandatory   bool   `yaml:"mandatory,omitempty"`
	Sensitive   bool   `yaml:"sensitive,omitempty"`
}

// InspectionSettings binds a set of patterns to one file.
type InspectionSettings struct {
	File     string        `yaml:"file"`
	Patterns []PatternRule `yaml:"patterns"`
}

// PatternRule is a named regular expression. Sensitive rules only report presence.
type PatternRule struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Sensitive bool   `yaml:"sensitive,omitempty"`
	Advice    string `yaml:"advice,omitempty"`
}

// DependencySettings configures the manifest checker.
type DependencySettings struct {
	Manifest string           `yaml:"manifest"`
	Packages []string         `yaml:"packages"`
	Roles    []DependencyRole `yaml:"roles"`
}

// DependencyRole groups packages that play the same part in the stack.
type DependencyRole struct {
	Name      string   `yaml:"name"`
	Exclusive bool     `yaml:"exclusive,omitempty"`
	Required  bool     `yaml:"required,omitempty"`
	Packages  []string `yaml:"packages"`
	Message   string   `yaml:"message,omitempty"`
}

// EnvironmentSettings configures the environment file check.
type EnvironmentSettings struct {
	File         string   `yaml:"file"`
	Required     []string `yaml:"required"`
	Placeholders []string `yaml:"placeholders,omitempty"`
}

// RuntimeSettings configures the mandatory probes.
type RuntimeSettings struct {
	Skip           bool   `yaml:"skip,omitempty"`
	Interpreter    string `yaml:"interpreter"`
	AppModule      string `yaml:"app_module"`
	DatabaseEnvVar string `yaml:"database_env_var"`
	Timeout        string `yaml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to DefaultProbeTimeout.
func (r RuntimeSettings) TimeoutDuration() time.Duration {
	if r.Timeout == "" {
		return DefaultProbeTimeout
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return DefaultProbeTimeout
	}
	return d
}

// SnapshotSettings configures the directory tree snapshot.
type SnapshotSettings struct {
	Path     string   `yaml:"path"`
	Ignore   []string `yaml:"ignore"`
	MaxDepth int      `yaml:"max_depth"`
}

// CollectSettings configures the review bundle.
type CollectSettings struct {
	Output string `yaml:"output"`
}

// VenvSettings configures venv reset.
type VenvSettings struct {
	Dir string `yaml:"dir"`
}
