package domain

// ResourceStatus describes what happened when a file was looked up.
type ResourceStatus string

const (
	ResourceFound      ResourceStatus = "found"
	ResourceMissing    ResourceStatus = "missing"
	ResourceUnreadable ResourceStatus = "unreadable"
)

// CheckItem is the presence result for one expected path.
type CheckItem struct {
	Path        string
	Description string
	Found       bool
	Mandatory   bool
}

// PatternMatch is the outcome of one named pattern against one file.
// SampleLine is always empty for sensitive patterns.
type PatternMatch struct {
	Name       string
	Pattern    string
	Matched    bool
	Count      int
	SampleLine string
	Sensitive  bool
	Advice     string
}

// FileInspection groups the pattern results for a single file.
type FileInspection struct {
	Path    string
	Status  ResourceStatus
	Reason  string
	Matches []PatternMatch
}

// DependencyStatus reports whether an allow-listed package is declared.
type DependencyStatus struct {
	PackageName         string
	Present             bool
	DeclaredVersionSpec string
}

// RoleSummary lists which packages of a role (orm, framework, ...) are declared.
type RoleSummary struct {
	Role      string
	Exclusive bool
	Required  bool
	Present   []string
	Message   string
}

// Conflicting reports whether an exclusive role has more than one package declared.
func (r RoleSummary) Conflicting() bool {
	return r.Exclusive && len(r.Present) > 1
}

// DependencyReport is the manifest checker output.
type DependencyReport struct {
	Manifest string
	Status   ResourceStatus
	Entries  []DependencyStatus
	Roles    []RoleSummary
	Notes    []string
}

// PresentCount counts declared allow-listed packages.
func (d DependencyReport) PresentCount() int {
	n := 0
	for _, e := range d.Entries {
		if e.Present {
			n++
		}
	}
	return n
}

// EnvVarStatus reports where a required variable is declared. Values are never kept.
type EnvVarStatus struct {
	Name        string
	Declared    bool
	InProcess   bool
	Placeholder bool
}

// Found reports whether the variable is available from either source.
func (e EnvVarStatus) Found() bool {
	return e.Declared || e.InProcess
}

// EnvironmentReport is the environment file check output.
type EnvironmentReport struct {
	File          string
	Status        ResourceStatus
	DeclaredCount int // keys with a non-empty value
	Vars          []EnvVarStatus
}

// Severity ranks recommendations.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Recommendation is a remediation hint produced by the rule pass.
type Recommendation struct {
	Severity Severity
	Message  string
}
