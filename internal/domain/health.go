package domain

// HealthStatus indicates probe outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
	HealthSkip  HealthStatus = "skip"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates every stage of one run. It is assembled by the doctor
// service and treated as read-only once returned.
type HealthReport struct {
	Project         string
	Root            string
	Stages          []Stage
	Files           []CheckItem
	Inspections     []FileInspection
	Dependencies    DependencyReport
	Environment     EnvironmentReport
	Runtime         []HealthCheck
	Recommendations []Recommendation
}

// Ran reports whether the given stage was part of this run.
func (r HealthReport) Ran(stage Stage) bool {
	for _, s := range r.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// MissingFiles returns the expected files that were not found, in scan order.
func (r HealthReport) MissingFiles() []CheckItem {
	var missing []CheckItem
	for _, item := range r.Files {
		if !item.Found {
			missing = append(missing, item)
		}
	}
	return missing
}

// FoundFiles counts expected files that exist.
func (r HealthReport) FoundFiles() int {
	return len(r.Files) - len(r.MissingFiles())
}

// RuntimeFailed reports whether any runtime probe errored.
func (r HealthReport) RuntimeFailed() bool {
	for _, check := range r.Runtime {
		if check.Status == HealthError {
			return true
		}
	}
	return false
}

// CountRecommendations returns the number of recommendations at the given severity.
func (r HealthReport) CountRecommendations(sev Severity) int {
	n := 0
	for _, rec := range r.Recommendations {
		if rec.Severity == sev {
			n++
		}
	}
	return n
}
