package doctor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/doeshing/healthcheck/internal/domain"
)

// Recommend evaluates the remediation rules against a finished report. The
// output depends only on the report and config, so identical inputs always
// give identical text.
func Recommend(report domain.HealthReport, cfg domain.Config) []domain.Recommendation {
	var recs []domain.Recommendation
	add := func(sev domain.Severity, format string, args ...interface{}) {
		recs = append(recs, domain.Recommendation{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	for _, check := range report.Runtime {
		if check.Status == domain.HealthError {
			add(domain.SeverityCritical, "Fix the %s check before starting the app: %s", check.Name, check.Details)
		}
	}

	var advisoryMissing []string
	for _, item := range report.MissingFiles() {
		if item.Mandatory {
			add(domain.SeverityCritical, "Create %s (%s); it is required.", item.Path, describe(item))
			continue
		}
		advisoryMissing = append(advisoryMissing, item.Path)
	}

	if report.Ran(domain.StageEnv) {
		env := report.Environment
		var missing, placeholders []string
		for _, v := range env.Vars {
			if !v.Found() {
				missing = append(missing, v.Name)
			}
			if v.Placeholder {
				placeholders = append(placeholders, v.Name)
			}
		}
		switch env.Status {
		case domain.ResourceMissing:
			if len(missing) > 0 {
				add(domain.SeverityWarning, "Create %s and declare: %s.", env.File, strings.Join(missing, ", "))
			} else {
				add(domain.SeverityWarning, "Create %s so local runs do not depend on the shell environment.", env.File)
			}
		case domain.ResourceUnreadable:
			add(domain.SeverityWarning, "%s could not be parsed; check it is plain KEY=value lines.", env.File)
		default:
			if len(missing) > 0 {
				add(domain.SeverityWarning, "Declare missing variables in %s: %s.", env.File, strings.Join(missing, ", "))
			}
		}
		if len(placeholders) > 0 {
			add(domain.SeverityCritical, "Replace placeholder values for %s before deploying.", strings.Join(placeholders, ", "))
		}
	}

	if report.Ran(domain.StageDeps) {
		deps := report.Dependencies
		switch deps.Status {
		case domain.ResourceMissing:
			add(domain.SeverityWarning, "Create %s listing the project's dependencies.", deps.Manifest)
		case domain.ResourceUnreadable:
			add(domain.SeverityWarning, "%s could not be read.", deps.Manifest)
		}
		for _, role := range deps.Roles {
			switch {
			case role.Conflicting():
				msg := role.Message
				if msg == "" {
					msg = fmt.Sprintf("Choose one %s package.", role.Role)
				}
				add(domain.SeverityWarning, "%s Declared together: %s.", msg, strings.Join(role.Present, ", "))
			case role.Required && len(role.Present) == 0 && deps.Status == domain.ResourceFound:
				add(domain.SeverityWarning, "No %s package is declared in %s.", role.Role, deps.Manifest)
			}
		}
		if len(deps.Notes) > 0 && deps.Status == domain.ResourceFound {
			add(domain.SeverityInfo, "%s: %d line(s) skipped while parsing.", deps.Manifest, len(deps.Notes))
		}
	}

	for _, insp := range report.Inspections {
		if insp.Status == domain.ResourceUnreadable {
			add(domain.SeverityInfo, "%s could not be inspected (%s).", insp.Path, insp.Reason)
			continue
		}
		for _, m := range insp.Matches {
			if m.Matched && m.Advice != "" {
				add(domain.SeverityWarning, "%s", m.Advice)
			}
		}
	}

	if len(advisoryMissing) > 0 {
		add(domain.SeverityInfo, "%d expected path(s) missing: %s.", len(advisoryMissing), strings.Join(advisoryMissing, ", "))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return severityRank(recs[i].Severity) > severityRank(recs[j].Severity)
	})
	return recs
}

func describe(item domain.CheckItem) string {
	if item.Description == "" {
		return "expected file"
	}
	return strings.ToLower(item.Description)
}

func severityRank(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 3
	case domain.SeverityWarning:
		return 2
	default:
		return 1
	}
}
