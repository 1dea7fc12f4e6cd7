package scan

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/doeshing/healthcheck/internal/domain"
)

// ManifestEntry is one parsed requirement declaration.
type ManifestEntry struct {
	Name        string
	VersionSpec string
	Line        int
}

var (
	requirementRe = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(\[[^\]]*\])?\s*(.*)$`)
	specRe        = regexp.MustCompile(`^(===|==|>=|<=|!=|~=|<|>)\s*[^\s]+(\s*,\s*(===|==|>=|<=|!=|~=|<|>)\s*[^\s,]+)*$`)
	separatorRe   = regexp.MustCompile(`[-_.]+`)
)

// ParseManifest parses requirements-style text. Unknown formats are skipped and
// reported as notes; parsing never fails. Notes never echo the offending line,
// which may carry an access token in a URL.
func ParseManifest(text string) ([]ManifestEntry, []string) {
	var (
		entries []ManifestEntry
		notes   []string
	)
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := inlineComment(line); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") || strings.Contains(line, " @ ") {
			notes = append(notes, fmt.Sprintf("line %d: direct URL requirement skipped", lineNo))
			continue
		}
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		m := requirementRe.FindStringSubmatch(line)
		if m == nil {
			notes = append(notes, fmt.Sprintf("line %d: unrecognized declaration skipped", lineNo))
			continue
		}
		spec := strings.TrimSpace(m[3])
		if spec != "" && !specRe.MatchString(spec) {
			notes = append(notes, fmt.Sprintf("line %d: unrecognized version constraint for %s", lineNo, NormalizeName(m[1])))
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:        NormalizeName(m[1]),
			VersionSpec: strings.Join(strings.Fields(spec), ""),
			Line:        lineNo,
		})
	}
	return entries, notes
}

// NormalizeName lowercases a package name and folds runs of "-", "_" and "."
// into a single "-" so "Pydantic_Settings" and "pydantic-settings" compare equal.
func NormalizeName(name string) string {
	return separatorRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

func inlineComment(line string) int {
	for _, marker := range []string{" #", "\t#"} {
		if idx := strings.Index(line, marker); idx >= 0 {
			return idx
		}
	}
	return -1
}

// CheckDependencies reports each allow-listed package in allow-list order, and
// which packages of every role are declared. The first declaration of a
// package wins when it appears more than once.
func CheckDependencies(entries []ManifestEntry, settings domain.DependencySettings) ([]domain.DependencyStatus, []domain.RoleSummary) {
	declared := make(map[string]ManifestEntry, len(entries))
	for _, e := range entries {
		if _, ok := declared[e.Name]; !ok {
			declared[e.Name] = e
		}
	}

	statuses := make([]domain.DependencyStatus, 0, len(settings.Packages))
	for _, name := range settings.Packages {
		entry, ok := declared[NormalizeName(name)]
		statuses = append(statuses, domain.DependencyStatus{
			PackageName:         name,
			Present:             ok,
			DeclaredVersionSpec: entry.VersionSpec,
		})
	}

	roles := make([]domain.RoleSummary, 0, len(settings.Roles))
	for _, role := range settings.Roles {
		summary := domain.RoleSummary{Role: role.Name, Exclusive: role.Exclusive, Required: role.Required, Message: role.Message}
		for _, pkg := range role.Packages {
			if _, ok := declared[NormalizeName(pkg)]; ok {
				summary.Present = append(summary.Present, pkg)
			}
		}
		roles = append(roles, summary)
	}
	return statuses, roles
}

// CheckManifest reads the manifest from fsys and runs CheckDependencies. A
// missing or unreadable manifest still yields one absent status per package.
func CheckManifest(fsys fs.FS, settings domain.DependencySettings) domain.DependencyReport {
	report := domain.DependencyReport{Manifest: settings.Manifest}

	var entries []ManifestEntry
	switch {
	case !exists(fsys, settings.Manifest):
		report.Status = domain.ResourceMissing
	default:
		content, reason := readText(fsys, settings.Manifest)
		if reason != "" {
			report.Status = domain.ResourceUnreadable
			report.Notes = append(report.Notes, fmt.Sprintf("%s: %s", settings.Manifest, reason))
			break
		}
		report.Status = domain.ResourceFound
		entries, report.Notes = ParseManifest(content)
	}

	report.Entries, report.Roles = CheckDependencies(entries, settings)
	return report
}
