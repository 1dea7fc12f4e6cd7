package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/doeshing/healthcheck/internal/domain"
)

// RenderOptions controls report output.
type RenderOptions struct {
	Color bool
}

type palette struct {
	ok, warn, fail, muted, heading *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		muted:   color.New(color.Faint),
		heading: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.muted, p.heading} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// RenderReport prints the sectioned report. Output depends only on the report,
// so an unchanged project renders byte-identical text.
func RenderReport(w io.Writer, report domain.HealthReport, opts RenderOptions) {
	r := reportWriter{w: w, p: newPalette(opts.Color)}

	title := "Project health"
	if report.Project != "" {
		title += ": " + report.Project
	}
	r.line(r.p.heading.Sprint(title))
	r.line("Root: " + report.Root)

	r.summary(report)
	r.files(report)
	r.patterns(report)
	r.dependencies(report)
	r.environment(report)
	r.runtime(report)
	r.recommendations(report)
}

type reportWriter struct {
	w io.Writer
	p palette
}

func (r reportWriter) line(s string) {
	fmt.Fprintln(r.w, s)
}

func (r reportWriter) linef(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r reportWriter) section(name string) {
	r.line("")
	r.line(r.p.heading.Sprintf("== %s ==", name))
}

func (r reportWriter) notRun() {
	r.line(r.p.muted.Sprint("  not run"))
}

func (r reportWriter) summary(report domain.HealthReport) {
	r.section("Summary")
	row := func(label, value string) {
		r.linef("  %-16s %s", label+":", value)
	}
	if report.Ran(domain.StageFiles) {
		row("Files", fmt.Sprintf("%d/%d found", report.FoundFiles(), len(report.Files)))
	}
	if report.Ran(domain.StagePatterns) {
		matched, files := 0, 0
		for _, insp := range report.Inspections {
			if insp.Status == domain.ResourceFound {
				files++
			}
			for _, m := range insp.Matches {
				if m.Matched {
					matched++
				}
			}
		}
		row("Patterns", fmt.Sprintf("%d matched in %d inspected files", matched, files))
	}
	if report.Ran(domain.StageDeps) {
		deps := report.Dependencies
		if deps.Status == domain.ResourceFound {
			row("Dependencies", fmt.Sprintf("%d/%d tracked packages declared in %s", deps.PresentCount(), len(deps.Entries), deps.Manifest))
		} else {
			row("Dependencies", fmt.Sprintf("%s %s", deps.Manifest, deps.Status))
		}
	}
	if report.Ran(domain.StageEnv) {
		env := report.Environment
		found := 0
		for _, v := range env.Vars {
			if v.Found() {
				found++
			}
		}
		row("Environment", fmt.Sprintf("%d/%d required variables set, %s %s", found, len(env.Vars), env.File, env.Status))
	}
	if report.Ran(domain.StageRuntime) {
		parts := make([]string, 0, len(report.Runtime))
		for _, c := range report.Runtime {
			parts = append(parts, fmt.Sprintf("%s %s", c.Name, c.Status))
		}
		row("Runtime", strings.Join(parts, ", "))
	}
	row("Recommendations", fmt.Sprintf("%d critical, %d warning, %d info",
		report.CountRecommendations(domain.SeverityCritical),
		report.CountRecommendations(domain.SeverityWarning),
		report.CountRecommendations(domain.SeverityInfo)))
}

func (r reportWriter) files(report domain.HealthReport) {
	r.section("Files")
	if !report.Ran(domain.StageFiles) {
		r.notRun()
		return
	}
	missing := report.MissingFiles()
	if len(missing) == 0 {
		r.line(r.p.ok.Sprintf("  All %d expected paths present.", len(report.Files)))
		return
	}
	for _, item := range missing {
		tag := r.p.warn.Sprint("[MISSING]")
		if item.Mandatory {
			tag = r.p.fail.Sprint("[MISSING]")
		}
		text := fmt.Sprintf("  %s %s", tag, item.Path)
		if item.Description != "" {
			text += " - " + item.Description
		}
		if item.Mandatory {
			text += " (required)"
		}
		r.line(text)
	}
}

func (r reportWriter) patterns(report domain.HealthReport) {
	r.section("Patterns")
	if !report.Ran(domain.StagePatterns) {
		r.notRun()
		return
	}
	if len(report.Inspections) == 0 {
		r.line(r.p.muted.Sprint("  no inspections configured"))
		return
	}
	for _, insp := range report.Inspections {
		switch insp.Status {
		case domain.ResourceMissing:
			r.linef("  %s %s", insp.Path, r.p.muted.Sprint("(missing, not inspected)"))
			continue
		case domain.ResourceUnreadable:
			r.linef("  %s %s", insp.Path, r.p.warn.Sprintf("(unreadable: %s)", insp.Reason))
			continue
		}
		r.line("  " + insp.Path)
		for _, m := range insp.Matches {
			if !m.Matched {
				r.linef("    %s %s", r.p.muted.Sprint("[ ]"), m.Name)
				continue
			}
			text := fmt.Sprintf("    %s %s", r.p.ok.Sprint("[x]"), m.Name)
			if m.Count > 1 {
				text += fmt.Sprintf(" (%d lines)", m.Count)
			}
			switch {
			case m.Sensitive:
				text += r.p.muted.Sprint("  [sample hidden]")
			case m.SampleLine != "":
				text += r.p.muted.Sprint("  " + m.SampleLine)
			}
			r.line(text)
		}
	}
}

func (r reportWriter) dependencies(report domain.HealthReport) {
	r.section("Dependencies")
	if !report.Ran(domain.StageDeps) {
		r.notRun()
		return
	}
	deps := report.Dependencies
	if deps.Status != domain.ResourceFound {
		r.line(r.p.warn.Sprintf("  %s %s", deps.Manifest, deps.Status))
		return
	}
	r.line("  " + deps.Manifest)
	for _, e := range deps.Entries {
		if !e.Present {
			r.linef("    %s %s", r.p.muted.Sprint("[ ]"), e.PackageName)
			continue
		}
		text := fmt.Sprintf("    %s %s", r.p.ok.Sprint("[x]"), e.PackageName)
		if e.DeclaredVersionSpec != "" {
			text += " " + e.DeclaredVersionSpec
		}
		r.line(text)
	}
	if len(deps.Roles) > 0 {
		r.line("  Stack:")
		for _, role := range deps.Roles {
			present := "none"
			if len(role.Present) > 0 {
				present = strings.Join(role.Present, ", ")
			}
			text := fmt.Sprintf("    %-16s %s", role.Role+":", present)
			switch {
			case role.Conflicting():
				text += " " + r.p.warn.Sprint("(conflict)")
			case role.Required && len(role.Present) == 0:
				text += " " + r.p.warn.Sprint("(required)")
			}
			r.line(text)
		}
	}
	if len(deps.Notes) > 0 {
		r.line("  Notes:")
		for _, note := range deps.Notes {
			r.line("    " + r.p.muted.Sprint(note))
		}
	}
}

func (r reportWriter) environment(report domain.HealthReport) {
	r.section("Environment")
	if !report.Ran(domain.StageEnv) {
		r.notRun()
		return
	}
	env := report.Environment
	switch env.Status {
	case domain.ResourceFound:
		r.linef("  %s (%d declared)", env.File, env.DeclaredCount)
	default:
		r.line("  " + r.p.warn.Sprintf("%s %s", env.File, env.Status))
	}
	for _, v := range env.Vars {
		var tag string
		switch {
		case v.Placeholder:
			tag = r.p.fail.Sprint("[PLACEHOLDER]")
		case v.Found():
			tag = r.p.ok.Sprint("[SET]")
		default:
			tag = r.p.warn.Sprint("[UNSET]")
		}
		text := fmt.Sprintf("    %s %s", tag, v.Name)
		if src := envSource(v); src != "" {
			text += r.p.muted.Sprint("  " + src)
		}
		r.line(text)
	}
}

func envSource(v domain.EnvVarStatus) string {
	switch {
	case v.Declared && v.InProcess:
		return "file, process"
	case v.Declared:
		return "file"
	case v.InProcess:
		return "process"
	default:
		return ""
	}
}

func (r reportWriter) runtime(report domain.HealthReport) {
	r.section("Runtime")
	if !report.Ran(domain.StageRuntime) {
		r.notRun()
		return
	}
	for _, c := range report.Runtime {
		r.linef("  %s %s - %s", r.statusTag(c.Status), c.Name, c.Details)
	}
}

func (r reportWriter) statusTag(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return r.p.ok.Sprint("[OK]")
	case domain.HealthWarn:
		return r.p.warn.Sprint("[WARN]")
	case domain.HealthError:
		return r.p.fail.Sprint("[ERROR]")
	default:
		return r.p.muted.Sprint("[SKIP]")
	}
}

func (r reportWriter) recommendations(report domain.HealthReport) {
	r.section("Recommendations")
	if len(report.Recommendations) == 0 {
		r.line(r.p.ok.Sprint("  Nothing to fix."))
		return
	}
	for _, rec := range report.Recommendations {
		var tag string
		switch rec.Severity {
		case domain.SeverityCritical:
			tag = r.p.fail.Sprint("[CRITICAL]")
		case domain.SeverityWarning:
			tag = r.p.warn.Sprint("[WARNING]")
		default:
			tag = r.p.muted.Sprint("[INFO]")
		}
		r.linef("  %s %s", tag, rec.Message)
	}
}
