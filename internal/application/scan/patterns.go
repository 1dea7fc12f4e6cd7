package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/healthcheck/internal/domain"
)

const maxInspectBytes = 1 << 20

// Inspector evaluates a fixed, ordered set of named patterns against file content.
type Inspector struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule domain.PatternRule
}

// NewInspector compiles the rules. An invalid expression is a configuration error.
func NewInspector(rules []domain.PatternRule) (*Inspector, error) {
	compiled := make([]compiledPattern, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", rule.Name, err)
		}
		compiled = append(compiled, compiledPattern{re: re, rule: rule})
	}
	return &Inspector{patterns: compiled}, nil
}

// Inspect returns one PatternMatch per rule, in rule order.
func (i *Inspector) Inspect(content string) []domain.PatternMatch {
	lines := strings.Split(content, "\n")
	matches := make([]domain.PatternMatch, 0, len(i.patterns))
	for _, p := range i.patterns {
		m := domain.PatternMatch{
			Name:      p.rule.Name,
			Pattern:   p.rule.Pattern,
			Sensitive: p.rule.Sensitive,
			Advice:    p.rule.Advice,
			Matched:   p.re.MatchString(content),
		}
		if m.Matched {
			for _, line := range lines {
				if !p.re.MatchString(line) {
					continue
				}
				if m.Count == 0 && !m.Sensitive {
					m.SampleLine = sampleLine(line)
				}
				m.Count++
			}
			// multi-line expressions match the content but no single line
			if m.Count == 0 {
				m.Count = 1
			}
		}
		matches = append(matches, m)
	}
	return matches
}

func sampleLine(line string) string {
	line = RedactLine(strings.TrimSpace(line))
	if utf8.RuneCountInString(line) <= domain.MaxSampleLineRunes {
		return line
	}
	runes := []rune(line)
	return string(runes[:domain.MaxSampleLineRunes]) + "..."
}

// InspectFiles runs each inspection against its file. Files the presence scan
// reported missing are not opened. Read failures mark the file unreadable and
// never abort the remaining inspections.
func InspectFiles(fsys fs.FS, inspections []domain.InspectionSettings, presence []domain.CheckItem) ([]domain.FileInspection, error) {
	known := make(map[string]bool, len(presence))
	for _, item := range presence {
		known[item.Path] = item.Found
	}

	results := make([]domain.FileInspection, 0, len(inspections))
	for _, insp := range inspections {
		inspector, err := NewInspector(insp.Patterns)
		if err != nil {
			return nil, fmt.Errorf("inspection %s: %w", insp.File, err)
		}

		result := domain.FileInspection{Path: insp.File}
		found, scanned := known[insp.File]
		if !scanned {
			found = exists(fsys, insp.File)
		}
		if !found {
			result.Status = domain.ResourceMissing
			results = append(results, result)
			continue
		}

		content, reason := readText(fsys, insp.File)
		if reason != "" {
			result.Status = domain.ResourceUnreadable
			result.Reason = reason
			results = append(results, result)
			continue
		}
		result.Status = domain.ResourceFound
		result.Matches = inspector.Inspect(content)
		results = append(results, result)
	}
	return results, nil
}

// readText returns file content, or a short human-readable reason it could not be used.
func readText(fsys fs.FS, name string) (string, string) {
	clean, ok := FSPath(name)
	if !ok {
		return "", "invalid path"
	}
	info, err := fs.Stat(fsys, clean)
	if err != nil {
		return "", describeReadError(err)
	}
	if info.IsDir() {
		return "", "is a directory"
	}
	if info.Size() > maxInspectBytes {
		return "", "larger than 1 MiB"
	}
	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return "", describeReadError(err)
	}
	if !utf8.Valid(data) {
		return "", "not valid UTF-8"
	}
	return strings.TrimPrefix(string(data), "\ufeff"), ""
}

func describeReadError(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, fs.ErrNotExist):
		return "disappeared during scan"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return pathErr.Err.Error()
		}
		return err.Error()
	}
}
