package scan

import (
	"regexp"
	"strings"

	"github.com/doeshing/healthcheck/internal/pkg/dburl"
)

const redactedValue = "****"

var secretAssignRe = regexp.MustCompile(`(?i)([a-z0-9_]*(?:key|secret|password|passwd|token|database_url)[a-z0-9_]*["']?\s*(?::\s*[a-z_][\w.\[\]]*\s*)?[:=]\s*)([rbfu]{0,2}"[^"]*"|[rbfu]{0,2}'[^']*'|[^\s"'(),#=]+)`)

// RedactLine masks URL credentials and the values assigned to secret-looking
// names (KEY, SECRET, PASSWORD, TOKEN, DATABASE_URL). Expressions such as
// os.getenv("SECRET_KEY") are left readable.
func RedactLine(line string) string {
	line = dburl.MaskUserinfo(line)

	var b strings.Builder
	last := 0
	for _, m := range secretAssignRe.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[4], m[5]
		if end < len(line) && strings.ContainsRune("([", rune(line[end])) {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(maskValue(line[start:end]))
		last = end
	}
	b.WriteString(line[last:])
	return b.String()
}

func maskValue(value string) string {
	q := strings.IndexAny(value, `"'`)
	if q < 0 {
		return redactedValue
	}
	if len(value)-q <= 2 {
		return value
	}
	return value[:q+1] + redactedValue + value[len(value)-1:]
}
