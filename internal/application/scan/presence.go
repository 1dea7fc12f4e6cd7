// Package scan holds the read-only project checks. Every function takes the
// project as an fs.FS so checks never touch ambient process state and can be
// exercised against fstest.MapFS.
package scan

import (
	"io/fs"
	"path"
	"strings"

	"github.com/doeshing/healthcheck/internal/domain"
)

// Presence reports, in input order, whether each expected path exists.
// Directories count as present. Absence is a result, not an error.
func Presence(fsys fs.FS, expected []domain.ExpectedFile) []domain.CheckItem {
	items := make([]domain.CheckItem, 0, len(expected))
	for _, file := range expected {
		items = append(items, domain.CheckItem{
			Path:        file.Path,
			Description: file.Description,
			Found:       exists(fsys, file.Path),
			Mandatory:   file.Mandatory,
		})
	}
	return items
}

func exists(fsys fs.FS, name string) bool {
	clean, ok := FSPath(name)
	if !ok {
		return false
	}
	_, err := fs.Stat(fsys, clean)
	return err == nil
}

// FSPath converts a config path such as "./app/main.py" or "app\main.py"
// into the slash-separated form fs.FS expects.
func FSPath(name string) (string, bool) {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	name = strings.TrimPrefix(path.Clean(name), "./")
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
