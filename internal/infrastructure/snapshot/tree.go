package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/ports"
)

// TreeWriter renders a project directory as a box-drawing tree.
type TreeWriter struct {
	now   func() time.Time
	newID func() string
}

// NewTreeWriter returns a writer stamped with the wall clock and random run ids.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Write walks root and replaces the file at path with the rendered tree.
// A relative path is resolved against root.
func (w *TreeWriter) Write(path, root string, settings domain.SnapshotSettings) (domain.SnapshotResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return domain.SnapshotResult{}, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return domain.SnapshotResult{}, err
	}
	if !info.IsDir() {
		return domain.SnapshotResult{}, fmt.Errorf("%s is not a directory", root)
	}

	t := &tree{
		ignore:   make(map[string]bool, len(settings.Ignore)),
		maxDepth: settings.MaxDepth,
		skip:     path,
	}
	for _, name := range settings.Ignore {
		t.ignore[name] = true
	}

	result := domain.SnapshotResult{Path: path, RunID: w.newID()}
	var body strings.Builder
	fmt.Fprintf(&body, "%s/\n", filepath.Base(absRoot))
	t.walk(&body, absRoot, "", 1)
	result.Dirs, result.Files, result.TotalBytes = t.dirs, t.files, t.bytes

	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.SnapshotResult{}, fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.ReportFilePermissions)
	if err != nil {
		return domain.SnapshotResult{}, fmt.Errorf("open snapshot: %w", err)
	}
	out := bufio.NewWriter(f)
	writeHeader(out, absRoot, result, w.now())
	out.WriteString(body.String())
	fmt.Fprintf(out, "\n%s, %s, %s\n",
		plural(result.Dirs, "directory", "directories"),
		plural(result.Files, "file", "files"),
		humanize.Bytes(uint64(result.TotalBytes)))
	if err := out.Flush(); err != nil {
		f.Close()
		return domain.SnapshotResult{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return domain.SnapshotResult{}, fmt.Errorf("write snapshot: %w", err)
	}
	return result, nil
}

func writeHeader(w io.Writer, root string, result domain.SnapshotResult, at time.Time) {
	fmt.Fprintf(w, "# Project structure of %s\n", root)
	fmt.Fprintf(w, "# Run: %s\n", result.RunID)
	fmt.Fprintf(w, "# Generated: %s\n\n", at.UTC().Format(time.RFC3339))
}

type tree struct {
	ignore   map[string]bool
	maxDepth int
	skip     string

	dirs  int
	files int
	bytes int64
}

func (t *tree) walk(b *strings.Builder, dir, prefix string, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(b, "%s└── [unreadable: %s]\n", prefix, describe(err))
		return
	}
	kept := entries[:0]
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if t.ignore[entry.Name()] || full == t.skip {
			continue
		}
		kept = append(kept, entry)
	}

	for i, entry := range kept {
		connector, next := "├── ", prefix+"│   "
		if i == len(kept)-1 {
			connector, next = "└── ", prefix+"    "
		}
		full := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(b, "%s%s%s [unreadable]\n", prefix, connector, entry.Name())
			continue
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, _ := os.Readlink(full)
			fmt.Fprintf(b, "%s%s%s -> %s\n", prefix, connector, entry.Name(), target)
			t.files++
		case info.IsDir():
			t.dirs++
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, entry.Name())
			if t.maxDepth > 0 && depth >= t.maxDepth {
				if hasEntries(full) {
					fmt.Fprintf(b, "%s└── ...\n", next)
				}
				continue
			}
			t.walk(b, full, next, depth+1)
		default:
			t.files++
			t.bytes += info.Size()
			fmt.Fprintf(b, "%s%s%s (%s)\n", prefix, connector, entry.Name(), humanize.Bytes(uint64(info.Size())))
		}
	}
}

func hasEntries(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()
	names, _ := f.Readdirnames(1)
	return len(names) > 0
}

func describe(err error) string {
	if os.IsPermission(err) {
		return "permission denied"
	}
	return "read error"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

var _ ports.SnapshotWriter = (*TreeWriter)(nil)
