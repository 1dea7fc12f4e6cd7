package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := ExpandPath("~/cfg.yaml"); got != filepath.Join("/home/tester", "cfg.yaml") {
		t.Errorf("ExpandPath(~/cfg.yaml) = %q", got)
	}
	if got := ExpandPath("relative/file"); got != "relative/file" {
		t.Errorf("ExpandPath(relative/file) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
