package scan

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/healthcheck/internal/domain"
)

var envSettings = domain.EnvironmentSettings{
	File:         ".env",
	Required:     []string{"DATABASE_URL", "SECRET_KEY"},
	Placeholders: []string{"your-super-secret-key-change-this-in-production"},
}

func TestCheckEnvironmentMissingFile(t *testing.T) {
	values, status := LoadEnvFile(fstest.MapFS{}, ".env")
	report := CheckEnvironment(values, status, envSettings, nil)

	want := domain.EnvironmentReport{
		File:          ".env",
		Status:        domain.ResourceMissing,
		DeclaredCount: 0,
		Vars: []domain.EnvVarStatus{
			{Name: "DATABASE_URL"},
			{Name: "SECRET_KEY"},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckEnvironmentDeclaredAndPlaceholder(t *testing.T) {
	fsys := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte("# local\nDATABASE_URL=postgresql://u:p@db:5432/app\nSECRET_KEY=\"your-super-secret-key-change-this-in-production\"\nEMPTY=\n")},
	}
	values, status := LoadEnvFile(fsys, ".env")
	if status != domain.ResourceFound {
		t.Fatalf("status = %s", status)
	}

	report := CheckEnvironment(values, status, envSettings, map[string]string{"SECRET_KEY": ""})

	want := []domain.EnvVarStatus{
		{Name: "DATABASE_URL", Declared: true},
		{Name: "SECRET_KEY", Declared: true, Placeholder: true},
	}
	if diff := cmp.Diff(want, report.Vars); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
	// EMPTY= is parsed but not counted as declared
	if report.DeclaredCount != 2 {
		t.Errorf("DeclaredCount = %d, want 2", report.DeclaredCount)
	}
}

func TestCheckEnvironmentProcessOnly(t *testing.T) {
	report := CheckEnvironment(nil, domain.ResourceMissing, envSettings, map[string]string{"DATABASE_URL": "sqlite:///x.db"})
	if !report.Vars[0].Found() || report.Vars[0].Declared {
		t.Fatalf("expected process-only variable: %+v", report.Vars[0])
	}
}

func TestLoadEnvFileUnreadable(t *testing.T) {
	fsys := fstest.MapFS{".env": &fstest.MapFile{Data: []byte{0xff, 0xfe}}}
	if _, status := LoadEnvFile(fsys, ".env"); status != domain.ResourceUnreadable {
		t.Fatalf("status = %s, want unreadable", status)
	}
}

func TestLookupPrefersProcess(t *testing.T) {
	file := map[string]string{"DATABASE_URL": "from-file"}
	if got := Lookup("DATABASE_URL", file, map[string]string{"DATABASE_URL": "from-env"}); got != "from-env" {
		t.Errorf("Lookup = %q", got)
	}
	if got := Lookup("DATABASE_URL", file, nil); got != "from-file" {
		t.Errorf("Lookup = %q", got)
	}
}

func TestLoadEnvFileWithByteOrderMark(t *testing.T) {
	fsys := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte("\ufeffDATABASE_URL=sqlite:///app.db\nSECRET_KEY=abc\n")},
	}
	values, status := LoadEnvFile(fsys, ".env")
	report := CheckEnvironment(values, status, envSettings, nil)

	want := domain.EnvironmentReport{
		File:          ".env",
		Status:        domain.ResourceFound,
		DeclaredCount: 2,
		Vars: []domain.EnvVarStatus{
			{Name: "DATABASE_URL", Declared: true},
			{Name: "SECRET_KEY", Declared: true},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}
