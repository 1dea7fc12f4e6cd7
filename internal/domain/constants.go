package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ReportFilePermissions is used for snapshots and review bundles (rw-r--r--)
	ReportFilePermissions = 0o644
)

// Timeout constants
const (
	// DefaultProbeTimeout bounds each interpreter or database probe
	DefaultProbeTimeout = 30 * time.Second
)

// Defaults used when the config leaves a field empty
const (
	DefaultConfigFile     = ".healthcheck.yaml"
	DefaultManifest       = "requirements.txt"
	DefaultEnvFile        = ".env"
	DefaultInterpreter    = "python"
	DefaultAppModule      = "app.main"
	DefaultDatabaseEnvVar = "DATABASE_URL"
	DefaultSnapshotFile   = "project_structure.txt"
	DefaultReviewFile     = "review_bundle.txt"
	DefaultVenvDir        = "venv"
	MaxSampleLineRunes    = 120
)

// Stage names a group of checks that can be selected with --only.
type Stage string

const (
	StageFiles    Stage = "files"
	StagePatterns Stage = "patterns"
	StageDeps     Stage = "deps"
	StageEnv      Stage = "env"
	StageRuntime  Stage = "runtime"
)

// AllStages lists stages in execution order.
var AllStages = []Stage{StageFiles, StagePatterns, StageDeps, StageEnv, StageRuntime}

// Runtime probe names, also used as EnvironmentFault.Check values.
const (
	CheckInterpreter = "interpreter"
	CheckImport      = "import"
	CheckDatabase    = "database"
	CheckFiles       = "mandatory files"
)
