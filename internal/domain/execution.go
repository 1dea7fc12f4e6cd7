package domain

// ExecutionResult describes a finished external command.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}

// User is a row of the application's users table.
type User struct {
	ID       string
	Email    string
	FullName string
}

// SnapshotResult summarizes a written tree snapshot.
type SnapshotResult struct {
	Path       string
	RunID      string
	Dirs       int
	Files      int
	TotalBytes int64
}
