package commands

// Error messages
const (
	ErrConfigLoaderUnavailable   = "config loader unavailable"
	ErrCollectServiceUnavailable = "collect service unavailable"
	ErrVenvServiceUnavailable    = "venv service unavailable"
	ErrUserListerUnavailable     = "database adapter unavailable"
	ErrSnapshotUnavailable       = "snapshot writer unavailable"
)

// Success messages
const (
	MsgNoUsersFound   = "No users found"
	MsgResetCancelled = "Reset cancelled."
)
