package domain

import "fmt"

// EnvironmentFault is raised when a mandatory check fails. It is the only error
// kind that terminates a run with a non-zero exit.
type EnvironmentFault struct {
	Check string
	Err   error
}

func (e *EnvironmentFault) Error() string {
	if e.Err == nil {
		return e.Check + " failed"
	}
	return fmt.Sprintf("%s: %v", e.Check, e.Err)
}

func (e *EnvironmentFault) Unwrap() error {
	return e.Err
}
