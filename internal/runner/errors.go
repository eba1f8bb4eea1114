package runner

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlatform     = errors.New("invalid platform")
	ErrUnsupportedPlatform = errors.New("task not supported on this platform")
)

// SpawnError means the child process could not be started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not run command %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// CommandFailedError means the child exited unsuccessfully. Code is 1 when
// the platform did not report one.
type CommandFailedError struct {
	Command string
	Code    int
	Err     error
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command %q failed: exit code (%d)", e.Command, e.Code)
}

func (e *CommandFailedError) Unwrap() error {
	return e.Err
}
