package catch

import (
	"errors"
	"fmt"
)

// Phase identifies which step of a launch failed.
type Phase string

const (
	// PhaseAllocate is pipe or pty allocation.
	PhaseAllocate Phase = "allocate"
	// PhaseFork is creation of the child process.
	PhaseFork Phase = "fork"
	// PhaseExec is replacement of the child's process image, including
	// resolving the program path.
	PhaseExec Phase = "exec"
	// PhaseRead is draining of the pipe read ends.
	PhaseRead Phase = "read"
	// PhaseReap is collection of the child's exit status.
	PhaseReap Phase = "reap"
)

// ErrEmptyArgv is returned when Run is called with an empty argument
// vector. POSIX convention requires at least argv[0].
var ErrEmptyArgv = errors.New("argument vector must not be empty")

// LaunchError reports which phase of a launch failed. None of the
// phases are retried internally; the failure always surfaces to the
// caller. For read and reap failures Output holds the bytes captured
// before the failure, so partial output is never silently discarded.
type LaunchError struct {
	Phase  Phase
	Path   string
	Err    error
	Output *Output
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %s failed: %v", e.Path, e.Phase, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
