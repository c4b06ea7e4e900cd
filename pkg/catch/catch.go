package catch

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/phip1611/unix-exec-output-catcher/internal/muxread"
	"github.com/phip1611/unix-exec-output-catcher/internal/pipeset"
)

// Run executes the program at path with the given argument vector and
// blocks until the child has exited and every captured stream reached
// end-of-stream. Non-zero exit is not an error; the exit code (and the
// terminating signal, if any) is recorded in the Output.
//
// argv follows the POSIX convention: it must be non-empty and argv[0]
// is the name the child sees as its own. argv[0] plays no part in
// resolving path; when path contains no slash it is looked up in $PATH,
// like execvp.
//
// The child is reaped exactly once before Run returns, on the error
// paths too, so no invocation leaves a zombie behind.
func Run(path string, argv []string, strategy Strategy, opts ...Option) (*Output, error) {
	if len(argv) == 0 {
		return nil, &LaunchError{Phase: PhaseExec, Path: path, Err: ErrEmptyArgv}
	}

	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := uuid.New().String()
	log := slog.With("run_id", runID, "path", path, "strategy", strategy.String())

	resolved := path
	if !strings.Contains(path, "/") {
		p, err := exec.LookPath(path)
		if err != nil {
			return nil, &LaunchError{Phase: PhaseExec, Path: path, Err: err}
		}
		resolved = p
	}

	pipes, err := pipeset.Open(pipeMode(strategy))
	if err != nil {
		return nil, &LaunchError{Phase: PhaseAllocate, Path: path, Err: err}
	}
	log.Debug("pipes allocated")

	childStdout, childStderr := pipes.ChildFiles()
	cmd := &exec.Cmd{
		Path:   resolved,
		Args:   argv,
		Dir:    cfg.dir,
		Env:    cfg.env,
		Stdin:  cfg.stdin,
		Stdout: childStdout,
		Stderr: childStderr,
	}

	// Start forks and execs. The write ends get duplicated onto the
	// child's descriptors 1 and 2; all other ends are O_CLOEXEC and
	// vanish at image replacement. An exec failure after the fork is
	// reported back through the runtime's status pipe and surfaces
	// here, never as a success with empty output.
	if err := cmd.Start(); err != nil {
		pipes.Close()
		return nil, &LaunchError{Phase: spawnPhase(err), Path: path, Err: err}
	}

	// The parent never writes; drop its copies of the write ends now or
	// the read ends will never report end-of-stream.
	pipes.CloseChildEnds()
	log.Debug("child started", "pid", cmd.Process.Pid)

	if cfg.started != nil {
		cfg.started(cmd.Process.Pid)
	}

	reads := pipes.ReadEnds()
	ends := make([]muxread.End, len(reads))
	for i, re := range reads {
		ends[i] = muxread.End{Name: string(re.Stream), File: re.File}
	}
	captured, readErr := muxread.Drain(ends)
	for _, re := range reads {
		_ = re.File.Close()
	}

	out := &Output{
		RunID:    runID,
		Stdout:   captured[string(pipeset.Stdout)],
		Stderr:   captured[string(pipeset.Stderr)],
		Combined: captured[string(pipeset.Combined)],
	}

	// Reap even when draining failed; skipping the wait would leak a
	// zombie.
	if waitErr := cmd.Wait(); waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			return nil, &LaunchError{Phase: PhaseReap, Path: path, Err: waitErr, Output: out}
		}
		out.ExitCode = exitErr.ExitCode()
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			out.Signal = status.Signal().String()
		}
	}

	if readErr != nil {
		return nil, &LaunchError{Phase: PhaseRead, Path: path, Err: readErr, Output: out}
	}

	log.Debug("child reaped", "pid", cmd.Process.Pid, "exit_code", out.ExitCode, "signal", out.Signal)
	return out, nil
}

func pipeMode(s Strategy) pipeset.Mode {
	switch s {
	case Combined:
		return pipeset.OnePipe
	case Terminal:
		return pipeset.OnePty
	default:
		return pipeset.TwoPipes
	}
}

// spawnPhase classifies a Start failure. Errors that mean the program
// image could not be executed map to the exec phase; anything else
// (descriptor or process-table exhaustion, out of memory) means the
// child could not be created at all.
func spawnPhase(err error) Phase {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return PhaseExec
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOENT, syscall.EACCES, syscall.ENOEXEC, syscall.ENOTDIR:
			return PhaseExec
		}
	}
	return PhaseFork
}
