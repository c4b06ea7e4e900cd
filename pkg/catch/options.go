package catch

import "io"

// Option adjusts a single Run invocation.
type Option func(*settings)

type settings struct {
	stdin   io.Reader
	dir     string
	env     []string
	started func(pid int)
}

// WithStdin connects r to the child's standard input. Without it the
// child reads from /dev/null.
func WithStdin(r io.Reader) Option {
	return func(s *settings) { s.stdin = r }
}

// WithDir runs the child in dir instead of the caller's working
// directory.
func WithDir(dir string) Option {
	return func(s *settings) { s.dir = dir }
}

// WithEnv replaces the child's environment with the given "KEY=value"
// entries. Without it the child inherits the parent's environment.
func WithEnv(env []string) Option {
	return func(s *settings) { s.env = env }
}

// WithStarted registers a hook called once with the child's PID right
// after the spawn succeeds. Run itself stays blocking; the hook lets
// callers layer external supervision, such as a watchdog that signals
// the PID after a deadline.
func WithStarted(fn func(pid int)) Option {
	return func(s *settings) { s.started = fn }
}
