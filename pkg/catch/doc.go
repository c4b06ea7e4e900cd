// Package catch spawns a child process on a POSIX system and captures
// its standard output and standard error.
//
// # Capture strategies
//
// The Separate strategy captures stdout and stderr through independent
// pipes. Each stream keeps its own byte order exactly, but nothing is
// recorded about how the two streams interleaved.
//
// The Combined strategy redirects both streams into one pipe. The
// kernel serializes writes to the shared end, so the captured merged
// stream reflects the true temporal order of the child's writes. The
// price is that a captured line can no longer be attributed to stdout
// or stderr.
//
// The Terminal strategy behaves like Combined but connects the child to
// a pseudo-terminal. Programs that switch to block buffering when their
// output is a pipe (most stdio-based programs do) flush per line again,
// which makes the interleaving faithful for them too. Terminal output
// uses CRLF line endings; the line accessors on Output normalize them.
//
// # Blocking and memory behavior
//
// Run is synchronous: it returns once the child has exited and every
// stream has reached end-of-stream. All output is buffered in memory,
// so Run is not suitable for children producing unbounded output, and
// there is no timeout in the call itself. Callers wanting bounded
// execution can arm an external supervisor with the PID delivered via
// WithStarted; see the watchdog package.
package catch
