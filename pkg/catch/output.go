package catch

import "strings"

// Output holds everything the child wrote before it exited, plus how it
// exited. Which byte fields are populated depends on the strategy:
// Separate fills Stdout and Stderr, Combined and Terminal fill Combined
// only, since after the kernel merges the streams a byte can no longer
// be attributed to one of them.
type Output struct {
	// RunID uniquely identifies this invocation, e.g. for correlating
	// log lines.
	RunID string

	// ExitCode is the child's exit status. It is -1 when the child was
	// terminated by a signal; Signal then names it.
	ExitCode int

	// Signal is the name of the terminating signal, or empty when the
	// child exited normally.
	Signal string

	// Stdout and Stderr hold the raw captured bytes of each stream in
	// the order the child wrote them.
	Stdout []byte
	Stderr []byte

	// Combined holds both streams merged in kernel write order.
	Combined []byte
}

// StdoutLines returns the captured stdout split into lines.
func (o *Output) StdoutLines() []string { return splitLines(o.Stdout) }

// StderrLines returns the captured stderr split into lines.
func (o *Output) StderrLines() []string { return splitLines(o.Stderr) }

// CombinedLines returns the merged stream split into lines, in the
// order the child's writes reached the shared pipe.
func (o *Output) CombinedLines() []string { return splitLines(o.Combined) }

// splitLines splits captured bytes on newlines. A single trailing
// newline does not produce an empty final line, and a trailing carriage
// return is stripped per line because pseudo-terminals emit CRLF.
func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(b), "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
