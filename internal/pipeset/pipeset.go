// Package pipeset allocates the unidirectional OS channels a captured
// child process writes into and manages their lifetime across the spawn
// boundary: the write ends go to the child, the read ends stay with the
// parent, and whichever side does not use an end must drop it so that
// end-of-stream can be observed.
package pipeset

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// Stream names the source a read end carries.
type Stream string

const (
	Stdout   Stream = "stdout"
	Stderr   Stream = "stderr"
	Combined Stream = "combined"
)

// ReadEnd is a parent-owned read end tagged with the stream it carries.
type ReadEnd struct {
	Stream Stream
	File   *os.File
}

// Mode selects which channels Open allocates.
type Mode int

const (
	// TwoPipes allocates independent pipes for stdout and stderr.
	TwoPipes Mode = iota
	// OnePipe allocates a single pipe shared by both streams. The
	// kernel serializes writes to the shared end, so the read end sees
	// them in true temporal order.
	OnePipe
	// OnePty allocates a pty/tty pair instead of a pipe. Both streams
	// share the tty and the child sees a terminal, so line-buffered
	// programs flush per line as they would interactively.
	OnePty
)

// Set owns the descriptors for a single spawn. It is not safe for
// concurrent use; a launch owns its Set exclusively.
type Set struct {
	reads       []ReadEnd
	childStdout *os.File
	childStderr *os.File
}

// Open allocates the channels the given mode requires. On failure every
// descriptor opened so far is closed before the error is returned; pipe
// allocation failures are not retried.
func Open(mode Mode) (*Set, error) {
	switch mode {
	case TwoPipes:
		outR, outW, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("allocating stdout pipe: %w", err)
		}
		errR, errW, err := os.Pipe()
		if err != nil {
			_ = outR.Close()
			_ = outW.Close()
			return nil, fmt.Errorf("allocating stderr pipe: %w", err)
		}
		return &Set{
			reads:       []ReadEnd{{Stdout, outR}, {Stderr, errR}},
			childStdout: outW,
			childStderr: errW,
		}, nil
	case OnePipe:
		r, w, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("allocating combined pipe: %w", err)
		}
		return &Set{
			reads:       []ReadEnd{{Combined, r}},
			childStdout: w,
			childStderr: w,
		}, nil
	case OnePty:
		ptmx, tts, err := pty.Open()
		if err != nil {
			return nil, fmt.Errorf("allocating pty: %w", err)
		}
		return &Set{
			reads:       []ReadEnd{{Combined, ptmx}},
			childStdout: tts,
			childStderr: tts,
		}, nil
	}
	return nil, fmt.Errorf("unknown pipe mode %d", mode)
}

// ChildFiles returns the files the child's stdout and stderr get
// duplicated onto at spawn. Under OnePipe and OnePty both returned
// files are the same descriptor.
func (s *Set) ChildFiles() (stdout, stderr *os.File) {
	return s.childStdout, s.childStderr
}

// ReadEnds returns the parent-owned read ends. The caller closes them
// once they have been drained to end-of-stream.
func (s *Set) ReadEnds() []ReadEnd {
	return s.reads
}

// CloseChildEnds drops the parent's copies of the child-side ends. The
// parent must call this right after the spawn: as long as it holds a
// write end, the read ends never report end-of-stream. Idempotent; a
// shared end is closed exactly once.
func (s *Set) CloseChildEnds() {
	if s.childStdout != nil {
		_ = s.childStdout.Close()
	}
	if s.childStderr != nil && s.childStderr != s.childStdout {
		_ = s.childStderr.Close()
	}
	s.childStdout = nil
	s.childStderr = nil
}

// Close releases every descriptor in the set. This is the cleanup path
// for a spawn that never happened; after a successful spawn use
// CloseChildEnds and close the read ends after draining them.
func (s *Set) Close() {
	s.CloseChildEnds()
	for _, re := range s.reads {
		_ = re.File.Close()
	}
	s.reads = nil
}
