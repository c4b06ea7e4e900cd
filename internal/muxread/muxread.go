// Package muxread drains several pipe read ends from a single goroutine
// using a readiness-wait loop over poll(2). Reading the ends one after
// another would deadlock as soon as the child fills the kernel buffer of
// the pipe the parent is not currently blocked on; polling all of them
// at once rules that hazard out.
package muxread

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const readChunk = 32 * 1024

// End is one descriptor to drain, tagged with a name the caller uses to
// pick its buffer out of the result.
type End struct {
	Name string
	File *os.File
}

// Drain reads every end until it reports end-of-stream and returns the
// accumulated bytes per name. It blocks until all write ends have been
// closed, normally because the writing process exited. Everything is
// buffered in memory, so Drain is unsuitable for writers producing
// unbounded output.
//
// The files are left open; closing them is the caller's job. A partial
// result is returned alongside any error.
func Drain(ends []End) (map[string][]byte, error) {
	out := make(map[string][]byte, len(ends))
	fds := make([]int, len(ends))
	for i, e := range ends {
		fd := int(e.File.Fd())
		if err := unix.SetNonblock(fd, true); err != nil {
			return out, fmt.Errorf("setting %s read end non-blocking: %w", e.Name, err)
		}
		fds[i] = fd
	}

	buf := make([]byte, readChunk)
	open := len(ends)
	for open > 0 {
		pollfds := make([]unix.PollFd, 0, open)
		idx := make([]int, 0, open)
		for i, fd := range fds {
			if fd < 0 {
				continue
			}
			pollfds = append(pollfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
			idx = append(idx, i)
		}

		if _, err := unix.Poll(pollfds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return out, fmt.Errorf("polling read ends: %w", err)
		}

		for pi, pfd := range pollfds {
			// POLLHUP and POLLERR arrive regardless of Events; a read
			// tells us whether data is left or the end is finished.
			if pfd.Revents == 0 {
				continue
			}
			i := idx[pi]
			done, err := drainReady(fds[i], ends[i].Name, out, buf)
			if err != nil {
				return out, err
			}
			if done {
				fds[i] = -1
				open--
			}
		}
	}
	return out, nil
}

// drainReady reads one ready descriptor until it would block or reaches
// end-of-stream. Reports done once the descriptor is exhausted.
func drainReady(fd int, name string, out map[string][]byte, buf []byte) (bool, error) {
	for {
		n, err := unix.Read(fd, buf)
		if n > 0 {
			out[name] = append(out[name], buf[:n]...)
		}
		switch {
		case err == nil && n == 0:
			// Zero-length read: all write ends are closed.
			return true, nil
		case err == nil:
			continue
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return false, nil
		case err == unix.EIO:
			// A pty master reports EIO instead of a zero-length read
			// once the terminal side has been closed.
			return true, nil
		default:
			return false, fmt.Errorf("reading %s: %w", name, err)
		}
	}
}
