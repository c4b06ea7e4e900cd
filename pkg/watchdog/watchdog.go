// Package watchdog bounds the lifetime of a process by signaling its
// PID after a deadline. catch.Run itself has no timeout; pairing its
// WithStarted hook with Arm gives callers bounded execution without
// changing the synchronous contract.
package watchdog

import (
	"log/slog"
	"sync"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Arm starts a timer for pid. When timeout elapses the process receives
// SIGTERM; if it is still running after a further grace period it
// receives SIGKILL. The returned disarm function stops the watchdog and
// may be called any number of times; call it once the process is known
// to have exited.
func Arm(pid int, timeout, grace time.Duration) (disarm func()) {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		if !signal(pid, syscall.SIGTERM) {
			return
		}
		slog.Debug("watchdog sent SIGTERM", "pid", pid)

		select {
		case <-stop:
			return
		case <-time.After(grace):
		}
		if signal(pid, syscall.SIGKILL) {
			slog.Debug("watchdog sent SIGKILL", "pid", pid)
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}

// signal delivers sig to pid if the process still exists and is
// running. Reports whether a signal was sent.
func signal(pid int, sig syscall.Signal) bool {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := p.IsRunning()
	if err != nil || !running {
		return false
	}
	return p.SendSignal(sig) == nil
}
