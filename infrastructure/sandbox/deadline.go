package sandbox

import (
	"sync/atomic"
	"time"

	"github.com/canonical/starlark/starlark"
)

// timeoutReason is the cancellation message installed on the thread when
// the deadline monitor fires; it appears inside the error the interpreter
// returns. Classification does not parse that error: it reads the monitor's
// expired flag instead, since Thread.Cancel's wrapping format ("Starlark
// computation cancelled: %w") is documented but not guaranteed stable
// across versions.
const timeoutReason = "execution timeout exceeded"

// Monitor is the Go-native analog of the original per-instruction deadline
// hook. The embedded interpreter dependency does not expose a bytecode
// dispatch hook to install a periodic clock check into, so the clock-sampling
// half of that hook becomes a single timer goroutine, and the raise half
// becomes Thread.Cancel, which the dependency documents as safe to call from
// any goroutine — including one racing the interpreter's own step counter.
type Monitor struct {
	timeout time.Duration
	timer   *time.Timer
	expired atomic.Bool
}

// NewMonitor creates a monitor for the given timeout. A timeout of 0 means
// unlimited: Arm becomes a no-op.
func NewMonitor(timeout time.Duration) *Monitor {
	return &Monitor{timeout: timeout}
}

// Timeout reports the configured timeout; 0 means unlimited.
func (m *Monitor) Timeout() time.Duration { return m.timeout }

// Arm resets the expired flag and, if a timeout is configured, starts the
// timer that will cancel thread when it fires.
func (m *Monitor) Arm(thread *starlark.Thread) {
	m.expired.Store(false)
	if m.timeout <= 0 {
		return
	}
	m.timer = time.AfterFunc(m.timeout, func() {
		m.expired.Store(true)
		thread.Cancel(timeoutReason)
	})
}

// Disarm stops the timer if it hasn't already fired.
func (m *Monitor) Disarm() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Expired reports whether the most recent Arm/Disarm cycle's timer fired.
func (m *Monitor) Expired() bool { return m.expired.Load() }
