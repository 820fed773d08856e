package sandbox

import (
	"errors"

	"github.com/canonical/starlark/starlark"
)

// Tracker is the Go-native analog of a thread-local tracking allocator: it
// arms a byte ceiling on a *starlark.Thread before an eval and reports
// afterwards whether that eval tripped it. There is no header-prepending
// shim here — the interpreter dependency already meters every
// allocation-bearing operation via AddAllocs, so Tracker only owns the
// arm/observe lifecycle around that mechanism.
//
// A *starlark.Thread's allocation count only ever grows and is never
// decremented, so it cannot represent a live-bytes counter across more than
// one eval — the caller is expected to hand Arm a fresh thread every eval
// (see Session.newThread) rather than reuse one, which also keeps each
// eval's budget independent of what earlier evals in the same session
// allocated.
type Tracker struct {
	limit    int64
	exceeded bool
}

// NewTracker creates a tracker with the given byte limit. A limit of 0 means
// unlimited, matching the package-wide convention that the zero value means
// "no ceiling".
func NewTracker(limit int64) *Tracker {
	return &Tracker{limit: limit}
}

// Limit reports the configured ceiling in bytes; 0 means unlimited.
func (t *Tracker) Limit() int64 { return t.limit }

// Arm resets the exceeded flag and installs the limit on thread.
func (t *Tracker) Arm(thread *starlark.Thread) {
	t.exceeded = false
	thread.SetMaxAllocs(t.limit)
}

// Observe inspects the error an eval returned (if any) and records whether
// it was this tracker's limit that fired.
func (t *Tracker) Observe(err error) {
	var safetyErr *starlark.AllocsSafetyError
	t.exceeded = errors.As(err, &safetyErr)
}

// Exceeded reports whether the most recently observed eval tripped the limit.
func (t *Tracker) Exceeded() bool { return t.exceeded }

// Current returns the thread's current allocation count.
func (t *Tracker) Current(thread *starlark.Thread) int64 {
	n, _ := thread.Allocs()
	return n
}
