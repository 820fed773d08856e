package sandbox

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by Eval/Reset once a session has been closed.
var ErrSessionClosed = errors.New("sandbox: session is closed")

// ErrLimitExceeded is the sentinel every resource-limit error wraps, so
// callers can test for "some limit fired" without caring which one via
// errors.Is(err, sandbox.ErrLimitExceeded).
var ErrLimitExceeded = errors.New("sandbox: resource limit exceeded")

// TimeoutError reports that an evaluation was cancelled after exceeding its
// configured wall-clock deadline.
type TimeoutError struct {
	Timeout string // human-readable configured timeout, e.g. "2s"
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("sandbox: evaluation exceeded timeout of %s", e.Timeout)
}

// Unwrap makes errors.Is(err, ErrLimitExceeded) succeed for TimeoutError.
func (e *TimeoutError) Unwrap() error { return ErrLimitExceeded }

// MemoryLimitError reports that an evaluation was aborted after exceeding
// its configured allocation ceiling.
type MemoryLimitError struct {
	Limit int64 // configured limit in bytes
}

func (e *MemoryLimitError) Error() string {
	return fmt.Sprintf("sandbox: evaluation exceeded memory limit of %d bytes", e.Limit)
}

// Unwrap makes errors.Is(err, ErrLimitExceeded) succeed for MemoryLimitError.
func (e *MemoryLimitError) Unwrap() error { return ErrLimitExceeded }
