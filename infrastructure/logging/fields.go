package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for sandbox runtime logging.

// SessionID adds a session ID field.
func SessionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("session_id", id)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// ErrorKind adds an error-kind field (none/runtime/timeout/memory_limit).
func ErrorKind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("error_kind", kind)
	}
}

// MemoryBytes adds a memory usage field in bytes.
func MemoryBytes(n int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("memory_bytes", n)
	}
}

// TimeoutSeconds adds a configured timeout field in seconds.
func TimeoutSeconds(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("timeout_seconds", d.Seconds())
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// FunctionCount adds a registered-function count field.
func FunctionCount(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("function_count", n)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
