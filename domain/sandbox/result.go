package sandbox

// ErrorKind classifies why an evaluation produced an error, mirroring the
// original interpreter's single-pass classification: timeout takes priority
// over an exceeded memory ceiling, which takes priority over a plain
// runtime error.
type ErrorKind int

const (
	// KindNone indicates the evaluation succeeded.
	KindNone ErrorKind = iota
	// KindRuntime indicates a parse error or an ordinary runtime error.
	KindRuntime
	// KindTimeout indicates the evaluation was cancelled by the deadline monitor.
	KindTimeout
	// KindMemoryLimit indicates the evaluation was aborted by the tracking allocator.
	KindMemoryLimit
)

// String renders the kind for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRuntime:
		return "runtime"
	case KindTimeout:
		return "timeout"
	case KindMemoryLimit:
		return "memory_limit"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Eval call: a rendered value, any output the
// script printed, and — on failure — an error together with its kind.
// Sandbox-originating failures are never Go errors from Eval itself; they
// live here so a caller who only wants the rendered text never has to
// special-case error handling.
type Result struct {
	// Value is the rendered form of the last expression's result (the
	// interpreter's own String() of its "_" binding), empty on error.
	Value string

	// Output is everything the script wrote via print/p during this Eval,
	// reset at the start of every call.
	Output string

	// Err is nil on success; non-nil for any of the three failure kinds.
	Err error

	// Kind classifies Err; KindNone when Err is nil.
	Kind ErrorKind
}

// IsError reports whether the evaluation failed.
func (r Result) IsError() bool { return r.Err != nil }

// String renders the result the way an interactive session would: the
// output followed by "=> value" on success, or "Error: message" on failure.
func (r Result) String() string {
	prefix := ""
	if r.Output != "" {
		prefix = r.Output
	}
	if r.IsError() {
		return prefix + "Error: " + r.Err.Error()
	}
	return prefix + "=> " + r.Value
}
