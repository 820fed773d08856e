// Package sandbox hosts the persistent evaluation core: a persistent
// globals map evaluated against a fresh *starlark.Thread on every call,
// wrapped with the tracking allocator, deadline monitor, output buffer, and
// tool trampoline that turn a bare embedded interpreter into the stateful
// eval service the host facade exposes.
package sandbox

import (
	"time"

	"github.com/canonical/starlark/starlark"
	"github.com/canonical/starlark/syntax"
	"github.com/google/uuid"

	"github.com/go-enclave/enclave/domain/sandbox"
	"github.com/go-enclave/enclave/domain/tool"
	"github.com/go-enclave/enclave/infrastructure/logging"
	"github.com/go-enclave/enclave/infrastructure/statemachine"
)

// exprFilename is the synthetic filename attached to every eval's parsed
// file; it never touches a real filesystem path.
const exprFilename = "<eval>"

// Session is a persistent, single-goroutine-at-a-time interpreter session.
// It owns the top-level globals ("stack-keep"), the tool registry, and the
// resource-enforcement components; each Eval runs against a fresh
// interpreter thread built by newThread. It is not safe for concurrent use.
type Session struct {
	id       string
	globals  starlark.StringDict
	registry tool.Registry
	output   *OutputBuffer
	tracker  *Tracker
	monitor  *Monitor
	lifecyc  *statemachine.Interpreter
}

// New creates a live session with the given resource limits and tool
// registry. A timeout or memoryLimit of 0 means unlimited.
func New(registry tool.Registry, timeout time.Duration, memoryLimit int64) *Session {
	id := uuid.NewString()

	machine, err := statemachine.NewSessionMachine()
	if err != nil {
		// The machine literal is fixed at compile time; a build error here
		// would be a programming error, not a runtime condition.
		panic("sandbox: invalid session state machine: " + err.Error())
	}
	lifecyc := statemachine.NewInterpreter(machine, statemachine.NewContext(id))
	lifecyc.Start()

	s := &Session{
		id:       id,
		registry: registry,
		output:   &OutputBuffer{},
		tracker:  NewTracker(memoryLimit),
		monitor:  NewMonitor(timeout),
		lifecyc:  lifecyc,
	}
	s.rebuild()

	logging.Debug().
		Add(logging.SessionID(id)).
		Add(logging.Component("sandbox")).
		Add(logging.TimeoutSeconds(timeout)).
		Add(logging.MemoryBytes(memoryLimit)).
		Add(logging.FunctionCount(registry.Len())).
		Msg("session created")

	return s
}

// rebuild creates a fresh globals map, seeding "_" plus every currently
// registered tool function and the p() builtin. It is used by both New and
// Reset. It does not touch any *starlark.Thread — see newThread.
func (s *Session) rebuild() {
	globals := make(starlark.StringDict)
	globals["_"] = starlark.None
	globals["p"] = starlark.NewBuiltin("p", s.output.pBuiltin)

	for _, name := range s.registry.Names() {
		globals[name] = dispatch(s.registry, name)
	}

	s.globals = globals
}

// newThread creates a fresh interpreter thread for a single Eval call. A
// *starlark.Thread that has been cancelled — by a fired deadline or a
// tripped allocation ceiling — latches its cancel reason permanently; the
// interpreter never clears it, so reusing a cancelled thread would fail
// every subsequent Eval on the same session regardless of what it runs.
// Globals ("stack-keep" locals, bound tool functions, "_") live in
// s.globals rather than on the thread, so handing ExecREPLChunk a brand
// new thread on every call clears any latched cancellation without losing
// any session state.
func (s *Session) newThread() *starlark.Thread {
	return &starlark.Thread{Name: s.id, Print: s.output.Print}
}

// BindFunction installs a global binding for a name already present in the
// registry, without disturbing any other global or local state — used by
// Expose so registering a new tool mid-session doesn't discard the user's
// existing bindings the way a full Reset would.
func (s *Session) BindFunction(name string) error {
	if s.IsClosed() {
		return sandbox.ErrSessionClosed
	}
	s.globals[name] = dispatch(s.registry, name)
	return nil
}

// MonitorTimeout returns the configured timeout (0 means unlimited).
func (s *Session) MonitorTimeout() time.Duration { return s.monitor.Timeout() }

// TrackerLimit returns the configured memory limit in bytes (0 means unlimited).
func (s *Session) TrackerLimit() int64 { return s.tracker.Limit() }

// IsClosed reports whether Close has been called.
func (s *Session) IsClosed() bool { return s.lifecyc.IsClosed() }

// Eval parses and executes code against the session's persistent globals,
// returning a fully populated Result. It never returns a Go error for a
// sandbox-originating failure; see domain/sandbox.Result.
func (s *Session) Eval(code string) (sandbox.Result, error) {
	if s.IsClosed() {
		return sandbox.Result{}, sandbox.ErrSessionClosed
	}

	s.output.Reset()

	f, err := syntax.LegacyFileOptions().Parse(exprFilename, code, 0)
	if err != nil {
		return sandbox.Result{
			Output: s.output.String(),
			Err:    syntaxError(err),
			Kind:   sandbox.KindRuntime,
		}, nil
	}
	rewriteLastExprToUnderscore(f)

	thread := s.newThread()
	s.tracker.Arm(thread)
	s.monitor.Arm(thread)

	evalErr := starlark.ExecREPLChunk(f, thread, s.globals)

	s.monitor.Disarm()
	s.tracker.Observe(evalErr)

	output := s.output.String()

	if evalErr != nil {
		kind := classifyError(s.monitor.Expired(), s.tracker.Exceeded())
		logging.Warn().
			Add(logging.SessionID(s.id)).
			Add(logging.ErrorKind(kind.String())).
			Msg("eval failed")
		return sandbox.Result{Output: output, Err: evalErr, Kind: kind}, nil
	}

	value := "None"
	if v, ok := s.globals["_"]; ok && v != nil {
		value = v.String()
	}
	return sandbox.Result{Output: output, Value: value, Kind: sandbox.KindNone}, nil
}

// classifyError mirrors the original's priority order: a fired deadline
// always outranks an exceeded allocation ceiling, which outranks a plain
// runtime error, since either resource monitor may have raced the
// interpreter into stopping for the "wrong"-looking reason first.
func classifyError(timedOut, memExceeded bool) sandbox.ErrorKind {
	switch {
	case timedOut:
		return sandbox.KindTimeout
	case memExceeded:
		return sandbox.KindMemoryLimit
	default:
		return sandbox.KindRuntime
	}
}

func syntaxError(err error) error {
	return &syntaxErr{msg: err.Error()}
}

type syntaxErr struct{ msg string }

func (e *syntaxErr) Error() string { return "SyntaxError: " + e.msg }

// Reset discards all user-defined bindings and rebuilds the interpreter
// state from scratch, re-registering every currently known tool function.
// Limits and the registry itself are untouched.
func (s *Session) Reset() error {
	if s.IsClosed() {
		return sandbox.ErrSessionClosed
	}
	s.rebuild()
	s.output.Reset()
	logging.Debug().
		Add(logging.SessionID(s.id)).
		Add(logging.FunctionCount(s.registry.Len())).
		Msg("session reset")
	return nil
}

// Close releases the session. It is idempotent.
func (s *Session) Close() error {
	if s.IsClosed() {
		return nil
	}
	s.lifecyc.Close()
	logging.Debug().Add(logging.SessionID(s.id)).Msg("session closed")
	return nil
}

// ID returns the session's identifier, used for log correlation.
func (s *Session) ID() string { return s.id }
