// Package enclave embeds a sandboxed, hermetic scripting interpreter inside
// a host Go process and exposes it as a stateful evaluation service:
// scripts manipulate values and call host-registered functions, but reach
// nothing else — no filesystem, network, process table, or environment.
package enclave

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-enclave/enclave/domain/sandbox"
	"github.com/go-enclave/enclave/domain/tool"
	infrasandbox "github.com/go-enclave/enclave/infrastructure/sandbox"
	"github.com/go-enclave/enclave/infrastructure/storage/memory"
)

// Result is the outcome of one Eval call.
type Result = sandbox.Result

// ErrorKind classifies a failed Result.
type ErrorKind = sandbox.ErrorKind

// Kind constants, re-exported for callers who don't want to import the
// domain package directly.
const (
	KindNone        = sandbox.KindNone
	KindRuntime     = sandbox.KindRuntime
	KindTimeout     = sandbox.KindTimeout
	KindMemoryLimit = sandbox.KindMemoryLimit
)

// TimeoutError and MemoryLimitError are re-exported so callers can
// errors.As against them without importing domain/sandbox directly.
type TimeoutError = sandbox.TimeoutError
type MemoryLimitError = sandbox.MemoryLimitError

// ErrSessionClosed is returned by Eval/Reset once the Enclave is closed.
var ErrSessionClosed = sandbox.ErrSessionClosed

// ErrTooManyFunctions is returned by Expose when the function registry is full.
var ErrTooManyFunctions = tool.ErrTooManyFuncs

// Func is a host function callable from sandboxed scripts.
type Func = tool.Func

var (
	defaultsMu      sync.Mutex
	defaultTimeout  = 5 * time.Second
	defaultMemLimit int64 // 0 == unlimited
)

// SetDefaultTimeout changes the process-wide default timeout used by New
// when no WithTimeout option is given.
func SetDefaultTimeout(d time.Duration) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultTimeout = d
}

// SetDefaultMemoryLimit changes the process-wide default memory limit (in
// bytes) used by New when no WithMemoryLimit option is given. 0 means
// unlimited.
func SetDefaultMemoryLimit(n int64) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultMemLimit = n
}

func currentDefaults() (time.Duration, int64) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	return defaultTimeout, defaultMemLimit
}

// config accumulates functional options before Session construction.
type config struct {
	timeout     time.Duration
	memoryLimit int64
	haveTimeout bool
	haveMemory  bool
}

// Option configures an Enclave at construction time.
type Option func(*config)

// WithTimeout sets the wall-clock deadline for every Eval call. A duration
// of 0 disables the deadline monitor.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d; c.haveTimeout = true }
}

// WithMemoryLimit sets the allocation ceiling in bytes. A limit of 0
// disables the tracking allocator.
func WithMemoryLimit(n int64) Option {
	return func(c *config) { c.memoryLimit = n; c.haveMemory = true }
}

// Enclave is the host-facing facade over a single sandboxed session.
type Enclave struct {
	session  *infrasandbox.Session
	registry tool.Registry
}

// New creates a live Enclave. Unset options fall back to the process-wide
// defaults (SetDefaultTimeout / SetDefaultMemoryLimit).
func New(opts ...Option) (*Enclave, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	defTimeout, defMem := currentDefaults()
	if !cfg.haveTimeout {
		cfg.timeout = defTimeout
	}
	if !cfg.haveMemory {
		cfg.memoryLimit = defMem
	}

	registry := memory.NewFuncRegistry()
	session := infrasandbox.New(registry, cfg.timeout, cfg.memoryLimit)

	return &Enclave{session: session, registry: registry}, nil
}

// Eval evaluates code against the enclave's persistent globals. The
// returned error is non-nil exactly when Result.Kind is KindTimeout or
// KindMemoryLimit, and is a *TimeoutError or *MemoryLimitError
// respectively — a Go-idiomatic way to let callers errors.As a specific
// resource-limit failure while the Result stays fully populated either way.
// A closed enclave returns ErrSessionClosed instead of a Result.
func (e *Enclave) Eval(code string) (Result, error) {
	result, err := e.session.Eval(code)
	if err != nil {
		return Result{}, err
	}
	switch result.Kind {
	case sandbox.KindTimeout:
		return result, &sandbox.TimeoutError{Timeout: e.timeoutString()}
	case sandbox.KindMemoryLimit:
		return result, &sandbox.MemoryLimitError{Limit: e.memoryLimit()}
	default:
		return result, nil
	}
}

func (e *Enclave) timeoutString() string {
	return e.session.MonitorTimeout().String()
}

func (e *Enclave) memoryLimit() int64 {
	return e.session.TrackerLimit()
}

// Reset discards all user-defined bindings, keeping registered functions
// and limits intact.
func (e *Enclave) Reset() error { return e.session.Reset() }

// Close releases the enclave. It is idempotent.
func (e *Enclave) Close() error { return e.session.Close() }

// IsClosed reports whether Close has been called.
func (e *Enclave) IsClosed() bool { return e.session.IsClosed() }

// Expose registers a single function under name, callable from scripts as
// name(...). Returns ErrTooManyFunctions once tool.MaxFunctions is reached.
func (e *Enclave) Expose(name string, fn Func) error {
	if err := e.registry.Register(name, fn); err != nil {
		return err
	}
	return e.session.BindFunction(name)
}

// ExposeStruct reflects over obj's exported methods matching the shape
// func(args []sandbox.Value) (sandbox.Value, error) and registers each one
// under its method name. This is the Go-typed analog of exposing "an
// instance whose public methods become sandbox-callable": Go's static
// typing means only methods with exactly this signature are discoverable,
// rather than an open-ended free-function module.
func (e *Enclave) ExposeStruct(obj any) error {
	v := reflect.ValueOf(obj)
	t := v.Type()
	funcType := reflect.TypeOf(Func(nil))

	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		method := v.Method(i)
		if !method.Type().ConvertibleTo(funcType) {
			continue
		}
		fn, ok := method.Convert(funcType).Interface().(Func)
		if !ok {
			continue
		}
		if err := e.Expose(m.Name, fn); err != nil {
			return fmt.Errorf("expose %s: %w", m.Name, err)
		}
	}
	return nil
}

// WithEnclave constructs an Enclave, runs fn against it, and guarantees
// Close is called before returning — the scoped-use helper for callers who
// don't want to manage the lifecycle themselves.
func WithEnclave(opts []Option, fn func(*Enclave) error) error {
	e, err := New(opts...)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}
