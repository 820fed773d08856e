package sandbox

import (
	"fmt"
	"time"

	"github.com/canonical/starlark/starlark"

	"github.com/go-enclave/enclave/domain/sandbox"
	"github.com/go-enclave/enclave/domain/tool"
	"github.com/go-enclave/enclave/infrastructure/logging"
)

// dispatch is the single marshal/invoke/marshal path every registered
// function's builtin funnels through — the Go analog of the original's one
// shared trampoline C function. Go closures capture the target name
// directly at builtin-construction time rather than recovering it from the
// interpreter's call-info the way the C trampoline reads mrb's ci->mid;
// every call still passes through this one function body.
func dispatch(registry tool.Registry, name string) starlark.Value {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
		fn, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, tool.ErrFuncNotFound)
		}
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: keyword arguments are not supported", name)
		}

		marshalled := make([]sandbox.Value, 0, len(args))
		for _, a := range args {
			v, marshalErr := FromStarlark(a)
			if marshalErr != nil {
				return nil, marshalErr
			}
			marshalled = append(marshalled, v)
		}

		// A host function is arbitrary Go code the enclave does not control;
		// a panic in it (bad index, nil dereference, ...) must surface as an
		// ordinary evaluation error, not unwind out of Eval as a Go panic.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: host function panicked: %v", name, r)
			}
		}()

		start := time.Now()
		out, callErr := fn(marshalled)
		logging.Trace().
			Add(logging.ToolName(name)).
			Add(logging.Duration(time.Since(start))).
			Msg("tool call")
		if callErr != nil {
			return nil, callErr
		}

		return ToStarlark(out)
	})
}
