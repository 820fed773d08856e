// Package tool defines the host-callable function shape and registry that
// the sandbox trampoline dispatches into.
package tool

import "github.com/go-enclave/enclave/domain/sandbox"

// Func is a host function exposed to sandboxed scripts. args are already
// marshalled into the value lattice; the returned Value (or error) is
// marshalled back into the interpreter's own value space by the trampoline.
// There is no userdata parameter: a Go closure captures whatever state the
// original C callback's void* pointer would have carried.
type Func func(args []sandbox.Value) (sandbox.Value, error)

// MaxFunctions bounds how many functions a single registry may hold.
const MaxFunctions = 64
