package sandbox

import (
	"bytes"

	"github.com/canonical/starlark/starlark"
)

// OutputBuffer captures everything a script writes via print/p during one
// Eval, mirroring the original's growable output buffer that is reset at
// the start of every eval, never at Reset time (Reset already yields a
// fresh interpreter state, so a fresh buffer is implicit there too).
type OutputBuffer struct {
	buf bytes.Buffer
}

// Reset clears any captured output.
func (o *OutputBuffer) Reset() { o.buf.Reset() }

// String returns everything captured so far.
func (o *OutputBuffer) String() string { return o.buf.String() }

// Print is installed as the thread's Print hook, backing the predeclared
// print() builtin: one line per call, exactly as the interpreter's default
// stderr-writing Print would, except captured instead of written out.
func (o *OutputBuffer) Print(_ *starlark.Thread, msg string) {
	o.buf.WriteString(msg)
	o.buf.WriteByte('\n')
}

// pBuiltin implements p(...), the second Kernel-style override from the
// original: it appends the String() of every argument on its own line and
// returns its (sole) argument unchanged, so p() can be used inline as an
// identity-with-side-effect the way Ruby's Kernel#p is used.
func (o *OutputBuffer) pBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	for _, a := range args {
		o.buf.WriteString(a.String())
		o.buf.WriteByte('\n')
	}
	switch len(args) {
	case 0:
		return starlark.None, nil
	case 1:
		return args[0], nil
	default:
		return args, nil
	}
}
