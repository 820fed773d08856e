// Package sandbox holds the value lattice, result, and error types shared
// between the host and the embedded interpreter, independent of whichever
// interpreter implements the boundary.
package sandbox

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of the value lattice a Value holds.
type Kind int

const (
	// KindUnit is the absent-value variant (host nil / sandbox None).
	KindUnit Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindInt is a 64-bit signed integer.
	KindInt
	// KindFloat is a 64-bit floating point number.
	KindFloat
	// KindBytes is an opaque byte string, not required to be valid UTF-8.
	KindBytes
	// KindSeq is an ordered sequence of values.
	KindSeq
	// KindMap is an ordered mapping of value keys to value entries.
	KindMap
)

// String returns the kind's name, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged union covering every type that can cross the host/sandbox
// boundary: unit, bool, int64, float64, byte-string, ordered sequence, and
// ordered mapping. It is the currency of tool arguments and results, and is
// deliberately independent of the embedded interpreter's own value types.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	bytes   []byte
	seq     []Value
	keys    []Value
	vals    []Value
}

// Unit returns the absent-value variant.
func Unit() Value { return Value{kind: KindUnit} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Int wraps a 64-bit integer.
func Int(n int64) Value { return Value{kind: KindInt, integer: n} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Bytes wraps a byte string. The slice is not copied; callers should not
// mutate it after handing it to a Value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Str is a convenience wrapper producing a Bytes value from a Go string.
func Str(s string) Value { return Value{kind: KindBytes, bytes: []byte(s)} }

// Seq wraps an ordered sequence of values.
func Seq(items ...Value) Value { return Value{kind: KindSeq, seq: items} }

// Map wraps an ordered mapping. keys and vals must be the same length;
// duplicate keys are permitted and kept in the Value as given. When the
// Value is converted to an interpreter dict, a later duplicate overwrites
// the value stored under the earlier key.
func Map(keys, vals []Value) Value {
	return Value{kind: KindMap, keys: keys, vals: vals}
}

// Kind reports which variant is held.
func (v Value) Kind() Kind { return v.kind }

// IsUnit reports whether v is the unit/absent value.
func (v Value) IsUnit() bool { return v.kind == KindUnit }

// AsBool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool { return v.boolean }

// AsInt returns the integer payload; only meaningful when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.integer }

// AsFloat returns the float payload; only meaningful when Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.float }

// AsBytes returns the byte payload; only meaningful when Kind() == KindBytes.
func (v Value) AsBytes() []byte { return v.bytes }

// AsString is a convenience accessor for AsBytes as a Go string.
func (v Value) AsString() string { return string(v.bytes) }

// AsSeq returns the sequence payload; only meaningful when Kind() == KindSeq.
func (v Value) AsSeq() []Value { return v.seq }

// AsMap returns the parallel key/value slices; only meaningful when
// Kind() == KindMap.
func (v Value) AsMap() ([]Value, []Value) { return v.keys, v.vals }

// String renders v for diagnostics and test assertions. It is not used to
// produce the sandbox eval result text — that comes from the interpreter's
// own rendering of its native value, per the deliberate independence this
// package keeps from any one embedded interpreter.
func (v Value) String() string {
	switch v.kind {
	case KindUnit:
		return "()"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindBytes:
		return strconv.Quote(string(v.bytes))
	case KindSeq:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.keys))
		for i := range v.keys {
			parts[i] = fmt.Sprintf("%s: %s", v.keys[i].String(), v.vals[i].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}
