package sandbox

import (
	"fmt"

	"github.com/canonical/starlark/starlark"

	"github.com/go-enclave/enclave/domain/sandbox"
)

// unsupportedTypeError formats the exact message the original interpreter's
// TypeError used for a value it couldn't marshal, kept verbatim so scripts
// and hosts written against the original's error text still match.
func unsupportedTypeError(typeName string) error {
	return fmt.Errorf("TypeError: unsupported type for sandbox: %s", typeName)
}

// ToStarlark converts a lattice Value into the interpreter's own value type.
func ToStarlark(v sandbox.Value) (starlark.Value, error) {
	switch v.Kind() {
	case sandbox.KindUnit:
		return starlark.None, nil
	case sandbox.KindBool:
		return starlark.Bool(v.AsBool()), nil
	case sandbox.KindInt:
		return starlark.MakeInt64(v.AsInt()), nil
	case sandbox.KindFloat:
		return starlark.Float(v.AsFloat()), nil
	case sandbox.KindBytes:
		return starlark.String(v.AsBytes()), nil
	case sandbox.KindSeq:
		items := v.AsSeq()
		elems := make([]starlark.Value, len(items))
		for i, item := range items {
			sv, err := ToStarlark(item)
			if err != nil {
				return nil, err
			}
			elems[i] = sv
		}
		return starlark.NewList(elems), nil
	case sandbox.KindMap:
		keys, vals := v.AsMap()
		d := starlark.NewDict(len(keys))
		for i := range keys {
			sk, err := ToStarlark(keys[i])
			if err != nil {
				return nil, err
			}
			sv, err := ToStarlark(vals[i])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(sk, sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return nil, unsupportedTypeError(v.Kind().String())
	}
}

// FromStarlark converts an interpreter value into the lattice Value,
// returning the original's exact TypeError message for anything outside
// the supported set (functions, sets, custom builtins, and so on).
func FromStarlark(sv starlark.Value) (sandbox.Value, error) {
	switch x := sv.(type) {
	case starlark.NoneType:
		return sandbox.Unit(), nil
	case starlark.Bool:
		return sandbox.Bool(bool(x)), nil
	case starlark.Int:
		n, ok := x.Int64()
		if !ok {
			return sandbox.Value{}, fmt.Errorf("sandbox: integer %s does not fit in 64 bits", x.String())
		}
		return sandbox.Int(n), nil
	case starlark.Float:
		return sandbox.Float(float64(x)), nil
	case starlark.String:
		return sandbox.Str(string(x)), nil
	case *starlark.List:
		items := make([]sandbox.Value, 0, x.Len())
		for i := 0; i < x.Len(); i++ {
			iv, err := FromStarlark(x.Index(i))
			if err != nil {
				return sandbox.Value{}, err
			}
			items = append(items, iv)
		}
		return sandbox.Seq(items...), nil
	case starlark.Tuple:
		items := make([]sandbox.Value, 0, len(x))
		for _, e := range x {
			iv, err := FromStarlark(e)
			if err != nil {
				return sandbox.Value{}, err
			}
			items = append(items, iv)
		}
		return sandbox.Seq(items...), nil
	case *starlark.Dict:
		keys := make([]sandbox.Value, 0, x.Len())
		vals := make([]sandbox.Value, 0, x.Len())
		for _, item := range x.Items() {
			k, err := FromStarlark(item[0])
			if err != nil {
				return sandbox.Value{}, err
			}
			v, err := FromStarlark(item[1])
			if err != nil {
				return sandbox.Value{}, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		return sandbox.Map(keys, vals), nil
	default:
		return sandbox.Value{}, unsupportedTypeError(sv.Type())
	}
}
