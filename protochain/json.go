package protochain

import (
	"fmt"
	"strconv"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// AppendJSON appends the JSON rendering of the descriptor to dst, in the
// shape of a JavaScript property descriptor, e.g.
// {"value":1,"writable":true,"enumerable":true,"configurable":true}.
//
// Data values of the builtin scalar types render as JSON scalars, records
// as {"object":<id>}, [Undefined] and functions are omitted, and any other
// value renders as the string produced by fmt. The get and set functions
// of accessors are rendered as booleans indicating their presence.
func (d Descriptor) AppendJSON(dst []byte) []byte {
	dst = append(dst, '{')
	if d.Accessor {
		dst = append(dst, `"get":`...)
		dst = strconv.AppendBool(dst, d.Get != nil)
		dst = append(dst, `,"set":`...)
		dst = strconv.AppendBool(dst, d.Set != nil)
	} else {
		if b, ok := appendValue(dst, `"value":`, d.Value); ok {
			dst = append(b, ',')
		}
		dst = append(dst, `"writable":`...)
		dst = strconv.AppendBool(dst, d.Writable)
	}
	dst = append(dst, `,"enumerable":`...)
	dst = strconv.AppendBool(dst, d.Enumerable)
	dst = append(dst, `,"configurable":`...)
	dst = strconv.AppendBool(dst, d.Configurable)
	return append(dst, '}')
}

// MarshalJSON implements [encoding/json.Marshaler], see
// [Descriptor.AppendJSON].
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return d.AppendJSON(nil), nil
}

func (d Descriptor) String() string {
	return string(d.AppendJSON(nil))
}

// appendValue appends prefix then v, unless v is not representable, in
// which case dst is returned unmodified, with false.
func appendValue(dst []byte, prefix string, v any) ([]byte, bool) {
	switch v := v.(type) {
	case undefined, Getter, Setter, Method, func(*Object, ...any) (any, error):
		return dst, false
	case nil:
		dst = append(append(dst, prefix...), `null`...)
	case string:
		dst = jsonenc.AppendString(append(dst, prefix...), v)
	case bool:
		dst = strconv.AppendBool(append(dst, prefix...), v)
	case float64:
		dst = jsonenc.AppendFloat64(append(dst, prefix...), v)
	case float32:
		dst = jsonenc.AppendFloat32(append(dst, prefix...), v)
	case int:
		dst = strconv.AppendInt(append(dst, prefix...), int64(v), 10)
	case int32:
		dst = strconv.AppendInt(append(dst, prefix...), int64(v), 10)
	case int64:
		dst = strconv.AppendInt(append(dst, prefix...), v, 10)
	case uint:
		dst = strconv.AppendUint(append(dst, prefix...), uint64(v), 10)
	case uint32:
		dst = strconv.AppendUint(append(dst, prefix...), uint64(v), 10)
	case uint64:
		dst = strconv.AppendUint(append(dst, prefix...), v, 10)
	case *Object:
		dst = append(append(dst, prefix...), `{"object":`...)
		dst = strconv.AppendUint(dst, idOf(v), 10)
		dst = append(dst, '}')
	case *Symbol:
		dst = jsonenc.AppendString(append(dst, prefix...), v.String())
	default:
		dst = jsonenc.AppendString(append(dst, prefix...), fmt.Sprint(v))
	}
	return dst, true
}
