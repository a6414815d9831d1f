package statefun

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// TypeName identifiers for the six built-in scalar types, matching the
// coordinator's well-known wrapper wire formats bit-exactly (spec §4.1).
const (
	BoolTypeName   = "io.statefun.types/bool"
	IntTypeName    = "io.statefun.types/int"
	LongTypeName   = "io.statefun.types/long"
	FloatTypeName  = "io.statefun.types/float"
	DoubleTypeName = "io.statefun.types/double"
	StringTypeName = "io.statefun.types/string"
)

// Serializable is implemented by any user type that wants to travel as a
// ValueSpec or as a message argument/return value. The core never
// introspects the bytes it produces; it only pairs them with the TypeName
// on the wire.
type Serializable[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// codec bundles the two directions of a Serializable without requiring
// callers to implement an interface: most built-ins and simple user types
// are easier to write as two functions.
type codec[T any] struct {
	encode func(T) ([]byte, error)
	decode func([]byte) (T, error)
}

func (c codec[T]) Encode(value T) ([]byte, error) { return c.encode(value) }
func (c codec[T]) Decode(data []byte) (T, error)  { return c.decode(data) }

// NewCodec builds a Serializable from a plain encode/decode function pair,
// for user types that don't want to declare a named type for their codec.
func NewCodec[T any](encode func(T) ([]byte, error), decode func([]byte) (T, error)) Serializable[T] {
	return codec[T]{encode: encode, decode: decode}
}

func boolCodec() Serializable[bool] {
	return NewCodec(
		func(v bool) ([]byte, error) {
			var b []byte
			if v {
				b = protowire.AppendTag(b, 1, protowire.VarintType)
				b = protowire.AppendVarint(b, protowire.EncodeBool(true))
			}
			return b, nil
		},
		func(data []byte) (bool, error) {
			return decodeScalarVarint(data, func(v uint64) bool { return protowire.DecodeBool(v) })
		},
	)
}

// intCodec and longCodec use the fixed-width wire forms (sfixed32/sfixed64),
// not varint: the coordinator's IntWrapper/LongWrapper are fixed-width for
// cross-language (Java int/long) bit-exactness (spec §4.1), matching the
// already-fixed-width float/double codecs below.
func intCodec() Serializable[int32] {
	return NewCodec(
		func(v int32) ([]byte, error) {
			var b []byte
			if v != 0 {
				b = protowire.AppendTag(b, 1, protowire.Fixed32Type)
				b = protowire.AppendFixed32(b, uint32(v))
			}
			return b, nil
		},
		func(data []byte) (int32, error) {
			if len(data) == 0 {
				return 0, nil
			}
			num, typ, n := protowire.ConsumeTag(data)
			if n < 0 || num != 1 || typ != protowire.Fixed32Type {
				return 0, fmt.Errorf("statefun: malformed %s payload", IntTypeName)
			}
			v, n2 := protowire.ConsumeFixed32(data[n:])
			if n2 < 0 {
				return 0, fmt.Errorf("statefun: malformed %s payload", IntTypeName)
			}
			return int32(v), nil
		},
	)
}

func longCodec() Serializable[int64] {
	return NewCodec(
		func(v int64) ([]byte, error) {
			var b []byte
			if v != 0 {
				b = protowire.AppendTag(b, 1, protowire.Fixed64Type)
				b = protowire.AppendFixed64(b, uint64(v))
			}
			return b, nil
		},
		func(data []byte) (int64, error) {
			if len(data) == 0 {
				return 0, nil
			}
			num, typ, n := protowire.ConsumeTag(data)
			if n < 0 || num != 1 || typ != protowire.Fixed64Type {
				return 0, fmt.Errorf("statefun: malformed %s payload", LongTypeName)
			}
			v, n2 := protowire.ConsumeFixed64(data[n:])
			if n2 < 0 {
				return 0, fmt.Errorf("statefun: malformed %s payload", LongTypeName)
			}
			return int64(v), nil
		},
	)
}

func floatCodec() Serializable[float32] {
	return NewCodec(
		func(v float32) ([]byte, error) {
			var b []byte
			if v != 0 {
				b = protowire.AppendTag(b, 1, protowire.Fixed32Type)
				b = protowire.AppendFixed32(b, math.Float32bits(v))
			}
			return b, nil
		},
		func(data []byte) (float32, error) {
			if len(data) == 0 {
				return 0, nil
			}
			num, typ, n := protowire.ConsumeTag(data)
			if n < 0 || num != 1 || typ != protowire.Fixed32Type {
				return 0, fmt.Errorf("statefun: malformed %s payload", FloatTypeName)
			}
			v, n2 := protowire.ConsumeFixed32(data[n:])
			if n2 < 0 {
				return 0, fmt.Errorf("statefun: malformed %s payload", FloatTypeName)
			}
			return math.Float32frombits(v), nil
		},
	)
}

func doubleCodec() Serializable[float64] {
	return NewCodec(
		func(v float64) ([]byte, error) {
			var b []byte
			if v != 0 {
				b = protowire.AppendTag(b, 1, protowire.Fixed64Type)
				b = protowire.AppendFixed64(b, math.Float64bits(v))
			}
			return b, nil
		},
		func(data []byte) (float64, error) {
			if len(data) == 0 {
				return 0, nil
			}
			num, typ, n := protowire.ConsumeTag(data)
			if n < 0 || num != 1 || typ != protowire.Fixed64Type {
				return 0, fmt.Errorf("statefun: malformed %s payload", DoubleTypeName)
			}
			v, n2 := protowire.ConsumeFixed64(data[n:])
			if n2 < 0 {
				return 0, fmt.Errorf("statefun: malformed %s payload", DoubleTypeName)
			}
			return math.Float64frombits(v), nil
		},
	)
}

func stringCodec() Serializable[string] {
	return NewCodec(
		func(v string) ([]byte, error) {
			var b []byte
			if v != "" {
				b = protowire.AppendTag(b, 1, protowire.BytesType)
				b = protowire.AppendString(b, v)
			}
			return b, nil
		},
		func(data []byte) (string, error) {
			if len(data) == 0 {
				return "", nil
			}
			num, typ, n := protowire.ConsumeTag(data)
			if n < 0 || num != 1 || typ != protowire.BytesType {
				return "", fmt.Errorf("statefun: malformed %s payload", StringTypeName)
			}
			v, n2 := protowire.ConsumeString(data[n:])
			if n2 < 0 {
				return "", fmt.Errorf("statefun: malformed %s payload", StringTypeName)
			}
			return v, nil
		},
	)
}

func decodeScalarVarint[T any](data []byte, convert func(uint64) T) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, nil
	}
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 || num != 1 || typ != protowire.VarintType {
		return zero, fmt.Errorf("statefun: malformed scalar wrapper payload")
	}
	v, n2 := protowire.ConsumeVarint(data[n:])
	if n2 < 0 {
		return zero, fmt.Errorf("statefun: malformed scalar wrapper payload")
	}
	return convert(v), nil
}

// Bool is the built-in Serializable for io.statefun.types/bool.
var Bool = boolCodec()

// Int is the built-in Serializable for io.statefun.types/int.
var Int = intCodec()

// Long is the built-in Serializable for io.statefun.types/long.
var Long = longCodec()

// Float is the built-in Serializable for io.statefun.types/float.
var Float = floatCodec()

// Double is the built-in Serializable for io.statefun.types/double.
var Double = doubleCodec()

// String is the built-in Serializable for io.statefun.types/string.
var String = stringCodec()
