// Package internal is a hand-translated subset of the coordinator's
// http_function.proto and kafka_egress.proto schemas: only the messages
// and fields the invocation bridge actually touches (see spec §6). It is
// encoded with protowire directly instead of through generated
// descriptors, since the full wire schema is a consumed-as-is external
// contract, not something this module needs to reflect over.
package internal

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// appendString writes a length-delimited string field.
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendString(b, v)
	return b
}

// appendBytes writes a length-delimited bytes field.
func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, v)
	return b
}

// appendMessage writes an embedded message field given its pre-encoded bytes.
func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, v)
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(v))
	return b
}

func appendVarint(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(v))
	return b
}

func appendFixed32(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, v)
	return b
}

func appendFixed64(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, v)
	return b
}

// fieldVisitor is called once per top-level field encountered while
// decoding a message; it returns the number of bytes it consumed from the
// remainder of the buffer for the current field's payload.
type fieldVisitor func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, visit fieldVisitor) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("internal: malformed tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		consumed, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if consumed < 0 {
			return fmt.Errorf("internal: unexpected field %d of wire type %d", num, typ)
		}
		b = b[consumed:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte) (string, int, error) {
	if typ != protowire.BytesType {
		return "", 0, fmt.Errorf("internal: expected bytes wire type, got %d", typ)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", 0, fmt.Errorf("internal: malformed string: %w", protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("internal: expected bytes wire type, got %d", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("internal: malformed bytes: %w", protowire.ParseError(n))
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, n, nil
}

func consumeBool(typ protowire.Type, b []byte) (bool, int, error) {
	if typ != protowire.VarintType {
		return false, 0, fmt.Errorf("internal: expected varint wire type, got %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return false, 0, fmt.Errorf("internal: malformed varint: %w", protowire.ParseError(n))
	}
	return protowire.DecodeBool(v), n, nil
}

func consumeVarint(typ protowire.Type, b []byte) (int64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("internal: expected varint wire type, got %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("internal: malformed varint: %w", protowire.ParseError(n))
	}
	return int64(v), n, nil
}

func skipField(typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("internal: malformed field: %w", protowire.ParseError(n))
	}
	return n, nil
}
