package internal

import "google.golang.org/protobuf/encoding/protowire"

// TypedValue mirrors io.statefun.sdk.reqreply.TypedValue: a self-describing
// payload carrying its TypeName alongside its serialized bytes.
type TypedValue struct {
	Typename string
	HasValue bool
	Value    []byte
}

func (m *TypedValue) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.Typename)
	b = appendBool(b, 2, m.HasValue)
	b = appendBytes(b, 3, m.Value)
	return b
}

func UnmarshalTypedValue(b []byte) (*TypedValue, error) {
	m := &TypedValue{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Typename = v
			return n, nil
		case 2:
			v, n, err := consumeBool(typ, rest)
			if err != nil {
				return 0, err
			}
			m.HasValue = v
			return n, nil
		case 3:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Value = v
			return n, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
