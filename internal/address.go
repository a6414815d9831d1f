package internal

import "google.golang.org/protobuf/encoding/protowire"

// Address mirrors io.statefun.sdk.reqreply.Address.
type Address struct {
	Namespace string
	Type      string
	Id        string
}

func (m *Address) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.Namespace)
	b = appendString(b, 2, m.Type)
	b = appendString(b, 3, m.Id)
	return b
}

func UnmarshalAddress(b []byte) (*Address, error) {
	m := &Address{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Namespace = v
			return n, nil
		case 2:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Type = v
			return n, nil
		case 3:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Id = v
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
