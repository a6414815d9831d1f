package internal

import "google.golang.org/protobuf/encoding/protowire"

// ToFunctionPersistedValue mirrors ToFunction.PersistedValue: one named
// cell of the state snapshot the coordinator sends on every batch.
type ToFunctionPersistedValue struct {
	StateName  string
	StateValue *TypedValue
}

func (m *ToFunctionPersistedValue) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.StateName)
	b = appendMessage(b, 2, m.StateValue.Marshal())
	return b
}

func unmarshalToFunctionPersistedValue(b []byte) (*ToFunctionPersistedValue, error) {
	m := &ToFunctionPersistedValue{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.StateName = v
			return n, nil
		case 2:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			tv, err := UnmarshalTypedValue(v)
			if err != nil {
				return 0, err
			}
			m.StateValue = tv
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

// ToFunctionInvocation mirrors ToFunction.Invocation: one queued message.
type ToFunctionInvocation struct {
	Caller   *Address
	Argument *TypedValue
}

func (m *ToFunctionInvocation) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.Caller.Marshal())
	b = appendMessage(b, 2, m.Argument.Marshal())
	return b
}

func unmarshalToFunctionInvocation(b []byte) (*ToFunctionInvocation, error) {
	m := &ToFunctionInvocation{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			addr, err := UnmarshalAddress(v)
			if err != nil {
				return 0, err
			}
			m.Caller = addr
			return n, nil
		case 2:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			tv, err := UnmarshalTypedValue(v)
			if err != nil {
				return 0, err
			}
			m.Argument = tv
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

// ToFunctionInvocationBatchRequest mirrors ToFunction.InvocationBatchRequest.
type ToFunctionInvocationBatchRequest struct {
	Target      *Address
	State       []*ToFunctionPersistedValue
	Invocations []*ToFunctionInvocation
}

func (m *ToFunctionInvocationBatchRequest) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.Target.Marshal())
	for _, s := range m.State {
		b = appendMessage(b, 2, s.Marshal())
	}
	for _, inv := range m.Invocations {
		b = appendMessage(b, 3, inv.Marshal())
	}
	return b
}

func unmarshalToFunctionInvocationBatchRequest(b []byte) (*ToFunctionInvocationBatchRequest, error) {
	m := &ToFunctionInvocationBatchRequest{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			addr, err := UnmarshalAddress(v)
			if err != nil {
				return 0, err
			}
			m.Target = addr
			return n, nil
		case 2:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			pv, err := unmarshalToFunctionPersistedValue(v)
			if err != nil {
				return 0, err
			}
			m.State = append(m.State, pv)
			return n, nil
		case 3:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			inv, err := unmarshalToFunctionInvocation(v)
			if err != nil {
				return 0, err
			}
			m.Invocations = append(m.Invocations, inv)
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

// ToFunction mirrors the top-level ToFunction envelope the coordinator sends.
// It carries a single oneof field; today that oneof has one variant
// (Invocation), matching the subset this worker depends on (spec §6).
type ToFunction struct {
	Invocation *ToFunctionInvocationBatchRequest
}

func (m *ToFunction) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.Invocation.Marshal())
	return b
}

func UnmarshalToFunction(b []byte) (*ToFunction, error) {
	m := &ToFunction{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			batch, err := unmarshalToFunctionInvocationBatchRequest(v)
			if err != nil {
				return 0, err
			}
			m.Invocation = batch
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
