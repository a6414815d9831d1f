package internal

import "google.golang.org/protobuf/encoding/protowire"

// MutationType mirrors FromFunction.PersistedValueMutation.MutationType.
type MutationType int32

const (
	MutationTypeDelete MutationType = 0
	MutationTypeModify MutationType = 1
)

// ExpirationMode mirrors FromFunction.ExpirationSpec.Mode.
type ExpirationMode int32

const (
	ExpirationModeNone        ExpirationMode = 0
	ExpirationModeAfterInvoke ExpirationMode = 1
	ExpirationModeAfterWrite  ExpirationMode = 2
)

// FromFunctionPersistedValueMutation mirrors FromFunction.PersistedValueMutation.
type FromFunctionPersistedValueMutation struct {
	MutationType MutationType
	StateName    string
	StateValue   *TypedValue
}

func (m *FromFunctionPersistedValueMutation) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendVarint(b, 1, int64(m.MutationType))
	b = appendString(b, 2, m.StateName)
	b = appendMessage(b, 3, m.StateValue.Marshal())
	return b
}

// FromFunctionInvocation mirrors FromFunction.Invocation: one outgoing message.
type FromFunctionInvocation struct {
	Target   *Address
	Argument *TypedValue
}

func (m *FromFunctionInvocation) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.Target.Marshal())
	b = appendMessage(b, 2, m.Argument.Marshal())
	return b
}

// FromFunctionDelayedInvocation mirrors FromFunction.DelayedInvocation.
type FromFunctionDelayedInvocation struct {
	Target                *Address
	IsCancellationRequest bool
	CancellationToken     string
	DelayInMs             int64
	Argument              *TypedValue
}

func (m *FromFunctionDelayedInvocation) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.Target.Marshal())
	b = appendBool(b, 2, m.IsCancellationRequest)
	b = appendString(b, 3, m.CancellationToken)
	b = appendVarint(b, 4, m.DelayInMs)
	b = appendMessage(b, 5, m.Argument.Marshal())
	return b
}

// FromFunctionEgressMessage mirrors FromFunction.EgressMessage.
type FromFunctionEgressMessage struct {
	EgressNamespace string
	EgressType      string
	Argument        *TypedValue
}

func (m *FromFunctionEgressMessage) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.EgressNamespace)
	b = appendString(b, 2, m.EgressType)
	b = appendMessage(b, 3, m.Argument.Marshal())
	return b
}

// FromFunctionExpirationSpec mirrors FromFunction.ExpirationSpec.
type FromFunctionExpirationSpec struct {
	Mode              ExpirationMode
	ExpireAfterMillis int64
}

func (m *FromFunctionExpirationSpec) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendVarint(b, 1, int64(m.Mode))
	b = appendVarint(b, 2, m.ExpireAfterMillis)
	return b
}

// FromFunctionPersistedValueSpec mirrors FromFunction.PersistedValueSpec.
type FromFunctionPersistedValueSpec struct {
	StateName      string
	TypeTypename   string
	ExpirationSpec *FromFunctionExpirationSpec
}

func (m *FromFunctionPersistedValueSpec) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendString(b, 1, m.StateName)
	b = appendString(b, 2, m.TypeTypename)
	b = appendMessage(b, 3, m.ExpirationSpec.Marshal())
	return b
}

// FromFunctionIncompleteInvocationContext mirrors
// FromFunction.IncompleteInvocationContext.
type FromFunctionIncompleteInvocationContext struct {
	MissingValues []*FromFunctionPersistedValueSpec
}

func (m *FromFunctionIncompleteInvocationContext) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	for _, v := range m.MissingValues {
		b = appendMessage(b, 1, v.Marshal())
	}
	return b
}

// FromFunctionInvocationResponse mirrors FromFunction.InvocationResponse.
type FromFunctionInvocationResponse struct {
	OutgoingMessages   []*FromFunctionInvocation
	DelayedInvocations []*FromFunctionDelayedInvocation
	OutgoingEgresses   []*FromFunctionEgressMessage
	StateMutations     []*FromFunctionPersistedValueMutation
}

func (m *FromFunctionInvocationResponse) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	for _, v := range m.OutgoingMessages {
		b = appendMessage(b, 1, v.Marshal())
	}
	for _, v := range m.DelayedInvocations {
		b = appendMessage(b, 2, v.Marshal())
	}
	for _, v := range m.OutgoingEgresses {
		b = appendMessage(b, 3, v.Marshal())
	}
	for _, v := range m.StateMutations {
		b = appendMessage(b, 4, v.Marshal())
	}
	return b
}

// FromFunction mirrors the top-level FromFunction envelope this worker
// returns. Exactly one of InvocationResult / IncompleteInvocationContext
// is set, matching spec §4.7's "never both, never neither" invariant.
type FromFunction struct {
	InvocationResult            *FromFunctionInvocationResponse
	IncompleteInvocationContext *FromFunctionIncompleteInvocationContext
}

func (m *FromFunction) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	b = appendMessage(b, 1, m.InvocationResult.Marshal())
	b = appendMessage(b, 2, m.IncompleteInvocationContext.Marshal())
	return b
}

// The decode side of FromFunction (and its nested messages) is only
// needed by tests exercising the wire boundary end-to-end; the worker
// itself never decodes a FromFunction it did not just build.

func unmarshalFromFunctionPersistedValueMutation(b []byte) (*FromFunctionPersistedValueMutation, error) {
	m := &FromFunctionPersistedValueMutation{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, rest)
			if err != nil {
				return 0, err
			}
			m.MutationType = MutationType(v)
			return n, nil
		case 2:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.StateName = v
			return n, nil
		case 3:
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

func unmarshalFromFunctionInvocation(b []byte) (*FromFunctionInvocation, error) {
	m := &FromFunctionInvocation{}
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

func unmarshalFromFunctionDelayedInvocation(b []byte) (*FromFunctionDelayedInvocation, error) {
	m := &FromFunctionDelayedInvocation{}
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
			v, n, err := consumeBool(typ, rest)
			if err != nil {
				return 0, err
			}
			m.IsCancellationRequest = v
			return n, nil
		case 3:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.CancellationToken = v
			return n, nil
		case 4:
			v, n, err := consumeVarint(typ, rest)
			if err != nil {
				return 0, err
			}
			m.DelayInMs = v
			return n, nil
		case 5:
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

func unmarshalFromFunctionEgressMessage(b []byte) (*FromFunctionEgressMessage, error) {
	m := &FromFunctionEgressMessage{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.EgressNamespace = v
			return n, nil
		case 2:
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.EgressType = v
			return n, nil
		case 3:
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

func unmarshalFromFunctionExpirationSpec(b []byte) (*FromFunctionExpirationSpec, error) {
	m := &FromFunctionExpirationSpec{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeVarint(typ, rest)
			if err != nil {
				return 0, err
			}
			m.Mode = ExpirationMode(v)
			return n, nil
		case 2:
			v, n, err := consumeVarint(typ, rest)
			if err != nil {
				return 0, err
			}
			m.ExpireAfterMillis = v
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

func unmarshalFromFunctionPersistedValueSpec(b []byte) (*FromFunctionPersistedValueSpec, error) {
	m := &FromFunctionPersistedValueSpec{}
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
			v, n, err := consumeString(typ, rest)
			if err != nil {
				return 0, err
			}
			m.TypeTypename = v
			return n, nil
		case 3:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			es, err := unmarshalFromFunctionExpirationSpec(v)
			if err != nil {
				return 0, err
			}
			m.ExpirationSpec = es
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

func unmarshalFromFunctionIncompleteInvocationContext(b []byte) (*FromFunctionIncompleteInvocationContext, error) {
	m := &FromFunctionIncompleteInvocationContext{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			spec, err := unmarshalFromFunctionPersistedValueSpec(v)
			if err != nil {
				return 0, err
			}
			m.MissingValues = append(m.MissingValues, spec)
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

func unmarshalFromFunctionInvocationResponse(b []byte) (*FromFunctionInvocationResponse, error) {
	m := &FromFunctionInvocationResponse{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			inv, err := unmarshalFromFunctionInvocation(v)
			if err != nil {
				return 0, err
			}
			m.OutgoingMessages = append(m.OutgoingMessages, inv)
			return n, nil
		case 2:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			di, err := unmarshalFromFunctionDelayedInvocation(v)
			if err != nil {
				return 0, err
			}
			m.DelayedInvocations = append(m.DelayedInvocations, di)
			return n, nil
		case 3:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			eg, err := unmarshalFromFunctionEgressMessage(v)
			if err != nil {
				return 0, err
			}
			m.OutgoingEgresses = append(m.OutgoingEgresses, eg)
			return n, nil
		case 4:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			mut, err := unmarshalFromFunctionPersistedValueMutation(v)
			if err != nil {
				return 0, err
			}
			m.StateMutations = append(m.StateMutations, mut)
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

// UnmarshalFromFunction decodes a FromFunction envelope. Used by tests
// exercising the HTTP boundary round-trip; the worker itself never needs it.
func UnmarshalFromFunction(b []byte) (*FromFunction, error) {
	m := &FromFunction{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, rest []byte) (int, error) {
		switch num {
		case 1:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			resp, err := unmarshalFromFunctionInvocationResponse(v)
			if err != nil {
				return 0, err
			}
			m.InvocationResult = resp
			return n, nil
		case 2:
			v, n, err := consumeBytes(typ, rest)
			if err != nil {
				return 0, err
			}
			ctx, err := unmarshalFromFunctionIncompleteInvocationContext(v)
			if err != nil {
				return 0, err
			}
			m.IncompleteInvocationContext = ctx
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
