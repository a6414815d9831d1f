package statefun

import (
	"fmt"

	"github.com/statefun-io/statefun-go/internal"
)

// Message is the wire form of a single argument, outgoing message, or
// egress/state payload: a TypeName paired with its encoded bytes. The core
// never introspects the bytes; it only carries them alongside their
// TypeName (spec §3 TypedPayload).
type Message struct {
	Typename string
	Value    []byte
}

// NewMessage wraps a raw (typename, bytes) pair as a Message.
func NewMessage(typename string, value []byte) Message {
	return Message{Typename: typename, Value: value}
}

func messageFromProto(tv *internal.TypedValue) Message {
	if tv == nil {
		return Message{}
	}
	return Message{Typename: tv.Typename, Value: tv.Value}
}

func (m Message) toProto() *internal.TypedValue {
	return &internal.TypedValue{
		Typename: m.Typename,
		HasValue: len(m.Value) > 0,
		Value:    m.Value,
	}
}

// Type pairs a TypeName with the Serializable codec for a Go type T. It is
// the handle handlers use to decode an incoming Message or to encode a
// value as an outgoing one.
type Type[T any] struct {
	Typename string
	codec    Serializable[T]
}

// NewType declares a Type for a user-defined TypeName and codec.
func NewType[T any](typename string, codec Serializable[T]) Type[T] {
	return Type[T]{Typename: typename, codec: codec}
}

// Get decodes msg as a T, failing with a domain error if msg's TypeName
// does not match this Type's TypeName (spec §4.1, scenario S6).
func (t Type[T]) Get(msg Message) (T, error) {
	var zero T
	if msg.Typename != t.Typename {
		return zero, fmt.Errorf("incompatible types. Expected: %s Payload: %s", t.Typename, msg.Typename)
	}
	return t.codec.Decode(msg.Value)
}

// Message packages a value of T as a Message under this Type's TypeName.
func (t Type[T]) Message(value T) (Message, error) {
	bytes, err := t.codec.Encode(value)
	if err != nil {
		return Message{}, fmt.Errorf("statefun: encoding %s: %w", t.Typename, err)
	}
	return Message{Typename: t.Typename, Value: bytes}, nil
}

// Built-in Types for the six scalar TypeNames, ready to use with Type.Get,
// Type.Message, and the Send, SendAfterTyped and EgressTyped helpers.
var (
	BoolType   = NewType(BoolTypeName, Bool)
	IntType    = NewType(IntTypeName, Int)
	LongType   = NewType(LongTypeName, Long)
	FloatType  = NewType(FloatTypeName, Float)
	DoubleType = NewType(DoubleTypeName, Double)
	StringType = NewType(StringTypeName, String)
)
