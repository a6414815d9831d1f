package statefun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarCodecsRoundTrip(t *testing.T) {
	boolBytes, err := Bool.Encode(true)
	assert.NoError(t, err)
	boolVal, err := Bool.Decode(boolBytes)
	assert.NoError(t, err)
	assert.True(t, boolVal)

	intBytes, err := Int.Encode(42)
	assert.NoError(t, err)
	intVal, err := Int.Decode(intBytes)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), intVal)

	longBytes, err := Long.Encode(1 << 40)
	assert.NoError(t, err)
	longVal, err := Long.Decode(longBytes)
	assert.NoError(t, err)
	assert.Equal(t, int64(1<<40), longVal)

	floatBytes, err := Float.Encode(3.5)
	assert.NoError(t, err)
	floatVal, err := Float.Decode(floatBytes)
	assert.NoError(t, err)
	assert.Equal(t, float32(3.5), floatVal)

	doubleBytes, err := Double.Encode(3.14159)
	assert.NoError(t, err)
	doubleVal, err := Double.Decode(doubleBytes)
	assert.NoError(t, err)
	assert.Equal(t, 3.14159, doubleVal)

	stringBytes, err := String.Encode("hello")
	assert.NoError(t, err)
	stringVal, err := String.Decode(stringBytes)
	assert.NoError(t, err)
	assert.Equal(t, "hello", stringVal)
}

func TestScalarCodecsOmitZeroValue(t *testing.T) {
	b, err := Bool.Encode(false)
	assert.NoError(t, err)
	assert.Empty(t, b)

	i, err := Int.Encode(0)
	assert.NoError(t, err)
	assert.Empty(t, i)

	l, err := Long.Encode(0)
	assert.NoError(t, err)
	assert.Empty(t, l)

	f, err := Float.Encode(0)
	assert.NoError(t, err)
	assert.Empty(t, f)

	d, err := Double.Encode(0)
	assert.NoError(t, err)
	assert.Empty(t, d)

	s, err := String.Encode("")
	assert.NoError(t, err)
	assert.Empty(t, s)
}

func TestScalarCodecsDecodeEmptyAsZeroValue(t *testing.T) {
	boolVal, err := Bool.Decode(nil)
	assert.NoError(t, err)
	assert.False(t, boolVal)

	intVal, err := Int.Decode(nil)
	assert.NoError(t, err)
	assert.Zero(t, intVal)

	stringVal, err := String.Decode(nil)
	assert.NoError(t, err)
	assert.Empty(t, stringVal)
}

func TestTypeGetRejectsMismatchedTypename(t *testing.T) {
	msg := NewMessage(StringTypeName, []byte("irrelevant"))
	_, err := IntType.Get(msg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible types")
	assert.Contains(t, err.Error(), IntTypeName)
	assert.Contains(t, err.Error(), StringTypeName)
}

func TestTypeMessageRoundTrip(t *testing.T) {
	msg, err := LongType.Message(99)
	assert.NoError(t, err)
	assert.Equal(t, LongTypeName, msg.Typename)

	value, err := LongType.Get(msg)
	assert.NoError(t, err)
	assert.Equal(t, int64(99), value)
}
