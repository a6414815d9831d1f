package statefun

import (
	"testing"
	"time"

	"github.com/statefun-io/statefun-go/internal"
	"github.com/stretchr/testify/assert"
)

var greeterFunctionType = NewFunctionType("greeter.fns", "greeter")

func persistedValue(name string, value []byte) *internal.ToFunctionPersistedValue {
	return &internal.ToFunctionPersistedValue{
		StateName: name,
		StateValue: &internal.TypedValue{
			Typename: IntTypeName,
			HasValue: len(value) > 0,
			Value:    value,
		},
	}
}

func batchRequest(target Address, state []*internal.ToFunctionPersistedValue, invocations []*internal.ToFunctionInvocation) *internal.ToFunctionInvocationBatchRequest {
	return &internal.ToFunctionInvocationBatchRequest{
		Target:      addressToProto(target),
		State:       state,
		Invocations: invocations,
	}
}

// S1 — Missing state triggers negotiation.
func TestBridgeMissingStateTriggersNegotiation(t *testing.T) {
	registry := NewFunctionRegistry()
	seenCount := IntValueSpec("seen_count", ExpireAfterWrite(5*time.Second))
	lastSeen := LongValueSpec("last_seen", NeverExpires())
	registry.RegisterFunction(greeterFunctionType, []ValueSpecBase{seenCount.Base(), lastSeen.Base()}, func(ctx *Context, msg Message) *Effects {
		t.Fatal("handler must not run when state is missing")
		return nil
	})

	target := NewAddress(greeterFunctionType, "alice")
	batch := batchRequest(target, nil, []*internal.ToFunctionInvocation{
		{Argument: &internal.TypedValue{Typename: StringTypeName, HasValue: true, Value: []byte("login")}},
	})

	resp, err := registry.invoke(batch)
	assert.NoError(t, err)
	assert.Nil(t, resp.InvocationResult)
	assert.NotNil(t, resp.IncompleteInvocationContext)
	assert.Len(t, resp.IncompleteInvocationContext.MissingValues, 2)

	byName := map[string]*internal.FromFunctionPersistedValueSpec{}
	for _, v := range resp.IncompleteInvocationContext.MissingValues {
		byName[v.StateName] = v
	}

	seenCountMissing := byName["seen_count"]
	assert.Equal(t, IntTypeName, seenCountMissing.TypeTypename)
	assert.Equal(t, internal.ExpirationModeAfterWrite, seenCountMissing.ExpirationSpec.Mode)
	assert.Equal(t, int64(5000), seenCountMissing.ExpirationSpec.ExpireAfterMillis)

	lastSeenMissing := byName["last_seen"]
	assert.Equal(t, LongTypeName, lastSeenMissing.TypeTypename)
	assert.Equal(t, internal.ExpirationModeNone, lastSeenMissing.ExpirationSpec.Mode)
	assert.Equal(t, int64(0), lastSeenMissing.ExpirationSpec.ExpireAfterMillis)
}

// S2 — Three-invocation batch with in-batch visibility.
func TestBridgeThreeInvocationBatchVisibility(t *testing.T) {
	registry := NewFunctionRegistry()
	seenCount := IntValueSpec("seen_count", NeverExpires())
	var observed []int32
	registry.RegisterFunction(greeterFunctionType, []ValueSpecBase{seenCount.Base()}, func(ctx *Context, msg Message) *Effects {
		value, ok, err := GetState(ctx, seenCount)
		assert.NoError(t, err)
		if !ok {
			value = 0
		}
		observed = append(observed, value)

		effects := NewEffects()
		assert.NoError(t, UpdateState(effects, seenCount, value+1))
		return effects
	})

	target := NewAddress(greeterFunctionType, "alice")
	invocation := &internal.ToFunctionInvocation{Argument: &internal.TypedValue{}}
	batch := batchRequest(target, []*internal.ToFunctionPersistedValue{
		persistedValue("seen_count", []byte{}),
	}, []*internal.ToFunctionInvocation{invocation, invocation, invocation})

	resp, err := registry.invoke(batch)
	assert.NoError(t, err)
	assert.NotNil(t, resp.InvocationResult)
	assert.Empty(t, resp.InvocationResult.OutgoingMessages)
	assert.Equal(t, []int32{0, 1, 2}, observed)

	assert.Len(t, resp.InvocationResult.StateMutations, 1)
	mutation := resp.InvocationResult.StateMutations[0]
	assert.Equal(t, internal.MutationTypeModify, mutation.MutationType)
	assert.Equal(t, "seen_count", mutation.StateName)

	expected, err := Int.Encode(3)
	assert.NoError(t, err)
	assert.Equal(t, expected, mutation.StateValue.Value)
}

// S3 — Update then delete coalesces to delete.
func TestBridgeUpdateThenDeleteCoalescesToDelete(t *testing.T) {
	registry := NewFunctionRegistry()
	spec := IntValueSpec("x", NeverExpires())
	var sawNoneOnSecondInvocation bool
	first := true
	registry.RegisterFunction(greeterFunctionType, []ValueSpecBase{spec.Base()}, func(ctx *Context, msg Message) *Effects {
		effects := NewEffects()
		if first {
			first = false
			assert.NoError(t, UpdateState(effects, spec, 7))
			effects.DeleteState(spec.Base())
			return effects
		}
		_, ok, err := GetState(ctx, spec)
		assert.NoError(t, err)
		sawNoneOnSecondInvocation = !ok
		return effects
	})

	target := NewAddress(greeterFunctionType, "alice")
	batch := batchRequest(target, []*internal.ToFunctionPersistedValue{
		persistedValue("x", []byte{}),
	}, []*internal.ToFunctionInvocation{
		{Argument: &internal.TypedValue{}},
		{Argument: &internal.TypedValue{}},
	})

	resp, err := registry.invoke(batch)
	assert.NoError(t, err)
	assert.True(t, sawNoneOnSecondInvocation)
	assert.Len(t, resp.InvocationResult.StateMutations, 1)
	mutation := resp.InvocationResult.StateMutations[0]
	assert.Equal(t, internal.MutationTypeDelete, mutation.MutationType)
	assert.Equal(t, "x", mutation.StateName)
}

// S4 — Delayed send with cancellation token.
func TestBridgeDelayedSendWithCancellation(t *testing.T) {
	registry := NewFunctionRegistry()
	registry.RegisterFunction(greeterFunctionType, nil, func(ctx *Context, msg Message) *Effects {
		effects := NewEffects()
		assert.NoError(t, SendAfterTyped(effects, NewAddress(greeterFunctionType, "bob"), 3*time.Second, "tok-1", StringType, "hi"))
		effects.CancelDelayedMessage("tok-1")
		return effects
	})

	target := NewAddress(greeterFunctionType, "alice")
	batch := batchRequest(target, nil, []*internal.ToFunctionInvocation{{Argument: &internal.TypedValue{}}})

	resp, err := registry.invoke(batch)
	assert.NoError(t, err)
	assert.Len(t, resp.InvocationResult.DelayedInvocations, 2)

	first := resp.InvocationResult.DelayedInvocations[0]
	assert.False(t, first.IsCancellationRequest)
	assert.Equal(t, int64(3000), first.DelayInMs)
	assert.Equal(t, "tok-1", first.CancellationToken)
	assert.Equal(t, StringTypeName, first.Argument.Typename)

	second := resp.InvocationResult.DelayedInvocations[1]
	assert.True(t, second.IsCancellationRequest)
	assert.Equal(t, "tok-1", second.CancellationToken)
	assert.Nil(t, second.Target)
}

// S5 — Egress fan-out.
func TestBridgeEgressFanOut(t *testing.T) {
	registry := NewFunctionRegistry()
	egressID := NewEgressIdentifier("ns", "n")
	registry.RegisterFunction(greeterFunctionType, nil, func(ctx *Context, msg Message) *Effects {
		effects := NewEffects()
		assert.NoError(t, EgressTyped(effects, egressID, StringType, "greeting"))
		assert.NoError(t, EgressTyped(effects, egressID, StringType, "again"))
		return effects
	})

	target := NewAddress(greeterFunctionType, "alice")
	batch := batchRequest(target, nil, []*internal.ToFunctionInvocation{{Argument: &internal.TypedValue{}}})

	resp, err := registry.invoke(batch)
	assert.NoError(t, err)
	assert.Len(t, resp.InvocationResult.OutgoingEgresses, 2)

	first := resp.InvocationResult.OutgoingEgresses[0]
	assert.Equal(t, "ns", first.EgressNamespace)
	assert.Equal(t, "n", first.EgressType)
	assert.Equal(t, StringTypeName, first.Argument.Typename)
	firstVal, err := String.Decode(first.Argument.Value)
	assert.NoError(t, err)
	assert.Equal(t, "greeting", firstVal)

	second := resp.InvocationResult.OutgoingEgresses[1]
	secondVal, err := String.Decode(second.Argument.Value)
	assert.NoError(t, err)
	assert.Equal(t, "again", secondVal)
}

// S6 — Unknown type on incoming message.
func TestBridgeUnknownTypeOnIncomingMessage(t *testing.T) {
	barType := NewType("user/bar", String)

	msg := NewMessage("user/foo", []byte("irrelevant"))
	_, err := barType.Get(msg)
	assert.Error(t, err)
	assert.Equal(t, "incompatible types. Expected: user/bar Payload: user/foo", err.Error())
}

func TestBridgeUnknownFunctionTypeReturnsError(t *testing.T) {
	registry := NewFunctionRegistry()
	batch := batchRequest(NewAddress(NewFunctionType("greeter.fns", "nobody"), "alice"), nil, nil)

	_, err := registry.invoke(batch)
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}
