package statefun

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/statefun-io/statefun-go/internal"
	"github.com/stretchr/testify/assert"
)

func TestServeHTTPValidation(t *testing.T) {
	registry := NewFunctionRegistry()
	server := httptest.NewServer(registry)
	defer server.Close()

	resp, err := http.Get(server.URL)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "incorrect validation code on bad method")

	resp, err = http.Post(server.URL, "application/json", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode, "incorrect validation code on bad media type")

	resp, err = http.Post(server.URL, octetStream, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "incorrect validation code on missing content")

	resp, err = http.Post(server.URL, octetStream, strings.NewReader("bad content"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "incorrect validation code on malformed content")
}

func TestServeHTTPFunctionHandler(t *testing.T) {
	registry := NewFunctionRegistry()
	seenCount := IntValueSpec("seen_count", NeverExpires())
	registry.RegisterFunction(greeterFunctionType, []ValueSpecBase{seenCount.Base()}, func(ctx *Context, msg Message) *Effects {
		value, ok, err := GetState(ctx, seenCount)
		assert.NoError(t, err)
		if !ok {
			value = 0
		}

		effects := NewEffects()
		assert.NoError(t, UpdateState(effects, seenCount, value+1))
		assert.NoError(t, Send(effects, NewAddress(greeterFunctionType, "bob"), StringType, "hi"))
		return effects
	})

	server := httptest.NewServer(registry)
	defer server.Close()

	toFunction := &internal.ToFunction{
		Invocation: &internal.ToFunctionInvocationBatchRequest{
			Target: addressToProto(NewAddress(greeterFunctionType, "alice")),
			State:  []*internal.ToFunctionPersistedValue{persistedValue("seen_count", []byte{})},
			Invocations: []*internal.ToFunctionInvocation{
				{Argument: &internal.TypedValue{}},
			},
		},
	}

	resp, err := http.Post(server.URL, octetStream, strings.NewReader(string(toFunction.Marshal())))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, octetStream, resp.Header.Get("Content-Type"))

	body := make([]byte, 0, 1024)
	buf := make([]byte, 1024)
	for {
		n, err := resp.Body.Read(buf)
		body = append(body, buf[:n]...)
		if err != nil {
			break
		}
	}

	fromFunction, err := internal.UnmarshalFromFunction(body)
	assert.NoError(t, err)
	assert.NotNil(t, fromFunction.InvocationResult)
	assert.Len(t, fromFunction.InvocationResult.StateMutations, 1)
	assert.Len(t, fromFunction.InvocationResult.OutgoingMessages, 1)
}
