package statefun

import "errors"

// ErrFunctionNotFound is returned by the invocation bridge when a batch
// targets a FunctionType that was never registered. This is a caller/
// configuration error distinct from the coordinator's own missing-state
// negotiation, which is not an error at all (spec §4.7, §7).
var ErrFunctionNotFound = errors.New("statefun: function not found")

// ErrMalformedRequest names the condition the HTTP transport rejects with
// 400 Bad Request: a request body that is empty or fails to unmarshal as a
// ToFunction envelope. ServeHTTP reports it through the status code only;
// no function in this package returns this value.
var ErrMalformedRequest = errors.New("statefun: malformed request")
