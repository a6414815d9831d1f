package statefun

import "fmt"

// StatefulFunction is the signature every registered handler implements: it
// receives a read-only Context and the decoded argument Message, and
// returns the Effects it wants applied. A handler that wants no effects at
// all still returns a (possibly empty) *Effects; a nil return is treated
// as "no effects" by the invocation bridge.
type StatefulFunction func(ctx *Context, message Message) *Effects

// registeredFunction pairs a handler with the state cells it declared at
// registration time, which the invocation bridge needs for missing-state
// negotiation (spec §4.7) before it ever calls the handler.
type registeredFunction struct {
	specs   []ValueSpecBase
	handler StatefulFunction
}

// FunctionRegistry maps FunctionTypes to their handlers and declared state.
// It also implements http.Handler (see transport.go), so a registry built
// with NewFunctionRegistry can be handed directly to http.ListenAndServe.
// The zero value has no function map and panics on RegisterFunction.
type FunctionRegistry struct {
	functions map[FunctionType]registeredFunction
}

// NewFunctionRegistry creates an empty FunctionRegistry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[FunctionType]registeredFunction)}
}

// RegisterFunction binds handler to functionType, declaring the named
// state cells it intends to read or write via specs. Registering the same
// FunctionType twice is a programming error and panics, the same way
// registering a duplicate route with net/http's ServeMux would.
func (r *FunctionRegistry) RegisterFunction(functionType FunctionType, specs []ValueSpecBase, handler StatefulFunction) {
	if _, exists := r.functions[functionType]; exists {
		panic(fmt.Sprintf("statefun: function %s already registered", functionType))
	}
	r.functions[functionType] = registeredFunction{specs: specs, handler: handler}
}
