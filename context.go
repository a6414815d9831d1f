package statefun

// Context is a read-only view into a single invocation: the addresses
// involved and a snapshot of the function's persisted state as of just
// before this invocation. Context is immutable and borrows the working
// state map that the invocation bridge maintains for the whole batch; it
// must not be retained past the handler call that received it.
type Context struct {
	self   Address
	caller *Address
	state  map[string][]byte
}

func newContext(self Address, caller *Address, state map[string][]byte) *Context {
	return &Context{self: self, caller: caller, state: state}
}

// Self returns the address of the function instance under evaluation.
func (c *Context) Self() Address {
	return c.self
}

// Caller returns the address of the calling function, or nil if the
// message originated from an ingress (spec §3, §4.4).
func (c *Context) Caller() *Address {
	return c.caller
}

// GetState looks up the named cell declared by spec. It keys the lookup on
// the cell's name only, never its TypeName, because the coordinator may
// omit the TypeName on a cell that was allocated but never written
// (spec §3 invariants, §4.7). It returns ok=false iff the cell is
// unallocated or empty — including a cell that was deleted earlier in the
// same batch, which is kept in the working map as "allocated, empty"
// rather than removed (spec §3, §8 invariant 5). A decode error on a
// non-empty cell is returned in err, never panics.
func GetState[T any](ctx *Context, spec ValueSpec[T]) (value T, ok bool, err error) {
	raw, present := ctx.state[spec.Name]
	if !present || len(raw) == 0 {
		return value, false, nil
	}
	decoded, err := spec.codec.Decode(raw)
	if err != nil {
		return value, true, err
	}
	return decoded, true, nil
}
