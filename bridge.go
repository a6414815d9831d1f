package statefun

import (
	"github.com/statefun-io/statefun-go/internal"
)

// invoke runs one InvocationBatchRequest against r and returns the
// FromFunction envelope to send back, following the six-step algorithm:
// build working state, resolve the handler, negotiate missing state,
// replay invocations in order against the working state, coalesce state
// effects per cell, and serialize the response (spec §4.7).
func (r *FunctionRegistry) invoke(batch *internal.ToFunctionInvocationBatchRequest) (*internal.FromFunction, error) {
	self := addressFromProto(batch.Target)

	fn, ok := r.functions[self.Type]
	if !ok {
		return nil, ErrFunctionNotFound
	}

	working := make(map[string][]byte, len(batch.State))
	for _, pv := range batch.State {
		if pv.StateValue != nil && pv.StateValue.HasValue {
			working[pv.StateName] = pv.StateValue.Value
		} else {
			working[pv.StateName] = []byte{}
		}
	}

	if missing := missingValueSpecs(fn.specs, working); len(missing) > 0 {
		return &internal.FromFunction{
			IncompleteInvocationContext: &internal.FromFunctionIncompleteInvocationContext{
				MissingValues: missing,
			},
		}, nil
	}

	var (
		outgoing  []*internal.FromFunctionInvocation
		delayed   []*internal.FromFunctionDelayedInvocation
		egresses  []*internal.FromFunctionEgressMessage
		coalesced = newCellCoalescer()
	)

	for _, inv := range batch.Invocations {
		var caller *Address
		if inv.Caller != nil {
			c := addressFromProto(inv.Caller)
			caller = &c
		}
		arg := messageFromProto(inv.Argument)

		ctx := newContext(self, caller, working)
		effects := fn.handler(ctx, arg)
		if effects == nil {
			continue
		}

		for _, out := range effects.invocations {
			outgoing = append(outgoing, &internal.FromFunctionInvocation{
				Target:   addressToProto(out.target),
				Argument: out.msg.toProto(),
			})
		}

		for _, d := range effects.delayed {
			if d.isCancellation {
				delayed = append(delayed, &internal.FromFunctionDelayedInvocation{
					IsCancellationRequest: true,
					CancellationToken:     d.cancellationToken,
				})
				continue
			}
			delayed = append(delayed, &internal.FromFunctionDelayedInvocation{
				Target:            addressToProto(d.target),
				CancellationToken: d.cancellationToken,
				DelayInMs:         d.delay.Milliseconds(),
				Argument:          d.msg.toProto(),
			})
		}

		for _, eg := range effects.egresses {
			egresses = append(egresses, &internal.FromFunctionEgressMessage{
				EgressNamespace: eg.id.Namespace,
				EgressType:      eg.id.Name,
				Argument:        eg.msg.toProto(),
			})
		}

		for _, upd := range effects.stateUpdate {
			switch upd.kind {
			case stateUpdateModify:
				working[upd.spec.Name] = upd.value
			case stateUpdateDelete:
				working[upd.spec.Name] = []byte{}
			}
			coalesced.record(upd)
		}
	}

	return &internal.FromFunction{
		InvocationResult: &internal.FromFunctionInvocationResponse{
			OutgoingMessages:   outgoing,
			DelayedInvocations: delayed,
			OutgoingEgresses:   egresses,
			StateMutations:     coalesced.mutations(),
		},
	}, nil
}

// missingValueSpecs reports the declared specs whose cell name is not a
// key in working at all. This check is presence-only and deliberately
// ignores byte length: a cell that was allocated but never written
// arrives (and is kept) as an empty-but-present entry, which is not
// "missing" from the coordinator's point of view — only a key that never
// appeared in the snapshot triggers negotiation (spec §3, §4.7). This is
// intentionally the inverse sensitivity of GetState, which treats an
// empty cell as absent.
func missingValueSpecs(specs []ValueSpecBase, working map[string][]byte) []*internal.FromFunctionPersistedValueSpec {
	var missing []*internal.FromFunctionPersistedValueSpec
	for _, spec := range specs {
		if _, present := working[spec.Name]; present {
			continue
		}
		missing = append(missing, &internal.FromFunctionPersistedValueSpec{
			StateName:    spec.Name,
			TypeTypename: spec.Typename,
			ExpirationSpec: &internal.FromFunctionExpirationSpec{
				Mode:              internal.ExpirationMode(spec.Expiration.Mode.wireMode()),
				ExpireAfterMillis: spec.Expiration.expireAfterMillis(),
			},
		})
	}
	return missing
}

// cellCoalescer keeps the last write per named cell while preserving the
// order cells were first touched in the batch, so the wire response's
// mutation list is deterministic despite being built from a map.
type cellCoalescer struct {
	order  []string
	latest map[string]stateUpdate
}

func newCellCoalescer() *cellCoalescer {
	return &cellCoalescer{latest: make(map[string]stateUpdate)}
}

func (c *cellCoalescer) record(upd stateUpdate) {
	if _, seen := c.latest[upd.spec.Name]; !seen {
		c.order = append(c.order, upd.spec.Name)
	}
	c.latest[upd.spec.Name] = upd
}

func (c *cellCoalescer) mutations() []*internal.FromFunctionPersistedValueMutation {
	var out []*internal.FromFunctionPersistedValueMutation
	for _, name := range c.order {
		upd := c.latest[name]
		switch upd.kind {
		case stateUpdateModify:
			out = append(out, &internal.FromFunctionPersistedValueMutation{
				MutationType: internal.MutationTypeModify,
				StateName:    name,
				StateValue: &internal.TypedValue{
					Typename: upd.spec.Typename,
					HasValue: len(upd.value) > 0,
					Value:    upd.value,
				},
			})
		case stateUpdateDelete:
			out = append(out, &internal.FromFunctionPersistedValueMutation{
				MutationType: internal.MutationTypeDelete,
				StateName:    name,
			})
		}
	}
	return out
}
