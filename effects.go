package statefun

import (
	"fmt"
	"time"
)

type stateUpdateKind int

const (
	stateUpdateModify stateUpdateKind = iota
	stateUpdateDelete
)

// stateUpdate is one Update/Delete effect recorded against a named cell.
// The invocation bridge coalesces these per batch (spec §4.7): last write
// per cell wins, and a Delete always reports as a wire Delete mutation
// even if preceded by an Update for the same cell in the same batch.
type stateUpdate struct {
	spec  ValueSpecBase
	kind  stateUpdateKind
	value []byte
}

type effectInvocation struct {
	target Address
	msg    Message
}

type effectDelayedInvocation struct {
	target            Address
	delay             time.Duration
	cancellationToken string
	isCancellation    bool
	msg               Message
}

type effectEgress struct {
	id  EgressIdentifier
	msg Message
}

// Effects is a write-only accumulator for the side effects of a single
// handler invocation: outgoing messages, delayed messages, cancellations,
// egress records, and state mutations. All operations append; nothing a
// handler appends is ever mutated by a later call on the same Effects —
// coalescing across a whole batch happens once, in the invocation bridge,
// not here (spec §4.5).
//
// Effects is not safe for concurrent use: a single invocation is always
// single-threaded per spec §5, so there is nothing to guard against.
type Effects struct {
	invocations []effectInvocation
	delayed     []effectDelayedInvocation
	egresses    []effectEgress
	stateUpdate []stateUpdate
}

// NewEffects creates a new, empty Effects.
func NewEffects() *Effects {
	return &Effects{}
}

// Send enqueues an outgoing message to addr.
func (e *Effects) Send(addr Address, msg Message) error {
	e.invocations = append(e.invocations, effectInvocation{target: addr, msg: msg})
	return nil
}

// SendAfter enqueues a delayed message to addr, tagged with a
// user-chosen cancellationToken by which the function may later cancel it
// via CancelDelayedMessage — even from a later batch, as long as the
// token is still known to the caller.
func (e *Effects) SendAfter(addr Address, delay time.Duration, cancellationToken string, msg Message) error {
	e.delayed = append(e.delayed, effectDelayedInvocation{
		target:            addr,
		delay:             delay,
		cancellationToken: cancellationToken,
		msg:               msg,
	})
	return nil
}

// CancelDelayedMessage enqueues a cancellation for a previously scheduled
// delayed message identified by cancellationToken. The token need not
// correspond to any message actually in flight; excess cancellations are
// legal and simply no-op downstream (spec §4.7).
func (e *Effects) CancelDelayedMessage(cancellationToken string) {
	e.delayed = append(e.delayed, effectDelayedInvocation{
		cancellationToken: cancellationToken,
		isCancellation:    true,
	})
}

// Egress enqueues an egress record to the sink identified by id.
func (e *Effects) Egress(id EgressIdentifier, msg Message) error {
	e.egresses = append(e.egresses, effectEgress{id: id, msg: msg})
	return nil
}

// DeleteState enqueues a delete of the named cell.
func (e *Effects) DeleteState(spec ValueSpecBase) {
	e.stateUpdate = append(e.stateUpdate, stateUpdate{spec: spec, kind: stateUpdateDelete})
}

// updateStateBytes is the type-erased primitive UpdateState builds on.
func (e *Effects) updateStateBytes(spec ValueSpecBase, value []byte) {
	e.stateUpdate = append(e.stateUpdate, stateUpdate{spec: spec, kind: stateUpdateModify, value: value})
}

// Send encodes value under t's TypeName and enqueues it as an outgoing
// message to addr. (A generic method can't hang off *Effects directly —
// Go methods may not carry additional type parameters — so this and its
// siblings below are free functions taking the Effects as their first
// argument, mirroring the GetState[T] helper on Context.)
func Send[T any](e *Effects, addr Address, t Type[T], value T) error {
	msg, err := t.Message(value)
	if err != nil {
		return err
	}
	return e.Send(addr, msg)
}

// SendAfterTyped encodes value under t's TypeName and enqueues it as a
// delayed message to addr.
func SendAfterTyped[T any](e *Effects, addr Address, delay time.Duration, cancellationToken string, t Type[T], value T) error {
	msg, err := t.Message(value)
	if err != nil {
		return err
	}
	return e.SendAfter(addr, delay, cancellationToken, msg)
}

// EgressTyped encodes value under t's TypeName and enqueues it as an
// egress record to id.
func EgressTyped[T any](e *Effects, id EgressIdentifier, t Type[T], value T) error {
	msg, err := t.Message(value)
	if err != nil {
		return err
	}
	return e.Egress(id, msg)
}

// UpdateState encodes value under spec's codec and enqueues it as a state
// write to the cell spec names.
func UpdateState[T any](e *Effects, spec ValueSpec[T], value T) error {
	encoded, err := spec.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("statefun: encoding state %q: %w", spec.Name, err)
	}
	e.updateStateBytes(spec.Base(), encoded)
	return nil
}
