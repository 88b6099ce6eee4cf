/*
 * MIT License
 *
 * Copyright (c) 2022-2026 Tochemey
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

// Payload types reserved by the framework. Application code may subscribe
// to them (for instance to observe another actor's lifecycle) but must not
// send them itself, except through the dedicated actor and supervisor
// operations.

// InitializeActor is the payload of the init request a supervisor sends to
// a freshly spawned actor, and of the confirmation the actor answers with.
type InitializeActor struct {
	// Target identifies the confirming actor on confirmations; it is nil on
	// the request.
	Target *Address
}

// StartActor switches an initialized actor to the operational state.
type StartActor struct{}

// ShutdownRequest asks an actor to shut down. It is always sent by the
// actor's supervisor.
type ShutdownRequest struct{}

// ShutdownTrigger asks a supervisor to issue a ShutdownRequest to the actor
// owning the target address. The indirection keeps shutdown supervisor
// initiated.
type ShutdownTrigger struct {
	Target *Address
}

// ShutdownConfirmation answers a ShutdownRequest once every subscription
// point of the actor has been removed.
type ShutdownConfirmation struct {
	Target *Address
}

// SubscriptionConfirmation tells an actor that its handler has been
// recorded under the target address.
type SubscriptionConfirmation struct {
	Handler *Handler
	Target  *Address
}

// UnsubscriptionConfirmation tells an actor that its handler is being
// removed from the target address. The optional callback fires once the
// confirmation has been consumed.
type UnsubscriptionConfirmation struct {
	Handler  *Handler
	Target   *Address
	Callback func()
}

// ExternalSubscription asks the supervisor owning the target address to
// record a handler subscribed from another supervisor.
type ExternalSubscription struct {
	Handler *Handler
	Target  *Address
}

// ExternalUnsubscription asks the supervisor owning the target address to
// remove a handler subscribed from another supervisor.
type ExternalUnsubscription struct {
	Handler *Handler
	Target  *Address
}

// CommitUnsubscription completes an external unsubscription on the actor
// side once the owning supervisor has removed its map entry.
type CommitUnsubscription struct {
	Handler *Handler
	Target  *Address
}

// StateRequest asks a supervisor for the lifecycle state of the actor
// owning the subject address.
type StateRequest struct {
	Subject *Address
}

// StateResponse answers a StateRequest.
type StateResponse struct {
	State State
}

// TimerTrigger is delivered to a supervisor queue when one of its timers
// fires.
type TimerTrigger struct {
	ID uint64
}
