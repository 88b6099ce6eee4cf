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

// Package actor implements an in-process actor runtime: actors with private
// state subscribe typed handlers to addresses and communicate exclusively by
// asynchronous messages, while supervisors own the queues and pump delivery
// on behalf of a pluggable execution backend.
package actor

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	uberatomic "go.uber.org/atomic"

	"github.com/tochemey/mailroom/errors"
	"github.com/tochemey/mailroom/log"
)

// InitStarter is implemented by actor values that acquire resources during
// initialization. The implementation must eventually call Actor.BeginInit,
// synchronously or after an asynchronous acquisition completes.
type InitStarter interface {
	InitStart(a *Actor)
}

// Starter is implemented by actor values that want to act as soon as the
// actor becomes operational.
type Starter interface {
	OnStart(a *Actor)
}

// ShutdownStarter is implemented by actor values that release resources
// during shutdown. The implementation must eventually call
// Actor.BeginShutdown.
type ShutdownStarter interface {
	ShutdownStart(a *Actor)
}

// ShutdownFinisher is implemented by actor values that want a well-defined
// release point: it runs exactly once, after every subscription point has
// been removed.
type ShutdownFinisher interface {
	ShutdownFinish(a *Actor)
}

// Actor is the unit of private state reacting to delivered messages. All of
// its methods, unless documented otherwise, must be called from its
// supervisor's executor, which in practice means from message handlers.
//
// Application behavior is attached as a delegate value; the optional
// InitStarter, Starter, ShutdownStarter and ShutdownFinisher interfaces hook
// the lifecycle, and typed handlers are added with Subscribe and
// SubscribeAt.
type Actor struct {
	id         string
	supervisor *Supervisor
	delegate   any
	behavior   *behavior
	address    *Address
	state      *uberatomic.Int32
	logger     log.Logger

	mu     sync.Mutex
	points []*SubscriptionPoint

	// pendingSubs counts subscriptions whose confirmation has not arrived
	// yet. Touched only on the executor.
	pendingSubs int

	initRequest     *Message
	shutdownRequest *Message

	// requests is the correlation table: request id to in-flight request.
	requests map[uint64]*pendingRequest
}

// newActor constructs an actor owned by the given supervisor, in StateNew.
// An actor does not outlive its supervisor.
func newActor(s *Supervisor, delegate any) *Actor {
	return &Actor{
		id:         uuid.NewString(),
		supervisor: s,
		delegate:   delegate,
		state:      uberatomic.NewInt32(int32(StateNew)),
		logger:     s.logger,
		requests:   make(map[uint64]*pendingRequest),
	}
}

// ID returns the actor unique identifier.
func (a *Actor) ID() string {
	return a.id
}

// Address returns the actor's primary address.
func (a *Actor) Address() *Address {
	return a.address
}

// Supervisor returns the supervisor owning the actor.
func (a *Actor) Supervisor() *Supervisor {
	return a.supervisor
}

// Delegate returns the application value spawned with the actor.
func (a *Actor) Delegate() any {
	return a.delegate
}

// State returns the actor's lifecycle state. Safe from any goroutine.
func (a *Actor) State() State {
	return State(a.state.Load())
}

// setState advances the state; the lifecycle never moves backward.
func (a *Actor) setState(s State) {
	if State(a.state.Load()) < s {
		a.state.Store(int32(s))
	}
}

// NewAddress creates a secondary address owned by the actor's supervisor.
func (a *Actor) NewAddress() *Address {
	return a.supervisor.makeAddress(a)
}

// Send delivers the payload to the destination address. The message is
// appended to the queue of the supervisor owning the destination and
// dispatched when that supervisor next pumps.
func (a *Actor) Send(dest *Address, payload any) {
	a.supervisor.route(newMessage(dest, payload))
}

// DoShutdown asks the actor's supervisor to shut the actor down. Shutdown
// is always supervisor initiated: the supervisor answers the trigger with a
// proper ShutdownRequest. Repeated calls collapse into a single shutdown.
func (a *Actor) DoShutdown() {
	if a.State() == StateShutDown {
		return
	}
	a.Send(a.supervisor.address, ShutdownTrigger{Target: a.address})
}

// BeginInit hands control to the init sequence: initialization confirms as
// soon as every outstanding subscription confirmation has arrived. It is
// called automatically unless the delegate implements InitStarter.
func (a *Actor) BeginInit() {
	a.behavior.onStartInit()
}

// BeginShutdown hands control to the shutdown sequence, which unsubscribes
// every subscription point and confirms the shutdown once the list drains.
// It is called automatically unless the delegate implements ShutdownStarter.
func (a *Actor) BeginShutdown() {
	a.behavior.onStartShutdown()
}

// doInitialize creates the primary address, installs the infrastructure
// handlers and moves the actor to StateInitializing. The unsubscription
// confirmation handler is installed first on purpose: the shutdown sweep
// removes points newest first, which keeps that handler reachable until its
// own confirmation has been consumed.
func (a *Actor) doInitialize() {
	if a.address == nil {
		a.address = a.supervisor.makeAddress(a)
	}
	if a.behavior == nil {
		a.behavior = newBehavior(a)
	}

	SubscribeAt(a, a.address, a.onUnsubscription)
	SubscribeAt(a, a.address, a.onInitialize)
	SubscribeAt(a, a.address, a.onStart)
	SubscribeAt(a, a.address, a.onShutdown)
	SubscribeAt(a, a.address, a.onShutdownTrigger)
	SubscribeAt(a, a.address, a.onSubscription)

	a.setState(StateInitializing)
}

// subscribeHandler records the subscription with the supervisor owning the
// address. Local subscriptions are inserted into the dispatch map at once
// and confirmed asynchronously; external ones round-trip through the owning
// supervisor.
func (a *Actor) subscribeHandler(h *Handler, addr *Address) {
	a.pendingSubs++
	if addr.supervisor == a.supervisor {
		a.supervisor.subscribeLocal(h, addr)
		return
	}
	a.Send(addr.supervisor.address, ExternalSubscription{Handler: h, Target: addr})
}

// Unsubscribe initiates the removal of a handler from the actor's primary
// address.
func (a *Actor) Unsubscribe(h *Handler) {
	a.unsubscribe(h, a.address, nil)
}

// UnsubscribeAt initiates the removal of a handler from the given address.
func (a *Actor) UnsubscribeAt(h *Handler, addr *Address) {
	a.unsubscribe(h, addr, nil)
}

// UnsubscribeWithCallback initiates the removal of a handler from a locally
// owned address; the callback fires once the confirmation has been
// consumed. Callbacks are not supported for externally owned addresses.
func (a *Actor) UnsubscribeWithCallback(h *Handler, addr *Address, callback func()) {
	a.unsubscribe(h, addr, callback)
}

func (a *Actor) unsubscribe(h *Handler, addr *Address, callback func()) {
	if !a.markUnsubscribing(h, addr) {
		a.logger.Debugf("actor=(%s) unsubscribe ignored, no live subscription point", a.id)
		return
	}
	if addr.supervisor == a.supervisor {
		a.supervisor.unsubscribeLocal(h, addr, callback)
		return
	}
	if callback != nil {
		a.logger.Errorf("actor=(%s) unsubscription callback dropped for external address=(%s)", a.id, addr.id)
	}
	a.Send(addr.supervisor.address, ExternalUnsubscription{Handler: h, Target: addr})
}

// onInitialize records the init request and triggers the initialization
// sequence, either through the delegate's InitStart hook or directly.
func (a *Actor) onInitialize(m *Message, _ InitializeActor) {
	if m.response {
		return
	}
	a.initRequest = m
	if starter, ok := a.delegate.(InitStarter); ok {
		starter.InitStart(a)
		return
	}
	a.BeginInit()
}

// initFinish confirms the initialization to the supervisor.
func (a *Actor) initFinish() {
	a.setState(StateInitialized)
	a.ReplyTo(a.initRequest, InitializeActor{Target: a.address})
	a.initRequest = nil
}

// onStart moves an initialized actor to the operational state.
func (a *Actor) onStart(_ *Message, _ StartActor) {
	if a.State() != StateInitialized {
		return
	}
	a.setState(StateOperational)
	if starter, ok := a.delegate.(Starter); ok {
		starter.OnStart(a)
	}
}

// onShutdown records the shutdown request and triggers the shutdown
// sequence. A shutdown arriving during initialization answers the pending
// init request with an error and proceeds directly to shutdown.
func (a *Actor) onShutdown(m *Message, _ ShutdownRequest) {
	if m.response {
		return
	}
	if a.State() >= StateShuttingDown {
		return
	}
	if a.initRequest != nil {
		a.ReplyWithError(a.initRequest, errors.ErrShutdownInterrupted)
		a.initRequest = nil
	}
	a.shutdownRequest = m
	a.setState(StateShuttingDown)
	if starter, ok := a.delegate.(ShutdownStarter); ok {
		starter.ShutdownStart(a)
		return
	}
	a.BeginShutdown()
}

// onShutdownTrigger lets any sender ask the actor to shut itself down.
func (a *Actor) onShutdownTrigger(_ *Message, _ ShutdownTrigger) {
	if s, ok := a.delegate.(*Supervisor); ok && a == s.Actor {
		return
	}
	a.DoShutdown()
}

// shutdownFinish is the last step of the shutdown sequence: it answers the
// pending shutdown request. It runs exactly once, after every subscription
// point has been removed.
func (a *Actor) shutdownFinish() {
	if a.State() == StateShutDown {
		return
	}
	a.setState(StateShutDown)
	if a.shutdownRequest != nil {
		a.ReplyTo(a.shutdownRequest, ShutdownConfirmation{Target: a.address})
		a.shutdownRequest = nil
	}
	if finisher, ok := a.delegate.(ShutdownFinisher); ok {
		finisher.ShutdownFinish(a)
	}
}

// forceShutdown destroys the actor without running the shutdown protocol.
// Used by the supervisor when the shutdown timeout escalates.
func (a *Actor) forceShutdown() {
	a.mu.Lock()
	a.points = nil
	a.mu.Unlock()
	a.pendingSubs = 0
	a.initRequest = nil
	a.shutdownRequest = nil
	a.setState(StateShutDown)
}

// onSubscription records a confirmed subscription point. A confirmation
// arriving while the actor is shutting down is immediately unsubscribed.
func (a *Actor) onSubscription(_ *Message, c SubscriptionConfirmation) {
	if a.State() == StateShutDown {
		// confirmation for a forcibly destroyed actor
		return
	}
	a.addPoint(&SubscriptionPoint{Handler: c.Handler, Address: c.Target})
	a.pendingSubs--
	if a.State() == StateShuttingDown {
		a.unsubscribe(c.Handler, c.Target, nil)
		return
	}
	a.behavior.onSubscription()
}

// onUnsubscription forgets a subscription point and commits the removal of
// the dispatch map entry on the owning supervisor.
func (a *Actor) onUnsubscription(_ *Message, c UnsubscriptionConfirmation) {
	if a.State() == StateShutDown {
		return
	}
	if !a.removePoint(c.Handler, c.Target) {
		a.fault(errors.ErrSubscriptionMissing)
	}
	a.supervisor.commitUnsubscription(c.Handler, c.Target)
	if c.Callback != nil {
		c.Callback()
	}
	a.behavior.onUnsubscription()
}

// completeExternalUnsubscription forgets the subscription point of an
// externally owned address once the owning supervisor has committed the
// removal.
func (a *Actor) completeExternalUnsubscription(c CommitUnsubscription) {
	if a.State() == StateShutDown {
		return
	}
	if !a.removePoint(c.Handler, c.Target) {
		a.fault(errors.ErrSubscriptionMissing)
	}
	a.behavior.onUnsubscription()
}

func (a *Actor) fault(err error) {
	a.logger.Errorf("actor=(%s) %v", a.id, err)
	a.supervisor.system.publishFault(a, err)
}

// addPoint appends a subscription point.
func (a *Actor) addPoint(point *SubscriptionPoint) {
	a.mu.Lock()
	a.points = append(a.points, point)
	a.mu.Unlock()
}

// removePoint forgets the most recently recorded point matching the pair.
func (a *Actor) removePoint(h *Handler, addr *Address) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.points) - 1; i >= 0; i-- {
		point := a.points[i]
		if point.Address == addr && point.Handler.Equal(h) {
			a.points = append(a.points[:i], a.points[i+1:]...)
			return true
		}
	}
	return false
}

// markUnsubscribing flags the most recent live point matching the pair.
func (a *Actor) markUnsubscribing(h *Handler, addr *Address) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.points) - 1; i >= 0; i-- {
		point := a.points[i]
		if point.Address == addr && point.Handler.Equal(h) && !point.unsubscribing {
			point.unsubscribing = true
			return true
		}
	}
	return false
}

// livePointsNewestFirst snapshots the points not yet being unsubscribed,
// newest first.
func (a *Actor) livePointsNewestFirst() []*SubscriptionPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*SubscriptionPoint, 0, len(a.points))
	for i := len(a.points) - 1; i >= 0; i-- {
		if !a.points[i].unsubscribing {
			out = append(out, a.points[i])
		}
	}
	return out
}

// pointsLen returns the number of recorded subscription points.
func (a *Actor) pointsLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.points)
}

// PointsCount returns the number of recorded subscription points. Safe from
// any goroutine once the supervisor is quiescent.
func (a *Actor) PointsCount() int {
	return a.pointsLen()
}

// Points returns a snapshot of the recorded subscription points.
func (a *Actor) Points() []SubscriptionPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]SubscriptionPoint, 0, len(a.points))
	for _, point := range a.points {
		out = append(out, *point)
	}
	return out
}

// ReplyTo answers a request with the given payload. The response is routed
// to the request's reply-to address and correlated by the request id.
func (a *Actor) ReplyTo(request *Message, payload any) {
	if request == nil || request.replyTo == nil {
		return
	}
	a.supervisor.route(&Message{
		kind:     reflect.TypeOf(payload),
		dest:     request.replyTo,
		payload:  payload,
		id:       request.id,
		response: true,
	})
}

// ReplyWithError answers a request with an error response of the expected
// response kind.
func (a *Actor) ReplyWithError(request *Message, err error) {
	if request == nil || request.replyTo == nil {
		return
	}
	kind := request.respKind
	if kind == nil {
		kind = request.kind
	}
	a.supervisor.route(&Message{
		kind:     kind,
		dest:     request.replyTo,
		id:       request.id,
		response: true,
		err:      err,
	})
}
