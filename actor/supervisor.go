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

import (
	"reflect"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	mapset "github.com/deckarep/golang-set/v2"
	uberatomic "go.uber.org/atomic"

	"github.com/tochemey/mailroom/errors"
	"github.com/tochemey/mailroom/log"
)

// Supervisor owns a message queue, a subscription map and a set of child
// actors, and drives message delivery on behalf of its backend. It is
// itself an actor: it has an address, subscription points and runs the same
// lifecycle state machine as its children.
//
// Supervisors sharing a locality share a single leader queue, so the pump
// of one drains the traffic of all of them and no synchronization is needed
// between them. Supervisors with distinct localities exchange messages
// through a thread-safe intake at the boundary.
type Supervisor struct {
	*Actor

	system  *System
	backend Backend
	logger  log.Logger

	shutdownTimeout   time.Duration
	locality          string
	policy            Policy
	shutdownCompleted func()

	// lead points to the locality leader, the supervisor whose queue and
	// pump serve every supervisor of the locality. It is the supervisor
	// itself when it leads.
	lead    *Supervisor
	queue   *queue.Queue
	pumping *uberatomic.Bool

	subs      *subscriptionMap
	addresses mapset.Set[*Address]
	children  []*Actor

	requestSeq *uberatomic.Uint64
	timerSeq   *uberatomic.Uint64

	// timers maps armed timer ids to their callbacks; entries are consumed
	// by TimerTrigger messages. Touched only on the executor.
	timers map[uint64]func()

	pendingShutdown   mapset.Set[*Actor]
	shutdownRequested bool
	ownShutdownBegun  bool
	shutdownTimer     uint64
}

// newSupervisor constructs a supervisor, installs its infrastructure
// handlers and enqueues its own init request. The supervisor becomes
// operational on its first pump.
func newSupervisor(sys *System, backend Backend, cfg *Config) *Supervisor {
	s := &Supervisor{
		system:            sys,
		backend:           backend,
		logger:            cfg.logger,
		shutdownTimeout:   cfg.shutdownTimeout,
		locality:          cfg.locality,
		policy:            cfg.policy,
		shutdownCompleted: cfg.shutdownCompleted,
		subs:              newSubscriptionMap(),
		addresses:         mapset.NewSet[*Address](),
		requestSeq:        uberatomic.NewUint64(0),
		timerSeq:          uberatomic.NewUint64(0),
		timers:            make(map[uint64]func()),
		pendingShutdown:   mapset.NewSet[*Actor](),
	}
	s.Actor = newActor(s, s)
	s.Actor.logger = cfg.logger

	if leader := sys.leaderFor(cfg.locality); leader != nil {
		s.lead = leader
	} else {
		s.lead = s
		s.queue = queue.New(64)
		s.pumping = uberatomic.NewBool(false)
		backend.Attach(s.Process)
	}

	s.doInitialize()
	s.subscribeSupervisorHandlers()
	s.sendRequest(s.address, InitializeActor{}, kindOf[InitializeActor]())
	return s
}

// subscribeSupervisorHandlers installs the handlers a supervisor serves on
// top of the plain actor ones.
func (s *Supervisor) subscribeSupervisorHandlers() {
	SubscribeAt(s.Actor, s.address, s.onStateRequest)
	SubscribeAt(s.Actor, s.address, s.onSupervisorShutdownTrigger)
	SubscribeAt(s.Actor, s.address, s.onTimerTrigger)
	SubscribeAt(s.Actor, s.address, s.onInitConfirmation)
	SubscribeAt(s.Actor, s.address, s.onShutdownConfirmation)
	SubscribeAt(s.Actor, s.address, s.onExternalSubscription)
	SubscribeAt(s.Actor, s.address, s.onExternalUnsubscription)
	SubscribeAt(s.Actor, s.address, s.onCommitUnsubscription)
}

// System returns the system context hosting the supervisor.
func (s *Supervisor) System() *System {
	return s.system
}

// Locality returns the locality token of the supervisor.
func (s *Supervisor) Locality() string {
	return s.locality
}

// Leader returns the locality leader.
func (s *Supervisor) Leader() *Supervisor {
	return s.lead
}

// Children returns a snapshot of the child actors.
func (s *Supervisor) Children() []*Actor {
	out := make([]*Actor, len(s.children))
	copy(out, s.children)
	return out
}

// QueueLen returns the number of messages pending in the leader queue.
func (s *Supervisor) QueueLen() int {
	return int(s.lead.queue.Len())
}

// SubscriptionCount returns the number of handlers recorded in the
// supervisor's subscription map.
func (s *Supervisor) SubscriptionCount() int {
	return s.subs.size()
}

// Spawn creates a child actor around the given delegate value and
// initializes it immediately. The actor reports StateInitialized once its
// infrastructure subscriptions are confirmed, and is started when the
// supervisor is operational.
func (s *Supervisor) Spawn(delegate any) *Actor {
	if s.State() >= StateShuttingDown {
		s.logger.Errorf("supervisor=(%s) cannot spawn: %v", s.Actor.id, errors.ErrDead)
		return nil
	}
	a := newActor(s, delegate)
	s.children = append(s.children, a)
	a.doInitialize()
	s.sendRequest(a.address, InitializeActor{}, kindOf[InitializeActor]())
	return a
}

// Start schedules the pump on the backend executor and starts every child
// that has already confirmed its initialization. Children confirming later
// are started as their confirmations arrive.
func (s *Supervisor) Start() {
	s.backend.Post(func() {
		s.startChildren()
		s.Process()
	})
}

// Shutdown asks the supervisor to shut itself and all of its children down.
// Safe from any goroutine; repeated calls collapse into a single shutdown.
func (s *Supervisor) Shutdown() {
	s.lead.intake(newMessage(s.address, ShutdownTrigger{Target: s.address}))
}

// Process pumps the leader queue until it drains: pop the head message,
// dispatch it to every matching handler, repeat. The pump is non-reentrant;
// a nested call returns immediately.
func (s *Supervisor) Process() {
	lead := s.lead
	if !lead.pumping.CompareAndSwap(false, true) {
		return
	}
	defer lead.pumping.Store(false)

	for {
		if lead.queue.Empty() {
			return
		}
		items, err := lead.queue.Get(1)
		if err != nil || len(items) == 0 {
			return
		}
		lead.dispatch(items[0].(*Message))
	}
}

// dispatch routes one popped message. Messages owned by the locality are
// delivered inline; messages for another locality cross the boundary
// through the destination leader's intake.
func (s *Supervisor) dispatch(m *Message) {
	dsup := m.dest.supervisor
	if dsup.lead != s.lead {
		dsup.lead.intake(m)
		return
	}
	if !dsup.knownAddress(m.dest) {
		s.system.publishDeadletter(m)
		return
	}
	if m.response {
		owner := m.dest.owner
		if owner == nil || !owner.interceptResponse(m) {
			// unmatched response: the request timed out already
			return
		}
	}
	s.deliver(m)
}

// deliver invokes every handler subscribed to the destination address, in
// subscription order. Handlers of a different kind skip the message.
// Handlers whose actor lives on another locality are invoked on that
// actor's executor, so actor state is only ever touched by its own
// supervisor's executor.
func (s *Supervisor) deliver(m *Message) {
	for _, h := range m.dest.supervisor.subs.handlers(m.dest) {
		if h.actor.supervisor.lead == s.lead {
			s.invoke(h, m)
			continue
		}
		handler := h
		home := handler.actor.supervisor.lead
		home.backend.Post(func() {
			home.invoke(handler, m)
			home.Process()
		})
	}
}

// invoke runs one handler. A panicking handler never propagates to the
// backend: the panic is logged and published as a fault.
func (s *Supervisor) invoke(h *Handler, m *Message) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("actor=(%s) handler panic on kind=(%s): %v", h.actor.id, m.kind, r)
			s.system.publishFault(h.actor, errors.ErrActorMisbehaved)
		}
	}()
	h.call(m)
}

// route appends the message to the queue of the supervisor owning the
// destination address. Within the locality this is a plain enqueue; across
// localities it goes through the destination's intake.
func (s *Supervisor) route(m *Message) {
	target := m.dest.supervisor.lead
	if target == s.lead {
		target.queue.Put(m)
		return
	}
	target.intake(m)
}

// intake is the thread-safe boundary for work arriving from outside the
// locality: enqueue on the leader queue, then wake the pump.
func (s *Supervisor) intake(m *Message) {
	s.lead.queue.Put(m)
	s.lead.backend.Wake()
}

// makeAddress creates and registers an address owned by this supervisor.
func (s *Supervisor) makeAddress(owner *Actor) *Address {
	addr := newAddress(s, owner)
	s.addresses.Add(addr)
	return addr
}

// knownAddress reports whether the address is still registered.
func (s *Supervisor) knownAddress(addr *Address) bool {
	return s.addresses.Contains(addr)
}

// subscribeLocal records a handler under a locally owned address and sends
// the confirmation back to the subscribing actor. The dispatch map entry is
// visible at once; the actor-side subscription point is recorded when the
// confirmation round-trips.
func (s *Supervisor) subscribeLocal(h *Handler, addr *Address) {
	s.subs.add(addr, h)
	s.route(newMessage(h.actor.address, SubscriptionConfirmation{Handler: h, Target: addr}))
}

// unsubscribeLocal starts the removal of a local subscription. The map
// entry is committed when the actor consumes the confirmation, which keeps
// the confirmation deliverable for the unsubscription handler itself.
func (s *Supervisor) unsubscribeLocal(h *Handler, addr *Address, callback func()) {
	s.route(newMessage(h.actor.address, UnsubscriptionConfirmation{Handler: h, Target: addr, Callback: callback}))
}

// commitUnsubscription removes the dispatch map entry of a local
// unsubscription once the actor has forgotten the point.
func (s *Supervisor) commitUnsubscription(h *Handler, addr *Address) {
	if !s.subs.remove(addr, h) {
		h.actor.fault(errors.ErrSubscriptionMissing)
	}
}

// nextRequestID allocates a correlation identifier.
func (s *Supervisor) nextRequestID() uint64 {
	return s.requestSeq.Inc()
}

// sendRequest issues an infrastructure request on behalf of the supervisor.
// No timer is armed: lifecycle requests are bounded by the shutdown timer.
func (s *Supervisor) sendRequest(dest *Address, payload any, respKind reflect.Type) {
	id := s.nextRequestID()
	s.Actor.requests[id] = &pendingRequest{respKind: respKind, replyTo: s.address}
	s.route(&Message{
		kind:     reflect.TypeOf(payload),
		dest:     dest,
		payload:  payload,
		id:       id,
		replyTo:  s.address,
		respKind: respKind,
	})
}

// armTimer registers a callback and asks the backend to fire it after the
// delay. The fire path enqueues a TimerTrigger on the supervisor queue, so
// the callback always runs inside the pump, never inline from the timer
// source.
func (s *Supervisor) armTimer(delay time.Duration, f func()) uint64 {
	id := s.timerSeq.Inc()
	s.timers[id] = f
	s.backend.StartTimer(id, delay, func() {
		s.lead.queue.Put(newMessage(s.address, TimerTrigger{ID: id}))
		s.Process()
	})
	return id
}

// cancelTimer cancels an armed timer. A timer whose trigger is already in
// flight is disarmed: the trigger finds no callback and is ignored.
func (s *Supervisor) cancelTimer(id uint64) {
	if id == 0 {
		return
	}
	if _, ok := s.timers[id]; ok {
		delete(s.timers, id)
		s.backend.CancelTimer(id)
	}
}

// onTimerTrigger runs the callback of a fired timer.
func (s *Supervisor) onTimerTrigger(_ *Message, t TimerTrigger) {
	f, ok := s.timers[t.ID]
	if !ok {
		return
	}
	delete(s.timers, t.ID)
	f()
}

// onStateRequest answers with the lifecycle state of the actor owning the
// subject address.
func (s *Supervisor) onStateRequest(m *Message, r StateRequest) {
	if m.response {
		return
	}
	if r.Subject == nil || r.Subject.supervisor != s || r.Subject.owner == nil {
		s.ReplyWithError(m, errors.ErrUnknownAddress)
		return
	}
	s.ReplyTo(m, StateResponse{State: r.Subject.owner.State()})
}

// onInitConfirmation reacts to an actor confirming its initialization. The
// supervisor starts itself once its own init completes, and starts children
// as soon as it is operational.
func (s *Supervisor) onInitConfirmation(m *Message, c InitializeActor) {
	if !m.response || m.err != nil {
		return
	}
	child := c.Target.Owner()
	if child == nil {
		return
	}
	if child == s.Actor {
		s.Send(s.address, StartActor{})
		return
	}
	if s.State() == StateOperational {
		s.startChild(child)
	}
}

// OnStart starts every initialized child once the supervisor itself turns
// operational. It implements the Starter hook for the supervisor's own
// actor.
func (s *Supervisor) OnStart(_ *Actor) {
	s.startChildren()
}

func (s *Supervisor) startChildren() {
	for _, child := range s.children {
		s.startChild(child)
	}
}

// startChild delivers StartActor to a child that has confirmed its
// initialization. Actors that have not reported StateInitialized are never
// started.
func (s *Supervisor) startChild(child *Actor) {
	if child.State() != StateInitialized {
		return
	}
	s.Send(child.address, StartActor{})
}

// onSupervisorShutdownTrigger serves shutdown triggers: for the
// supervisor's own address it starts the supervisor shutdown, for a child
// address it answers with a proper ShutdownRequest to the child.
func (s *Supervisor) onSupervisorShutdownTrigger(_ *Message, t ShutdownTrigger) {
	if t.Target == s.address {
		s.triggerOwnShutdown()
		return
	}
	child := t.Target.Owner()
	if child == nil || child.supervisor != s {
		return
	}
	s.requestShutdown(child)
}

func (s *Supervisor) triggerOwnShutdown() {
	if s.shutdownRequested || s.State() >= StateShuttingDown {
		return
	}
	s.shutdownRequested = true
	s.sendRequest(s.address, ShutdownRequest{}, kindOf[ShutdownConfirmation]())
}

// requestShutdown sends a ShutdownRequest to a live child, once.
func (s *Supervisor) requestShutdown(child *Actor) {
	if child.State() >= StateShuttingDown || s.pendingShutdown.Contains(child) {
		return
	}
	s.pendingShutdown.Add(child)
	s.sendRequest(child.address, ShutdownRequest{}, kindOf[ShutdownConfirmation]())
}

// ShutdownStart arms the shutdown timer and fans the shutdown out to every
// live child. It implements the ShutdownStarter hook for the supervisor's
// own actor.
func (s *Supervisor) ShutdownStart(_ *Actor) {
	s.shutdownTimer = s.armTimer(s.shutdownTimeout, s.escalateShutdown)
	for _, child := range s.children {
		if child.State() == StateShuttingDown {
			s.pendingShutdown.Add(child)
			continue
		}
		s.requestShutdown(child)
	}
	s.maybeBeginOwnShutdown()
}

// onShutdownConfirmation collects children shutdown confirmations; once the
// last child is down the supervisor removes its own subscriptions.
func (s *Supervisor) onShutdownConfirmation(m *Message, c ShutdownConfirmation) {
	if !m.response {
		return
	}
	if child := c.Target.Owner(); child != nil {
		s.pendingShutdown.Remove(child)
	}
	s.maybeBeginOwnShutdown()
}

func (s *Supervisor) maybeBeginOwnShutdown() {
	if s.State() != StateShuttingDown || s.ownShutdownBegun {
		return
	}
	if s.pendingShutdown.Cardinality() != 0 {
		return
	}
	s.ownShutdownBegun = true
	s.BeginShutdown()
}

// escalateShutdown fires when children fail to confirm shutdown before the
// timeout: the stragglers are forcibly destroyed and the supervisor shuts
// down regardless.
func (s *Supervisor) escalateShutdown() {
	s.pendingShutdown.Each(func(child *Actor) bool {
		if child.State() != StateShutDown {
			s.logger.Warnf("supervisor=(%s) destroying actor=(%s): %v", s.Actor.id, child.id, errors.ErrActorMisbehaved)
			s.system.publishFault(child, errors.ErrActorMisbehaved)
			s.subs.removeActor(child)
			s.dropAddressesOf(child)
			child.forceShutdown()
		}
		return false
	})
	s.pendingShutdown.Clear()
	s.maybeBeginOwnShutdown()
}

// dropAddressesOf unregisters every address owned by the given actor, so
// later deliveries to it are dropped as deadletters.
func (s *Supervisor) dropAddressesOf(a *Actor) {
	for _, addr := range s.addresses.ToSlice() {
		if addr.owner == a {
			s.addresses.Remove(addr)
		}
	}
}

// ShutdownFinish cancels the shutdown timer and detaches the supervisor
// from the system context. It implements the ShutdownFinisher hook for the
// supervisor's own actor.
func (s *Supervisor) ShutdownFinish(_ *Actor) {
	s.cancelTimer(s.shutdownTimer)
	s.shutdownTimer = 0
	s.system.unregister(s)
	if s.shutdownCompleted != nil {
		s.shutdownCompleted()
	}
}

// onExternalSubscription records a handler subscribed from another
// supervisor and round-trips the confirmation.
func (s *Supervisor) onExternalSubscription(_ *Message, c ExternalSubscription) {
	s.subs.add(c.Target, c.Handler)
	s.route(newMessage(c.Handler.actor.address, SubscriptionConfirmation{Handler: c.Handler, Target: c.Target}))
}

// onExternalUnsubscription removes the map entry of an external
// subscription and commits the removal back to the actor's supervisor.
func (s *Supervisor) onExternalUnsubscription(_ *Message, c ExternalUnsubscription) {
	if !s.subs.remove(c.Target, c.Handler) {
		c.Handler.actor.fault(errors.ErrSubscriptionMissing)
	}
	s.route(newMessage(c.Handler.actor.supervisor.address, CommitUnsubscription{Handler: c.Handler, Target: c.Target}))
}

// onCommitUnsubscription completes an external unsubscription on the
// subscribing actor's side.
func (s *Supervisor) onCommitUnsubscription(_ *Message, c CommitUnsubscription) {
	c.Handler.actor.completeExternalUnsubscription(c)
}
