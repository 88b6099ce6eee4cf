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

package actor_test

import (
	"time"

	"github.com/tochemey/mailroom/actor"
	"github.com/tochemey/mailroom/backend/manual"
	"github.com/tochemey/mailroom/log"
)

type ping struct{}

type pong struct{}

type echoRequest struct{ Text string }

type echoResponse struct{ Text string }

type blip struct{}

type detach struct{}

// newManualSupervisor wires a system and a supervisor on a manual backend.
func newManualSupervisor(opts ...actor.Option) (*actor.System, *actor.Supervisor, *manual.Backend) {
	sys := actor.NewSystem(actor.WithSystemLogger(log.DiscardLogger))
	backend := manual.New()
	opts = append([]actor.Option{actor.WithLogger(log.DiscardLogger)}, opts...)
	sup := sys.NewSupervisor(backend, opts...)
	return sys, sup, backend
}

// pinger sends one ping when started and counts the pong.
type pinger struct {
	actor      *actor.Actor
	pongerAddr *actor.Address

	PingSent     int
	PongReceived int
}

func (p *pinger) InitStart(a *actor.Actor) {
	p.actor = a
	actor.Subscribe(a, p.onPong)
	a.BeginInit()
}

func (p *pinger) OnStart(a *actor.Actor) {
	p.PingSent++
	a.Send(p.pongerAddr, ping{})
}

func (p *pinger) onPong(_ *actor.Message, _ pong) {
	p.PongReceived++
}

// ponger answers every ping with a pong.
type ponger struct {
	actor      *actor.Actor
	pingerAddr *actor.Address

	PingReceived int
	PongSent     int
}

func (q *ponger) InitStart(a *actor.Actor) {
	q.actor = a
	actor.Subscribe(a, q.onPing)
	a.BeginInit()
}

func (q *ponger) onPing(_ *actor.Message, _ ping) {
	q.PingReceived++
	q.PongSent++
	q.actor.Send(q.pingerAddr, pong{})
}

// observer watches the lifecycle messages of another actor's address and
// accumulates a bitmask: init 1, start 2, shutdown 4.
type observer struct {
	observable *actor.Address

	Event int
}

func (o *observer) InitStart(a *actor.Actor) {
	actor.SubscribeAt(a, o.observable, func(m *actor.Message, _ actor.InitializeActor) {
		if !m.IsResponse() {
			o.Event += 1
		}
	})
	actor.SubscribeAt(a, o.observable, func(_ *actor.Message, _ actor.StartActor) {
		o.Event += 2
	})
	actor.SubscribeAt(a, o.observable, func(m *actor.Message, _ actor.ShutdownRequest) {
		if !m.IsResponse() {
			o.Event += 4
		}
	})
	a.BeginInit()
}

// staller never completes its shutdown.
type staller struct{}

func (s *staller) ShutdownStart(_ *actor.Actor) {
	// deliberately keep every subscription point
}

// responder answers echo requests when reply is set, and stays silent
// otherwise.
type responder struct {
	actor *actor.Actor
	reply bool
}

func (r *responder) InitStart(a *actor.Actor) {
	r.actor = a
	actor.Subscribe(a, r.onEcho)
	a.BeginInit()
}

func (r *responder) onEcho(m *actor.Message, e echoRequest) {
	if r.reply {
		r.actor.ReplyTo(m, echoResponse{Text: e.Text})
	}
}

// requester issues one echo request on start and records the responses.
type requester struct {
	actor   *actor.Actor
	target  *actor.Address
	timeout time.Duration

	Responses int
	LastErr   error
	LastText  string
}

func (r *requester) InitStart(a *actor.Actor) {
	r.actor = a
	actor.Subscribe(a, r.onEchoResponse)
	a.BeginInit()
}

func (r *requester) OnStart(a *actor.Actor) {
	_, _ = actor.NewRequest[echoResponse](a, r.target, echoRequest{Text: "hello"}).Send(r.timeout)
}

func (r *requester) onEchoResponse(m *actor.Message, e echoResponse) {
	r.Responses++
	r.LastErr = m.Err()
	r.LastText = e.Text
}

// externalSubscriber subscribes a handler on an address owned by another
// supervisor and detaches it on demand.
type externalSubscriber struct {
	actor  *actor.Actor
	target *actor.Address
	h      *actor.Handler

	Seen int
}

func (x *externalSubscriber) InitStart(a *actor.Actor) {
	x.actor = a
	x.h = actor.SubscribeAt(a, x.target, func(_ *actor.Message, _ blip) {
		x.Seen++
	})
	actor.Subscribe(a, func(_ *actor.Message, _ detach) {
		a.UnsubscribeAt(x.h, x.target)
	})
	a.BeginInit()
}

// crossPinger is the two-locality pinger: it polls the remote supervisor
// for the ponger state and also watches the ponger start, then plays one
// ping-pong round and shuts both supervisors down.
type crossPinger struct {
	actor      *actor.Actor
	pongerAddr *actor.Address

	hPongerStart *actor.Handler
	hState       *actor.Handler
	attempts     int

	PingSent     int
	PongReceived int
}

func (p *crossPinger) InitStart(a *actor.Actor) {
	p.actor = a
	actor.Subscribe(a, p.onPong)
	p.hPongerStart = actor.SubscribeAt(a, p.pongerAddr, p.onPongerStart)
	p.hState = actor.Subscribe(a, p.onState)
	p.requestPongerState()
}

func (p *crossPinger) requestPongerState() {
	p.attempts++
	_, _ = actor.NewRequest[actor.StateResponse](
		p.actor,
		p.pongerAddr.Supervisor().Address(),
		actor.StateRequest{Subject: p.pongerAddr},
	).Send(time.Second)
}

func (p *crossPinger) onPongerStart(_ *actor.Message, _ actor.StartActor) {
	if p.actor.State() == actor.StateInitializing {
		p.actor.BeginInit()
	}
}

func (p *crossPinger) onState(m *actor.Message, r actor.StateResponse) {
	if p.actor.State() != actor.StateInitializing {
		return
	}
	if m.Err() == nil && r.State == actor.StateOperational {
		p.actor.BeginInit()
		return
	}
	if p.attempts > 8 {
		p.actor.DoShutdown()
		return
	}
	p.requestPongerState()
}

func (p *crossPinger) OnStart(a *actor.Actor) {
	a.UnsubscribeAt(p.hPongerStart, p.pongerAddr)
	a.Unsubscribe(p.hState)
	p.PingSent++
	a.Send(p.pongerAddr, ping{})
}

func (p *crossPinger) onPong(_ *actor.Message, _ pong) {
	p.PongReceived++
	p.actor.Supervisor().Shutdown()
	p.pongerAddr.Supervisor().Shutdown()
}

// crossPonger mirrors ponger for the two-locality scenario.
type crossPonger struct {
	actor      *actor.Actor
	pingerAddr *actor.Address

	PingReceived int
	PongSent     int
}

func (q *crossPonger) InitStart(a *actor.Actor) {
	q.actor = a
	actor.Subscribe(a, q.onPing)
	a.BeginInit()
}

func (q *crossPonger) onPing(_ *actor.Message, _ ping) {
	q.PingReceived++
	q.PongSent++
	q.actor.Send(q.pingerAddr, pong{})
}
