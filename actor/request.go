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

	"github.com/tochemey/mailroom/errors"
)

// pendingRequest is one entry of the per-actor correlation table.
type pendingRequest struct {
	timerID  uint64
	respKind reflect.Type
	replyTo  *Address
}

// RequestBuilder stages a request until Send finalizes it with a timeout.
type RequestBuilder struct {
	actor    *Actor
	dest     *Address
	replyTo  *Address
	payload  any
	respKind reflect.Type
}

// NewRequest returns a request builder for the destination address. Res is
// the payload type of the expected response; the requester subscribes a
// handler for Res on the reply-to address (the actor's primary address by
// default) to receive either the reply or the synthetic timeout response.
func NewRequest[Res any](a *Actor, dest *Address, payload any) *RequestBuilder {
	return &RequestBuilder{
		actor:    a,
		dest:     dest,
		replyTo:  a.address,
		payload:  payload,
		respKind: kindOf[Res](),
	}
}

// Via redirects the response to the given address, which must belong to the
// requesting actor. It allows distinct response handling for the same
// response type.
func (b *RequestBuilder) Via(addr *Address) *RequestBuilder {
	b.replyTo = addr
	return b
}

// Send allocates a request id, enqueues the request and arms the timeout
// timer. Exactly one response invocation follows: either the reply, or a
// synthetic response carrying ErrRequestTimeout when the timer fires first.
func (b *RequestBuilder) Send(timeout time.Duration) (uint64, error) {
	if timeout <= 0 {
		return 0, errors.ErrInvalidTimeout
	}

	a := b.actor
	s := a.supervisor
	id := s.nextRequestID()
	timerID := s.armTimer(timeout, func() {
		a.onRequestTimeout(id)
	})
	a.requests[id] = &pendingRequest{
		timerID:  timerID,
		respKind: b.respKind,
		replyTo:  b.replyTo,
	}
	s.route(&Message{
		kind:     reflect.TypeOf(b.payload),
		dest:     b.dest,
		payload:  b.payload,
		id:       id,
		replyTo:  b.replyTo,
		respKind: b.respKind,
	})
	return id, nil
}

// onRequestTimeout synthesizes the timeout response for a request that is
// still in flight. A real response arriving later finds no correlation
// entry and is dropped, which keeps response delivery exactly-once.
func (a *Actor) onRequestTimeout(id uint64) {
	pending, ok := a.requests[id]
	if !ok {
		return
	}
	delete(a.requests, id)
	a.supervisor.deliver(&Message{
		kind:     pending.respKind,
		dest:     pending.replyTo,
		id:       id,
		response: true,
		err:      errors.ErrRequestTimeout,
	})
}

// interceptResponse consumes the correlation entry of a response and
// cancels its timer. It returns false when the response is unmatched, in
// which case it must not be delivered.
func (a *Actor) interceptResponse(m *Message) bool {
	pending, ok := a.requests[m.id]
	if !ok {
		return false
	}
	delete(a.requests, m.id)
	a.supervisor.cancelTimer(pending.timerID)
	return true
}
