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

	"github.com/zeebo/xxh3"
)

// Handler binds a message type to a processing function of one actor.
// Its identity is the pair (key, actor): two handlers are equal when they
// carry the same key and refer to the same actor instance, which makes a
// handler reconstructible for unsubscription. The hash is precomputed from
// both parts.
type Handler struct {
	key    string
	kind   reflect.Type
	actor  *Actor
	hash   uint64
	invoke func(*Message)
}

// newHandler creates a handler for the given actor.
func newHandler(a *Actor, key string, kind reflect.Type, invoke func(*Message)) *Handler {
	return &Handler{
		key:    key,
		kind:   kind,
		actor:  a,
		hash:   xxh3.HashString(key + "@" + a.id),
		invoke: invoke,
	}
}

// Key returns the handler type key.
func (h *Handler) Key() string {
	return h.key
}

// Kind returns the key of the message type the handler accepts.
func (h *Handler) Kind() reflect.Type {
	return h.kind
}

// Actor returns the actor the handler belongs to.
func (h *Handler) Actor() *Actor {
	return h.actor
}

// Hash returns the precomputed handler hash.
func (h *Handler) Hash() uint64 {
	return h.hash
}

// Equal reports whether two handlers are the same subscription identity.
func (h *Handler) Equal(other *Handler) bool {
	return other != nil && h.key == other.key && h.actor == other.actor
}

// call delivers the message to the handler when its kind matches; messages
// of any other kind are silently ignored.
func (h *Handler) call(m *Message) {
	if m.kind != h.kind {
		return
	}
	h.invoke(m)
}

// handlerOf builds a typed handler whose key derives from the payload type.
func handlerOf[M any](a *Actor, fn func(*Message, M)) *Handler {
	kind := kindOf[M]()
	invoke := func(m *Message) {
		if m.err != nil {
			var zero M
			fn(m, zero)
			return
		}
		if payload, ok := PayloadOf[M](m); ok {
			fn(m, payload)
		}
	}
	return newHandler(a, kind.String(), kind, invoke)
}

// Subscribe subscribes a typed handler on the actor's primary address and
// returns it. The subscription completes asynchronously: the actor records
// the subscription point only when the confirmation message round-trips.
func Subscribe[M any](a *Actor, fn func(*Message, M)) *Handler {
	return SubscribeAt(a, a.address, fn)
}

// SubscribeAt subscribes a typed handler on the given address, which may be
// owned by another supervisor.
func SubscribeAt[M any](a *Actor, addr *Address, fn func(*Message, M)) *Handler {
	h := handlerOf(a, fn)
	a.subscribeHandler(h, addr)
	return h
}
