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

import "reflect"

// Message is the type-erased envelope delivered through supervisor queues.
// The kind is the process-wide unique key of the payload type; handler
// matching compares kinds and silently skips mismatches.
//
// A request carries a correlation identifier, the reply-to address and the
// expected response kind; a response carries the originating identifier and
// either a payload or an error. Messages are immutable once enqueued.
type Message struct {
	kind     reflect.Type
	dest     *Address
	payload  any
	id       uint64
	replyTo  *Address
	respKind reflect.Type
	response bool
	err      error
}

// newMessage creates a plain message for the given destination.
func newMessage(dest *Address, payload any) *Message {
	return &Message{
		kind:    reflect.TypeOf(payload),
		dest:    dest,
		payload: payload,
	}
}

// Kind returns the unique key of the payload type.
func (m *Message) Kind() reflect.Type {
	return m.kind
}

// Target returns the destination address.
func (m *Message) Target() *Address {
	return m.dest
}

// Payload returns the type-erased payload. Use PayloadOf for a checked
// downcast.
func (m *Message) Payload() any {
	return m.payload
}

// RequestID returns the correlation identifier, zero for plain messages.
func (m *Message) RequestID() uint64 {
	return m.id
}

// ReplyTo returns the address a response should be sent to, nil for plain
// messages and responses.
func (m *Message) ReplyTo() *Address {
	return m.replyTo
}

// IsRequest returns true when the message expects a response.
func (m *Message) IsRequest() bool {
	return m.id != 0 && !m.response
}

// IsResponse returns true when the message answers a request.
func (m *Message) IsResponse() bool {
	return m.response
}

// Err returns the error carried by an error response, nil otherwise.
func (m *Message) Err() error {
	return m.err
}

// PayloadOf downcasts the message payload against its kind. The second
// return value is false when the payload is not of type T.
func PayloadOf[T any](m *Message) (T, bool) {
	payload, ok := m.payload.(T)
	return payload, ok
}

// kindOf returns the unique key for the payload type T.
func kindOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Send delivers a payload to the destination address from outside any actor
// context. It is safe from any goroutine: the message goes through the
// owning locality's intake and is dispatched when that supervisor next
// pumps.
func Send(dest *Address, payload any) {
	dest.supervisor.intake(newMessage(dest, payload))
}
