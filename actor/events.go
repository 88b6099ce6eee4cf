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

// Topics the system publishes framework notifications on.
const (
	// TopicDeadletters carries Deadletter events: deliveries to addresses
	// that are not registered anymore. Such messages are dropped without
	// surfacing an error to the sender.
	TopicDeadletters = "deadletters"
	// TopicFaults carries Fault events: framework errors not tied to a
	// request, such as a destroyed straggler or a missing subscription.
	TopicFaults = "faults"
)

// Deadletter is the event published when a message is dropped because its
// destination address is unknown.
type Deadletter struct {
	// Message is the dropped message.
	Message *Message
}

// Fault is the event published for framework errors not tied to a request.
type Fault struct {
	// ActorID identifies the faulting actor.
	ActorID string
	// Err is the framework error.
	Err error
}
