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

// State represents the lifecycle state of an actor or a supervisor.
// The state only ever advances through the enumeration; there is no
// backward transition.
type State int32

const (
	// StateNew is the state of a freshly constructed actor.
	StateNew State = iota
	// StateInitializing means the actor has created its address and is
	// waiting for its infrastructure subscriptions to be confirmed.
	StateInitializing
	// StateInitialized means the actor has confirmed its initialization to
	// its supervisor and is waiting to be started.
	StateInitialized
	// StateOperational means the actor processes application messages.
	StateOperational
	// StateShuttingDown means a shutdown request has been recorded and the
	// actor is unsubscribing its subscription points.
	StateShuttingDown
	// StateShutDown is the terminal state: every subscription point has been
	// removed and the pending shutdown request has been answered.
	StateShutDown
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateOperational:
		return "operational"
	case StateShuttingDown:
		return "shutting_down"
	case StateShutDown:
		return "shut_down"
	default:
		return ""
	}
}
