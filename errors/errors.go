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

// Package errors defines the sentinel errors surfaced by the runtime.
package errors

import "errors"

var (
	// ErrRequestTimeout indicates that a request did not receive a response
	// before its timer expired. It is carried by the synthetic response
	// delivered to the requester's response handler.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrUnknownAddress indicates a delivery to an address that is no longer
	// registered with its supervisor. The message is dropped and the drop is
	// published on the system event stream.
	ErrUnknownAddress = errors.New("address is not registered")

	// ErrActorMisbehaved indicates that an actor failed to confirm its
	// shutdown before the supervisor's shutdown timeout and has been
	// forcibly destroyed. It is also the fault published for a handler that
	// panics during dispatch, and the error System.Stop reports for each
	// supervisor still alive when its context expires.
	ErrActorMisbehaved = errors.New("actor failed to confirm shutdown in time")

	// ErrSubscriptionMissing indicates an unsubscription that referenced an
	// unknown subscription. This is an internal invariant violation; it is
	// logged and published as a fault, never a process abort.
	ErrSubscriptionMissing = errors.New("subscription not found")

	// ErrShutdownInterrupted is the error answered to a pending init request
	// when a shutdown request arrives before initialization completes.
	ErrShutdownInterrupted = errors.New("initialization interrupted by shutdown")

	// ErrDead indicates an operation on an actor that has already shut down.
	ErrDead = errors.New("actor is not alive")

	// ErrInvalidTimeout is returned when a timeout value is less than or
	// equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrSchedulerNotStarted is returned when attempting to schedule a
	// delayed delivery before the scheduler has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")
)
