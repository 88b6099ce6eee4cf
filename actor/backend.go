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

import "time"

// Backend is the scheduling and timer contract a supervisor runs against.
// It is the only place concrete concurrency primitives appear; the core is
// written purely in terms of this interface.
//
// All invocations handed to Post and all timer fire callbacks must run on
// the supervisor's executor, serialized with respect to each other. Post and
// Wake must be safe to call from any goroutine.
type Backend interface {
	// Attach registers the pump of the supervisor (or of the locality
	// leader) driven by this backend. Wake schedules the attached pump.
	Attach(pump func())
	// Post enqueues a callable on this supervisor's executor.
	Post(f func())
	// Wake causes the attached pump to run on the executor. It is invoked
	// when work has been enqueued from outside the executor.
	Wake()
	// StartTimer fires f once on the executor after the given delay, unless
	// the timer is cancelled first.
	StartTimer(id uint64, delay time.Duration, f func())
	// CancelTimer cancels a pending timer. Cancelling an unknown or already
	// fired timer is a no-op.
	CancelTimer(id uint64)
}
