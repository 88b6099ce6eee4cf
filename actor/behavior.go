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

// behavior is the small state machine sequencing the init and shutdown
// sub-protocols of an actor. It exists apart from the actor state because a
// single state such as StateInitializing spans several internal substeps:
// waiting for subscription confirmations, waiting for user resources. The
// separation keeps init and shutdown resumable across asynchronous
// confirmations.
type behavior struct {
	actor           *Actor
	initStarted     bool
	shutdownStarted bool
}

func newBehavior(a *Actor) *behavior {
	return &behavior{actor: a}
}

// onStartInit records that initialization may complete as soon as every
// outstanding subscription has been confirmed.
func (b *behavior) onStartInit() {
	if b.initStarted {
		return
	}
	b.initStarted = true
	b.tryInitFinish()
}

// onSubscription is fired by the actor whenever a subscription confirmation
// has been recorded.
func (b *behavior) onSubscription() {
	b.tryInitFinish()
}

// tryInitFinish confirms initialization once the init request has been
// recorded, the init sequence has been started and no subscription
// confirmation is outstanding.
func (b *behavior) tryInitFinish() {
	a := b.actor
	if !b.initStarted || a.initRequest == nil || a.pendingSubs != 0 {
		return
	}
	if a.State() != StateInitializing {
		return
	}
	a.initFinish()
}

// onStartShutdown unsubscribes every live subscription point, newest first.
// The unsubscription-confirmation handler was subscribed first, so its own
// removal is processed last and every confirmation stays deliverable.
func (b *behavior) onStartShutdown() {
	if b.shutdownStarted {
		return
	}
	b.shutdownStarted = true

	a := b.actor
	for _, point := range a.livePointsNewestFirst() {
		a.unsubscribe(point.Handler, point.Address, nil)
	}
	if a.pointsLen() == 0 {
		a.shutdownFinish()
	}
}

// onUnsubscription is fired by the actor when its subscription point list
// shrinks; the shutdown completes once the list drains.
func (b *behavior) onUnsubscription() {
	a := b.actor
	if a.pointsLen() == 0 && a.State() == StateShuttingDown {
		a.shutdownFinish()
	}
}
