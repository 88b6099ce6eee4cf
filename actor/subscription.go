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

import "sync"

// SubscriptionPoint is a (handler, address) pair recorded on an actor for
// each subscription that has been confirmed.
type SubscriptionPoint struct {
	// Handler is the subscribed handler.
	Handler *Handler
	// Address is the subscription target.
	Address *Address

	// unsubscribing marks a point whose removal is in flight, so the
	// shutdown sweep does not unsubscribe it a second time.
	unsubscribing bool
}

// subscriptionMap is the per-supervisor dispatch index from address to the
// ordered list of subscribed handlers. Handlers fire in subscription order.
//
// Writes happen on the owning supervisor's executor only; the lock exists
// so that tests and other goroutines may inspect sizes after quiescence.
type subscriptionMap struct {
	mu      sync.RWMutex
	entries map[*Address][]*Handler
}

// newSubscriptionMap creates an empty subscription map.
func newSubscriptionMap() *subscriptionMap {
	return &subscriptionMap{
		entries: make(map[*Address][]*Handler),
	}
}

// add appends the handler to the address entry, preserving order.
func (s *subscriptionMap) add(addr *Address, h *Handler) {
	s.mu.Lock()
	s.entries[addr] = append(s.entries[addr], h)
	s.mu.Unlock()
}

// remove deletes the first handler equal to h under the address. It returns
// false when no such handler is recorded.
func (s *subscriptionMap) remove(addr *Address, h *Handler) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	handlers := s.entries[addr]
	for i, recorded := range handlers {
		if recorded.Equal(h) {
			handlers = append(handlers[:i], handlers[i+1:]...)
			if len(handlers) == 0 {
				delete(s.entries, addr)
			} else {
				s.entries[addr] = handlers
			}
			return true
		}
	}
	return false
}

// handlers returns a snapshot of the handlers subscribed to the address.
func (s *subscriptionMap) handlers(addr *Address) []*Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recorded := s.entries[addr]
	if len(recorded) == 0 {
		return nil
	}
	out := make([]*Handler, len(recorded))
	copy(out, recorded)
	return out
}

// removeActor strips every handler referring to the given actor and returns
// the number of removed entries.
func (s *subscriptionMap) removeActor(a *Actor) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for addr, handlers := range s.entries {
		kept := handlers[:0]
		for _, h := range handlers {
			if h.actor == a {
				removed++
				continue
			}
			kept = append(kept, h)
		}
		if len(kept) == 0 {
			delete(s.entries, addr)
		} else {
			s.entries[addr] = kept
		}
	}
	return removed
}

// size returns the total number of recorded handlers.
func (s *subscriptionMap) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, handlers := range s.entries {
		total += len(handlers)
	}
	return total
}
