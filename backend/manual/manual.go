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

// Package manual provides the caller-driven test backend: the caller's
// goroutine is the executor, posted work runs inline and timers are
// recorded so tests fire them by hand.
package manual

import (
	"sort"
	"sync"
	"time"

	"github.com/tochemey/mailroom/actor"
)

// Backend implements actor.Backend for deterministic tests.
type Backend struct {
	mu     sync.Mutex
	pumps  []func()
	timers map[uint64]func()
}

// enforce compilation error
var _ actor.Backend = (*Backend)(nil)

// New creates a manual backend.
func New() *Backend {
	return &Backend{
		timers: make(map[uint64]func()),
	}
}

// Attach registers the pump of a driven leader. A manual backend may drive
// several leaders at once.
func (b *Backend) Attach(pump func()) {
	b.mu.Lock()
	b.pumps = append(b.pumps, pump)
	b.mu.Unlock()
}

// Post runs the callable inline: the caller's goroutine is the executor.
func (b *Backend) Post(f func()) {
	f()
}

// Wake runs the attached pumps inline.
func (b *Backend) Wake() {
	b.mu.Lock()
	pumps := make([]func(), len(b.pumps))
	copy(pumps, b.pumps)
	b.mu.Unlock()
	for _, pump := range pumps {
		pump()
	}
}

// StartTimer records the timer; it fires only through FireTimer.
func (b *Backend) StartTimer(id uint64, _ time.Duration, f func()) {
	b.mu.Lock()
	b.timers[id] = f
	b.mu.Unlock()
}

// CancelTimer forgets a recorded timer.
func (b *Backend) CancelTimer(id uint64) {
	b.mu.Lock()
	delete(b.timers, id)
	b.mu.Unlock()
}

// ActiveTimers returns the ids of the recorded timers, in ascending order.
func (b *Backend) ActiveTimers() []uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]uint64, 0, len(b.timers))
	for id := range b.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FireTimer fires a recorded timer inline. It returns false when the timer
// is unknown or has been cancelled.
func (b *Backend) FireTimer(id uint64) bool {
	b.mu.Lock()
	f, ok := b.timers[id]
	delete(b.timers, id)
	b.mu.Unlock()
	if !ok {
		return false
	}
	f()
	return true
}
