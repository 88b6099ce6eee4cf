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
	"time"

	"github.com/tochemey/mailroom/log"
)

// stubBackend drives the supervisor from the test goroutine: posts run
// inline and timers are recorded.
type stubBackend struct {
	pump   func()
	timers map[uint64]func()
}

var _ Backend = (*stubBackend)(nil)

func newStubBackend() *stubBackend {
	return &stubBackend{timers: make(map[uint64]func())}
}

func (b *stubBackend) Attach(pump func()) { b.pump = pump }

func (b *stubBackend) Post(f func()) { f() }

func (b *stubBackend) Wake() {
	if b.pump != nil {
		b.pump()
	}
}

func (b *stubBackend) StartTimer(id uint64, _ time.Duration, f func()) {
	b.timers[id] = f
}

func (b *stubBackend) CancelTimer(id uint64) {
	delete(b.timers, id)
}

func (b *stubBackend) fire(id uint64) bool {
	f, ok := b.timers[id]
	if !ok {
		return false
	}
	delete(b.timers, id)
	f()
	return true
}

func newTestSupervisor() (*System, *Supervisor, *stubBackend) {
	sys := NewSystem(WithSystemLogger(log.DiscardLogger))
	backend := newStubBackend()
	sup := sys.NewSupervisor(backend, WithLogger(log.DiscardLogger))
	return sys, sup, backend
}

type testPing struct{ Seq int }

type testPong struct{ Seq int }
