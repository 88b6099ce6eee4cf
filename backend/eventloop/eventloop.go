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

// Package eventloop provides the cooperative single-threaded backend: one
// goroutine serializes every invocation into the supervisors it drives, and
// timers fire back onto that goroutine. Supervisors sharing a locality
// share one Loop.
package eventloop

import (
	"sync"
	"time"

	"github.com/tochemey/mailroom/actor"
)

// taskBuffer bounds the wake/post channel. Wakeups coalesce on the message
// queue itself, so the buffer only needs to absorb bursts.
const taskBuffer = 1024

// Loop implements actor.Backend on a dedicated goroutine.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	pumps  []func()
	timers map[uint64]*time.Timer
}

// enforce compilation error
var _ actor.Backend = (*Loop)(nil)

// New creates a loop. It processes nothing until Run is called.
func New() *Loop {
	return &Loop{
		tasks:  make(chan func(), taskBuffer),
		done:   make(chan struct{}),
		timers: make(map[uint64]*time.Timer),
	}
}

// Attach registers the pump of a locality leader. A loop may drive several
// leaders at once.
func (l *Loop) Attach(pump func()) {
	l.mu.Lock()
	l.pumps = append(l.pumps, pump)
	l.mu.Unlock()
}

// Post enqueues a callable on the loop goroutine. Safe from any goroutine;
// posts after Stop are dropped.
func (l *Loop) Post(f func()) {
	select {
	case l.tasks <- f:
	case <-l.done:
	}
}

// Wake schedules the attached pumps on the loop goroutine.
func (l *Loop) Wake() {
	l.mu.Lock()
	pumps := make([]func(), len(l.pumps))
	copy(pumps, l.pumps)
	l.mu.Unlock()
	for _, pump := range pumps {
		l.Post(pump)
	}
}

// StartTimer fires f once on the loop goroutine after the delay.
func (l *Loop) StartTimer(id uint64, delay time.Duration, f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timers[id] = time.AfterFunc(delay, func() {
		l.mu.Lock()
		delete(l.timers, id)
		l.mu.Unlock()
		l.Post(f)
	})
}

// CancelTimer stops a pending timer.
func (l *Loop) CancelTimer(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[id]; ok {
		t.Stop()
		delete(l.timers, id)
	}
}

// Run processes posted work until Stop is called. It blocks the calling
// goroutine, which becomes the executor.
func (l *Loop) Run() {
	for {
		select {
		case f := <-l.tasks:
			f()
		case <-l.done:
			return
		}
	}
}

// Stop terminates the loop and stops its pending timers. Safe to call more
// than once.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
		l.mu.Lock()
		for id, t := range l.timers {
			t.Stop()
			delete(l.timers, id)
		}
		l.mu.Unlock()
	})
}
