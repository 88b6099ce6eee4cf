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

// Package executors provides the multi-threaded backend: a pool of
// serializing strands, one per supervisor, so that parallelism between
// supervisors never lets two handlers of the same supervisor run
// concurrently.
package executors

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tochemey/mailroom/backend/eventloop"
)

// Pool owns a fixed set of strands. Each strand is a serialized executor
// backing one supervisor (or one locality).
type Pool struct {
	strands []*eventloop.Loop
}

// NewPool creates a pool of n strands. The pool processes nothing until Run
// is called.
func NewPool(n int) *Pool {
	strands := make([]*eventloop.Loop, n)
	for i := range strands {
		strands[i] = eventloop.New()
	}
	return &Pool{strands: strands}
}

// Strand returns the i-th strand, to be passed as the backend of a
// supervisor.
func (p *Pool) Strand(i int) *eventloop.Loop {
	return p.strands[i]
}

// Size returns the number of strands.
func (p *Pool) Size() int {
	return len(p.strands)
}

// Run drives every strand on its own goroutine and blocks until the pool
// stops or the context is cancelled.
func (p *Pool) Run(ctx context.Context) error {
	group := new(errgroup.Group)
	for _, strand := range p.strands {
		strand := strand
		group.Go(func() error {
			strand.Run()
			return nil
		})
	}

	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-finished:
		}
	}()

	err := group.Wait()
	close(finished)
	return err
}

// Stop terminates every strand. Safe to call more than once.
func (p *Pool) Stop() {
	for _, strand := range p.strands {
		strand.Stop()
	}
}
