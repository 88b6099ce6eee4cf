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

package eventloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoop(t *testing.T) {
	t.Run("With posted work", func(t *testing.T) {
		loop := New()
		go loop.Run()
		defer loop.Stop()

		done := make(chan struct{})
		loop.Post(func() { close(done) })
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("posted work never ran")
		}
	})
	t.Run("With wake", func(t *testing.T) {
		loop := New()
		go loop.Run()
		defer loop.Stop()

		pumped := make(chan struct{})
		loop.Attach(func() { pumped <- struct{}{} })
		loop.Wake()
		select {
		case <-pumped:
		case <-time.After(time.Second):
			t.Fatal("pump never ran")
		}
	})
	t.Run("With timer firing", func(t *testing.T) {
		loop := New()
		go loop.Run()
		defer loop.Stop()

		fired := make(chan struct{})
		loop.StartTimer(1, 5*time.Millisecond, func() { close(fired) })
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer never fired")
		}
	})
	t.Run("With cancelled timer", func(t *testing.T) {
		loop := New()
		go loop.Run()
		defer loop.Stop()

		fired := make(chan struct{}, 1)
		loop.StartTimer(1, 20*time.Millisecond, func() { fired <- struct{}{} })
		loop.CancelTimer(1)
		select {
		case <-fired:
			t.Fatal("cancelled timer fired")
		case <-time.After(60 * time.Millisecond):
		}
	})
	t.Run("With stop", func(t *testing.T) {
		loop := New()
		stopped := make(chan struct{})
		go func() {
			loop.Run()
			close(stopped)
		}()

		loop.Stop()
		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("loop never stopped")
		}

		// posting after stop is a no-op
		loop.Post(func() { t.Fatal("ran after stop") })
		loop.Stop()
	})
	t.Run("With serialized execution", func(t *testing.T) {
		loop := New()
		go loop.Run()
		defer loop.Stop()

		// unsynchronized counter: safe only because the loop serializes
		counter := 0
		done := make(chan struct{})
		const posts = 100
		for i := 0; i < posts; i++ {
			i := i
			loop.Post(func() {
				counter++
				if i == posts-1 {
					close(done)
				}
			})
		}
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("posts never drained")
		}
		result := make(chan int, 1)
		loop.Post(func() { result <- counter })
		require.Equal(t, posts, <-result)
	})
}
