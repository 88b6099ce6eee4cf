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

package eventstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsStream(t *testing.T) {
	t.Run("With subscription", func(t *testing.T) {
		broker := New()

		cons := broker.AddSubscriber()
		require.NotNil(t, cons)
		require.True(t, cons.Active())

		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")
		require.EqualValues(t, 1, broker.SubscribersCount("t1"))
		require.EqualValues(t, 1, broker.SubscribersCount("t2"))
		assert.ElementsMatch(t, []string{"t1", "t2"}, cons.Topics())

		broker.RemoveSubscriber(cons)
		assert.Zero(t, broker.SubscribersCount("t1"))
		assert.Zero(t, broker.SubscribersCount("t2"))

		// a removed subscriber cannot subscribe again
		broker.Subscribe(cons, "t3")
		assert.Zero(t, broker.SubscribersCount("t3"))

		t.Cleanup(broker.Shutdown)
	})
	t.Run("With unsubscription", func(t *testing.T) {
		broker := New()

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		broker.Unsubscribe(cons, "t1")
		assert.Zero(t, broker.SubscribersCount("t1"))
		require.EqualValues(t, 1, broker.SubscribersCount("t2"))

		t.Cleanup(broker.Shutdown)
	})
	t.Run("With publication", func(t *testing.T) {
		broker := New()

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		broker.Publish("t1", "hi")
		broker.Publish("t2", "hello")
		broker.Publish("t3", "lost")

		messages := make([]*Message, 0, 2)
		for message := range cons.Iterator() {
			messages = append(messages, message)
		}
		require.Len(t, messages, 2)

		// the iterator drained the backlog
		count := 0
		for range cons.Iterator() {
			count++
		}
		assert.Zero(t, count)

		t.Cleanup(broker.Shutdown)
	})
	t.Run("With broadcast", func(t *testing.T) {
		broker := New()

		first := broker.AddSubscriber()
		second := broker.AddSubscriber()
		broker.Subscribe(first, "t1")
		broker.Subscribe(second, "t2")

		broker.Broadcast("all", []string{"t1", "t2"})

		for _, cons := range []Subscriber{first, second} {
			messages := make([]*Message, 0, 1)
			for message := range cons.Iterator() {
				messages = append(messages, message)
			}
			require.Len(t, messages, 1)
			assert.Equal(t, "all", messages[0].Payload)
		}

		t.Cleanup(broker.Shutdown)
	})
	t.Run("With shutdown", func(t *testing.T) {
		broker := New()

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Shutdown()

		assert.False(t, cons.Active())
		assert.Zero(t, broker.SubscribersCount("t1"))
	})
}
