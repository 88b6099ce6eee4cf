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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionMap(t *testing.T) {
	t.Run("With ordered handlers", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		addr := a.NewAddress()

		order := make([]int, 0, 2)
		h1 := handlerOf(a, func(*Message, testPing) { order = append(order, 1) })
		h2 := handlerOf(a, func(*Message, testPing) { order = append(order, 2) })

		m := newSubscriptionMap()
		m.add(addr, h1)
		m.add(addr, h2)
		require.Equal(t, 2, m.size())

		for _, h := range m.handlers(addr) {
			h.call(newMessage(addr, testPing{}))
		}
		assert.Equal(t, []int{1, 2}, order)
	})
	t.Run("With removal", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		addr := a.NewAddress()

		h1 := handlerOf(a, func(*Message, testPing) {})
		h2 := handlerOf(a, func(*Message, testPong) {})

		m := newSubscriptionMap()
		m.add(addr, h1)
		m.add(addr, h2)

		require.True(t, m.remove(addr, h1))
		require.Equal(t, 1, m.size())
		require.False(t, m.remove(addr, h1))

		require.True(t, m.remove(addr, h2))
		assert.Zero(t, m.size())
		assert.Empty(t, m.handlers(addr))
	})
	t.Run("With actor removal", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		b := sup.Spawn(nil)
		addr := a.NewAddress()
		other := b.NewAddress()

		m := newSubscriptionMap()
		m.add(addr, handlerOf(a, func(*Message, testPing) {}))
		m.add(addr, handlerOf(b, func(*Message, testPing) {}))
		m.add(other, handlerOf(a, func(*Message, testPong) {}))
		require.Equal(t, 3, m.size())

		removed := m.removeActor(a)
		assert.Equal(t, 2, removed)
		assert.Equal(t, 1, m.size())
		assert.Len(t, m.handlers(addr), 1)
		assert.Empty(t, m.handlers(other))
	})
}

func TestSubscribeInvariants(t *testing.T) {
	t.Run("With subscribe then pump", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		sup.Process()

		mapBaseline := sup.SubscriptionCount()
		pointsBaseline := a.PointsCount()

		h := Subscribe(a, func(*Message, testPing) {})
		sup.Process()

		assert.Equal(t, mapBaseline+1, sup.SubscriptionCount())
		assert.Equal(t, pointsBaseline+1, a.PointsCount())

		a.Unsubscribe(h)
		sup.Process()

		assert.Equal(t, mapBaseline, sup.SubscriptionCount())
		assert.Equal(t, pointsBaseline, a.PointsCount())
	})
	t.Run("With unsubscription callback", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		sup.Process()

		h := Subscribe(a, func(*Message, testPing) {})
		sup.Process()

		fired := false
		a.UnsubscribeWithCallback(h, a.Address(), func() { fired = true })
		sup.Process()
		assert.True(t, fired)
	})
	t.Run("With exactly-once delivery", func(t *testing.T) {
		_, sup, _ := newTestSupervisor()
		a := sup.Spawn(nil)
		sup.Process()

		first, second := 0, 0
		Subscribe(a, func(*Message, testPing) { first++ })
		Subscribe(a, func(*Message, testPing) { second++ })
		sup.Process()

		const sends = 5
		for i := 0; i < sends; i++ {
			Send(a.Address(), testPing{})
		}
		sup.Process()

		assert.Equal(t, sends, first)
		assert.Equal(t, sends, second)
	})
}
