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

package actor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/mailroom/actor"
)

func TestSupervisorStartStop(t *testing.T) {
	sys, sup, backend := newManualSupervisor()
	require.Equal(t, actor.StateInitializing, sup.State())

	sup.Process()
	require.Equal(t, actor.StateOperational, sup.State())
	assert.Empty(t, backend.ActiveTimers())
	assert.Zero(t, sup.QueueLen())

	sup.Shutdown()
	require.Equal(t, actor.StateShutDown, sup.State())
	assert.Zero(t, sup.QueueLen())
	assert.Zero(t, sup.SubscriptionCount())
	assert.Zero(t, sup.PointsCount())
	assert.Empty(t, backend.ActiveTimers())
	assert.Empty(t, sys.Supervisors())
}

func TestSupervisorStartsInitializedChildren(t *testing.T) {
	_, sup, _ := newManualSupervisor()
	a := sup.Spawn(nil)
	b := sup.Spawn(nil)

	require.Equal(t, actor.StateInitializing, a.State())

	sup.Start()
	assert.Equal(t, actor.StateOperational, sup.State())
	assert.Equal(t, actor.StateOperational, a.State())
	assert.Equal(t, actor.StateOperational, b.State())
}

func TestActorShutdownIdempotence(t *testing.T) {
	_, sup, _ := newManualSupervisor()
	a := sup.Spawn(nil)
	sup.Process()
	require.Equal(t, actor.StateOperational, a.State())

	mapBefore := sup.SubscriptionCount()

	// repeated triggers collapse into a single shutdown
	a.DoShutdown()
	a.DoShutdown()
	sup.Process()

	assert.Equal(t, actor.StateShutDown, a.State())
	assert.Zero(t, a.PointsCount())
	assert.Equal(t, mapBefore-6, sup.SubscriptionCount())
	assert.Equal(t, actor.StateOperational, sup.State())

	a.DoShutdown()
	sup.Process()
	assert.Equal(t, actor.StateShutDown, a.State())
}

func TestSupervisorShutdownIdempotence(t *testing.T) {
	_, sup, _ := newManualSupervisor()
	sup.Process()

	sup.Shutdown()
	sup.Shutdown()
	sup.Process()

	assert.Equal(t, actor.StateShutDown, sup.State())
	assert.Zero(t, sup.QueueLen())
}

func TestSpawnAfterShutdown(t *testing.T) {
	_, sup, _ := newManualSupervisor()
	sup.Process()
	sup.Shutdown()
	require.Equal(t, actor.StateShutDown, sup.State())

	assert.Nil(t, sup.Spawn(nil))
}

func TestSupervisorShutdownCompletedHook(t *testing.T) {
	completed := false
	_, sup, _ := newManualSupervisor(actor.WithShutdownCompleted(func() {
		completed = true
	}))
	sup.Process()
	sup.Shutdown()
	assert.True(t, completed)
}
