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

// Package scheduler implements delayed message delivery on top of quartz.
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/mailroom/actor"
	mailroomerrors "github.com/tochemey/mailroom/errors"
	"github.com/tochemey/mailroom/log"
)

// Scheduler stacks messages that will be delivered in the future to actors.
// Deliveries go through the destination supervisor's intake, so they are
// dispatched on that supervisor's executor like any other message.
type Scheduler struct {
	scheduler quartz.Scheduler
	// states whether the scheduler has started or not
	started *atomic.Bool
	logger  log.Logger
}

// New creates an instance of Scheduler.
func New(logger log.Logger) *Scheduler {
	return &Scheduler{
		scheduler: quartz.NewStdScheduler(),
		started:   atomic.NewBool(false),
		logger:    logger,
	}
}

// Start starts the scheduler.
func (x *Scheduler) Start(ctx context.Context) {
	x.scheduler.Start(ctx)
	x.started.Store(x.scheduler.IsStarted())
}

// Stop stops the scheduler and waits for the in-flight jobs to exit.
func (x *Scheduler) Stop(ctx context.Context) {
	x.started.Store(false)
	x.scheduler.Stop()
	x.scheduler.Wait(ctx)
}

// SendAfter schedules the payload to be delivered to the destination
// address once the delay elapses.
func (x *Scheduler) SendAfter(ctx context.Context, dest *actor.Address, payload any, delay time.Duration) error {
	if !x.started.Load() {
		return mailroomerrors.ErrSchedulerNotStarted
	}
	if delay <= 0 {
		return mailroomerrors.ErrInvalidTimeout
	}

	trigger := quartz.NewRunOnceTrigger(delay)
	job := quartz.NewFunctionJob[bool](func(context.Context) (bool, error) {
		actor.Send(dest, payload)
		return true, nil
	})

	if err := x.scheduler.ScheduleJob(ctx, job, trigger); err != nil {
		err = errors.Wrap(err, "failed to schedule delayed delivery")
		x.logger.Error(err)
		return err
	}
	return nil
}
