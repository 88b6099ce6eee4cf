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
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/tochemey/mailroom/errors"
	"github.com/tochemey/mailroom/eventstream"
	"github.com/tochemey/mailroom/log"
)

// System is the root holder: it instantiates supervisors, tracks locality
// leadership and hosts the event stream carrying framework notifications.
type System struct {
	mu          sync.Mutex
	logger      log.Logger
	events      eventstream.Stream
	supervisors []*Supervisor
	localities  map[string]*Supervisor
}

// SystemOption configures the system context.
type SystemOption func(sys *System)

// WithSystemLogger sets the default logger handed to supervisors.
func WithSystemLogger(logger log.Logger) SystemOption {
	return func(sys *System) {
		sys.logger = logger
	}
}

// NewSystem creates a system context.
func NewSystem(opts ...SystemOption) *System {
	sys := &System{
		logger:     log.DefaultLogger,
		events:     eventstream.New(),
		localities: make(map[string]*Supervisor),
	}
	for _, opt := range opts {
		opt(sys)
	}
	return sys
}

// Logger returns the system logger.
func (sys *System) Logger() log.Logger {
	return sys.logger
}

// Events returns the stream carrying deadletters and faults.
func (sys *System) Events() eventstream.Stream {
	return sys.events
}

// NewSupervisor creates a supervisor on the given backend. A supervisor
// configured with the locality of an existing one shares that leader's
// queue and pump; the two must then share the backend executor as well.
func (sys *System) NewSupervisor(backend Backend, opts ...Option) *Supervisor {
	cfg := newConfig(sys.logger, opts...)

	sys.mu.Lock()
	defer sys.mu.Unlock()
	s := newSupervisor(sys, backend, cfg)
	sys.supervisors = append(sys.supervisors, s)
	if cfg.locality != "" {
		if _, taken := sys.localities[cfg.locality]; !taken {
			sys.localities[cfg.locality] = s
		}
	}
	return s
}

// Supervisors returns a snapshot of the live supervisors.
func (sys *System) Supervisors() []*Supervisor {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	out := make([]*Supervisor, len(sys.supervisors))
	copy(out, sys.supervisors)
	return out
}

// Stop triggers the shutdown of every live supervisor and waits for
// completion until the context expires. Supervisors still alive at that
// point are reported through the returned error.
func (sys *System) Stop(ctx context.Context) error {
	supervisors := sys.Supervisors()
	for _, s := range supervisors {
		s.Shutdown()
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		alive := 0
		for _, s := range supervisors {
			if s.State() != StateShutDown {
				alive++
			}
		}
		if alive == 0 {
			sys.events.Shutdown()
			return nil
		}

		select {
		case <-ctx.Done():
			var err error
			for _, s := range supervisors {
				if s.State() != StateShutDown {
					err = multierr.Append(err, errors.ErrActorMisbehaved)
				}
			}
			return err
		case <-ticker.C:
		}
	}
}

// leaderFor returns the leader of a locality, nil when the token is empty
// or unknown. Called with sys.mu held.
func (sys *System) leaderFor(locality string) *Supervisor {
	if locality == "" {
		return nil
	}
	return sys.localities[locality]
}

// unregister detaches a shut-down supervisor from the context.
func (sys *System) unregister(s *Supervisor) {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	for i, recorded := range sys.supervisors {
		if recorded == s {
			sys.supervisors = append(sys.supervisors[:i], sys.supervisors[i+1:]...)
			break
		}
	}
	if sys.localities[s.locality] == s {
		delete(sys.localities, s.locality)
	}
}

// publishDeadletter reports a dropped delivery.
func (sys *System) publishDeadletter(m *Message) {
	sys.logger.Debugf("dropping message kind=(%s): %v", m.kind, errors.ErrUnknownAddress)
	sys.events.Publish(TopicDeadletters, &Deadletter{Message: m})
}

// publishFault reports a framework error not tied to a request.
func (sys *System) publishFault(a *Actor, err error) {
	sys.events.Publish(TopicFaults, &Fault{ActorID: a.id, Err: err})
}
