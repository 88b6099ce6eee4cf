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

// DefaultShutdownTimeout bounds a supervisor shutdown when no explicit
// timeout is configured.
const DefaultShutdownTimeout = 3 * time.Second

// Policy is reserved for queue and scheduling tweaks.
type Policy int

// DefaultPolicy is the only recognized policy.
const DefaultPolicy Policy = iota

// Config carries the recognized supervisor configuration.
type Config struct {
	shutdownTimeout   time.Duration
	locality          string
	policy            Policy
	logger            log.Logger
	shutdownCompleted func()
}

// newConfig builds a config from the defaults and the given options.
func newConfig(logger log.Logger, opts ...Option) *Config {
	cfg := &Config{
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(cfg *Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(cfg *Config)

// Apply applies the options to Config
func (f OptionFunc) Apply(cfg *Config) {
	f(cfg)
}

// WithShutdownTimeout sets the duration after which a supervisor shutdown
// is forced and stragglers are destroyed.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.shutdownTimeout = timeout
	})
}

// WithLocality sets the opaque locality token. Supervisors sharing a token
// share a single queue pump and must share a backend executor.
func WithLocality(locality string) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.locality = locality
	})
}

// WithPolicy sets the reserved scheduling policy.
func WithPolicy(policy Policy) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.policy = policy
	})
}

// WithLogger sets the supervisor custom logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.logger = logger
	})
}

// WithShutdownCompleted registers a hook invoked on the executor once the
// supervisor has fully shut down. Backends with a blocking run loop use it
// to stop pumping.
func WithShutdownCompleted(hook func()) Option {
	return OptionFunc(func(cfg *Config) {
		cfg.shutdownCompleted = hook
	})
}
