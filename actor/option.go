/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
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

	"go.opentelemetry.io/otel/metric"

	"github.com/silverware/actron/log"
	"github.com/silverware/actron/supervisor"
)

const defaultThroughput = 10

// Option configures an ActorSystem at construction time.
type Option func(*systemConfig)

type systemConfig struct {
	logger                 log.Logger
	throughput             int
	defaultMailboxCapacity int
	strategyOpts           []supervisor.Option
	shutdownTimeout        time.Duration
	meter                  metric.Meter
}

func defaultSystemConfig() *systemConfig {
	return &systemConfig{
		logger:          log.DiscardLogger,
		throughput:      defaultThroughput,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithLogger sets the Logger used by the system, its cells, and the
// scheduler.
func WithLogger(logger log.Logger) Option {
	return func(c *systemConfig) { c.logger = logger }
}

// WithThroughput sets the default per-cell drain batch size (how many
// user envelopes a cell processes before yielding), which
// WithCellThroughput can override per spawn.
func WithThroughput(throughput int) Option {
	return func(c *systemConfig) {
		if throughput > 0 {
			c.throughput = throughput
		}
	}
}

// WithDefaultMailboxCapacity bounds every cell's user lane at capacity
// unless overridden per-spawn with WithMailboxCapacity. Zero means
// unbounded (the default).
func WithDefaultMailboxCapacity(capacity int) Option {
	return func(c *systemConfig) { c.defaultMailboxCapacity = capacity }
}

// WithDefaultSupervisorStrategy configures the supervisor newly spawned
// cells use unless overridden per-spawn with WithSupervisor.
func WithDefaultSupervisorStrategy(opts ...supervisor.Option) Option {
	return func(c *systemConfig) { c.strategyOpts = opts }
}

// WithShutdownTimeout bounds how long Shutdown waits for the scheduler
// to drain before returning anyway. The executor is closed without a wait.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *systemConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithMetrics enables OpenTelemetry instrumentation against meter.
func WithMetrics(meter metric.Meter) Option {
	return func(c *systemConfig) { c.meter = meter }
}

// SpawnOption configures an individual actor_of call, overriding the
// system's defaults for that one cell.
type SpawnOption func(*spawnConfig)

type spawnConfig struct {
	mailbox    Mailbox
	supervisor *supervisor.Supervisor
	throughput int

	mailboxCapacity int
	blockOnFull     bool
}

func newSpawnConfig(system *ActorSystem) *spawnConfig {
	cfg := &spawnConfig{
		throughput:      system.throughput,
		mailboxCapacity: system.defaultMailboxCapacity,
	}
	cfg.supervisor = supervisor.New(system.strategyOpts...)
	if cfg.mailboxCapacity > 0 {
		cfg.mailbox = NewBoundedMailbox(cfg.mailboxCapacity, cfg.blockOnFull)
	} else {
		cfg.mailbox = NewDefaultMailbox()
	}
	return cfg
}

// WithMailbox overrides the mailbox implementation for one spawn.
func WithMailbox(mailbox Mailbox) SpawnOption {
	return func(c *spawnConfig) { c.mailbox = mailbox }
}

// WithSupervisor overrides the supervisor for one spawn.
func WithSupervisor(sup *supervisor.Supervisor) SpawnOption {
	return func(c *spawnConfig) { c.supervisor = sup }
}

// WithCellThroughput overrides the drain batch size for one spawn.
func WithCellThroughput(throughput int) SpawnOption {
	return func(c *spawnConfig) {
		if throughput > 0 {
			c.throughput = throughput
		}
	}
}

// WithMailboxCapacity gives this spawn a bounded mailbox of the given
// capacity. It and WithMailbox both set the mailbox, so when both are
// supplied the last one wins (same as the teacher's functional-option
// convention).
func WithMailboxCapacity(capacity int, blockOnFull bool) SpawnOption {
	return func(c *spawnConfig) {
		c.mailboxCapacity = capacity
		c.blockOnFull = blockOnFull
		c.mailbox = NewBoundedMailbox(capacity, blockOnFull)
	}
}
