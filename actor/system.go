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
	"context"
	"strconv"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/silverware/actron/address"
	"github.com/silverware/actron/errors"
	"github.com/silverware/actron/eventstream"
	"github.com/silverware/actron/internal/registry"
	"github.com/silverware/actron/internal/workerpool"
	"github.com/silverware/actron/log"
	metricpkg "github.com/silverware/actron/metric"
	"github.com/silverware/actron/scheduler"
	"github.com/silverware/actron/supervisor"
)

// eventsTopic is the single topic every lifecycle and dead-letter event is
// published on (spec §4.7 "distinguished channel routes system events");
// subscribers type-switch on the payload rather than subscribing per event
// kind, mirroring the teacher's actor_system.go Subscribe/eventsTopic.
const eventsTopic = "topic.events"

// ActorSystem is the root holder: it bootstraps the standard tree
// (/, /user, /system, /deadletters, /temp), constructs the dispatcher,
// scheduler, and event stream, and exposes actor_of on the user guardian.
type ActorSystem struct {
	name   string
	logger log.Logger

	executor   Executor
	dispatcher *dispatcher
	scheduler  *scheduler.Scheduler

	eventStream eventstream.Stream
	registry    *registry.Table[*cell]
	uidRegistry *registry.UIDTable[*cell]
	metrics     *metricpkg.SystemMetrics

	root           *cell
	userGuardian   *cell
	systemGuardian *cell
	deadLettersRef *Ref
	tempGuardian   *cell

	rootRef *Ref
	userRef *Ref

	throughput             int
	defaultMailboxCapacity int
	strategyOpts           []supervisor.Option

	nextUID     atomic.Uint64
	tempCounter atomic.Uint64
	stopped     atomic.Bool
}

// New constructs an ActorSystem and boots its standard tree. A nil
// executor defaults to an internal/workerpool.WorkerPool.
func New(name string, executor Executor, opts ...Option) (*ActorSystem, error) {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if executor == nil {
		executor = workerpool.New()
	}

	s := &ActorSystem{
		name:                   name,
		logger:                 cfg.logger,
		executor:               executor,
		eventStream:            eventstream.New(),
		registry:               registry.New[*cell](),
		uidRegistry:            registry.NewUID[*cell](),
		throughput:             cfg.throughput,
		defaultMailboxCapacity: cfg.defaultMailboxCapacity,
		strategyOpts:           cfg.strategyOpts,
	}
	s.dispatcher = newDispatcher(executor)
	s.scheduler = scheduler.New(cfg.logger, cfg.shutdownTimeout)
	s.scheduler.Start(context.Background())

	if cfg.meter != nil {
		m, err := metricpkg.New(cfg.meter, s.aggregateMailboxDepth)
		if err != nil {
			return nil, err
		}
		s.metrics = m
	}

	if err := s.bootstrap(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ActorSystem) bootstrap() error {
	rootUID := s.nextUID.Add(1)
	s.root = newCell(s, address.Root, rootUID, newGuardianActor(), nil, NewDefaultMailbox(), supervisor.New(s.strategyOpts...), s.throughput)
	s.rootRef = newRef(address.Root, rootUID, s.root, s)
	s.root.selfRef = s.rootRef
	s.registry.Set(address.Root.String(), s.root)
	s.uidRegistry.Set(rootUID, s.root)
	s.root.mailbox.PushSystem(systemEnvelope(sysStart))
	s.dispatcher.schedule(s.root)

	userRef, err := s.root.spawnChild(newGuardianActor(), "user")
	if err != nil {
		return err
	}
	s.userRef = userRef
	s.userGuardian = userRef.cell

	systemRef, err := s.root.spawnChild(newGuardianActor(), "system")
	if err != nil {
		return err
	}
	s.systemGuardian = systemRef.cell

	deadLettersRef, err := s.root.spawnChild(newDeadLetterActor(), "deadletters")
	if err != nil {
		return err
	}
	s.deadLettersRef = deadLettersRef

	tempRef, err := s.root.spawnChild(newGuardianActor(), "temp")
	if err != nil {
		return err
	}
	s.tempGuardian = tempRef.cell
	return nil
}

// ActorOf spawns name as a child of the user guardian.
func (s *ActorSystem) ActorOf(producer Producer, name string, opts ...SpawnOption) (*Ref, error) {
	if s.isStopped() {
		return nil, errors.NewCreateError(name, errors.ErrSystemStopped)
	}
	return s.userGuardian.spawnChild(producer, name, opts...)
}

// Select resolves path to a live Ref, or a dead Ref that dead-letters any
// Tell sent to it.
func (s *ActorSystem) Select(path string) *Ref {
	p, ok := address.Parse(path)
	if !ok {
		return deadRef(nil, s)
	}
	if c, found := s.registry.Get(p.String()); found && c.lifecycleState() != stateTerminated {
		return c.selfRef
	}
	return deadRef(p, s)
}

// SelectByUID resolves a Ref by the instance identifier assigned at spawn
// time, independent of its current path. This distinguishes a live
// instance from a restarted or terminated one occupying the same path,
// since uid (unlike path) is never reused. Returns a dead Ref if uid is
// unknown or its cell has since terminated.
func (s *ActorSystem) SelectByUID(uid uint64) *Ref {
	if c, found := s.uidRegistry.Get(uid); found && c.lifecycleState() != stateTerminated {
		return c.selfRef
	}
	return deadRef(nil, s)
}

// TempActor spawns a child under /temp with a generated name ("t1",
// "t2", ...), the convention the ask pattern and other one-shot
// collaborators use for a path outside /user. The /temp guardian
// supervises it like any other parent.
func (s *ActorSystem) TempActor(producer Producer, opts ...SpawnOption) (*Ref, error) {
	name := "t" + strconv.FormatUint(s.tempCounter.Add(1), 10)
	return s.tempGuardian.spawnChild(producer, name, opts...)
}

// EventStream returns the system-wide event bus.
func (s *ActorSystem) EventStream() eventstream.Stream { return s.eventStream }

// Subscribe returns a Subscriber already listening on the system's single
// events topic: every ActorStarted, ActorRestarted, ActorTerminated, and
// DeadLetter is delivered here, distinguished by payload type. Callers
// must Unsubscribe when done to avoid leaking the subscription.
func (s *ActorSystem) Subscribe() (eventstream.Subscriber, error) {
	if s.isStopped() {
		return nil, errors.ErrSystemStopped
	}
	sub := s.eventStream.AddSubscriber()
	s.eventStream.Subscribe(sub, eventsTopic)
	return sub, nil
}

// Unsubscribe reverses a prior Subscribe and releases the subscription.
func (s *ActorSystem) Unsubscribe(sub eventstream.Subscriber) error {
	if s.isStopped() {
		return errors.ErrSystemStopped
	}
	s.eventStream.Unsubscribe(sub, eventsTopic)
	s.eventStream.RemoveSubscriber(sub)
	return nil
}

// Scheduler returns the timed-delivery facility.
func (s *ActorSystem) Scheduler() *scheduler.Scheduler { return s.scheduler }

// Metrics returns the OpenTelemetry instrument set, or nil if WithMetrics
// was not supplied at construction.
func (s *ActorSystem) Metrics() *metricpkg.SystemMetrics { return s.metrics }

// Logger returns the system-wide Logger.
func (s *ActorSystem) Logger() log.Logger { return s.logger }

// DeadLetters returns the Ref for /deadletters.
func (s *ActorSystem) DeadLetters() *Ref { return s.deadLettersRef }

func (s *ActorSystem) isStopped() bool { return s.stopped.Load() }

func (s *ActorSystem) publish(topic string, payload any) {
	s.eventStream.Publish(topic, payload)
}

func (s *ActorSystem) routeDeadLetter(recipient *Ref, msg any, sender *Ref) {
	letter := &DeadLetter{
		MsgTypeID:     msgTypeID(msg),
		Sender:        sender,
		RecipientPath: recipient.String(),
		Message:       msg,
	}
	if s.metrics != nil {
		s.metrics.DeadLetter(context.Background())
	}
	s.publish(eventsTopic, letter)

	if c := s.deadLettersRef.liveCell(); c != nil {
		_ = c.mailbox.PushUser(userEnvelope(letter, sender))
		s.dispatcher.schedule(c)
	}
}

// handleGuardianFailure implements the root guardian's terminal policy:
// a failure that escalates all the way up with no parent left to absorb
// it stops the entire tree.
func (s *ActorSystem) handleGuardianFailure(c *cell, err error) {
	s.logger.Errorf("guardian %s failed with no parent to escalate to, shutting down: %v", c.path, err)
	go func() { _ = s.Shutdown(context.Background()) }()
}

func (s *ActorSystem) aggregateMailboxDepth() int64 {
	var total int64
	s.registry.Range(func(_ string, c *cell) bool {
		total += c.mailbox.Len()
		return true
	})
	return total
}

// Shutdown stops the user guardian and waits for its subtree to
// terminate, then the system guardian, then tears down the rest of the
// tree, the scheduler, and the executor.
func (s *ActorSystem) Shutdown(ctx context.Context) error {
	if !s.stopped.CompareAndSwap(false, true) {
		return nil
	}

	var err error

	s.userRef.Stop()
	<-s.userGuardian.stopped
	multierr.AppendInto(&err, s.userGuardian.stopErr)

	s.systemGuardian.selfRef.Stop()
	<-s.systemGuardian.stopped
	multierr.AppendInto(&err, s.systemGuardian.stopErr)

	s.rootRef.Stop()
	<-s.root.stopped
	multierr.AppendInto(&err, s.root.stopErr)

	s.scheduler.Stop(ctx)
	if closer, ok := s.executor.(interface{ Close() }); ok {
		closer.Close()
	}
	s.eventStream.Close()
	return err
}
