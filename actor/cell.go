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
	"runtime/debug"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/silverware/actron/address"
	"github.com/silverware/actron/errors"
	"github.com/silverware/actron/log"
	"github.com/silverware/actron/supervisor"
)

type lifecycleState int32

const (
	stateCreating lifecycleState = iota
	stateStarting
	stateRunning
	stateSuspended
	stateRestarting
	stateTerminating
	stateTerminated
)

func (s lifecycleState) String() string {
	switch s {
	case stateCreating:
		return "Creating"
	case stateStarting:
		return "Starting"
	case stateRunning:
		return "Running"
	case stateSuspended:
		return "Suspended"
	case stateRestarting:
		return "Restarting"
	case stateTerminating:
		return "Terminating"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// childSlot tracks a named child and whether its segment is tombstoned:
// terminated but not yet released by the parent's ChildTerminated
// handling. A tombstoned slot still blocks name reuse.
type childSlot struct {
	ref        *Ref
	cell       *cell
	tombstoned bool
}

// cell is the runtime-owned container for one actor instance: its
// mailbox, lifecycle state, and hierarchy links. Exactly one drain task
// may run a cell's handler code at any instant, enforced by the
// mailbox's scheduled flag rather than by any lock inside cell itself.
type cell struct {
	path   *address.Path
	uid    uint64
	system *ActorSystem

	parent    *cell
	parentRef *Ref
	selfRef   *Ref

	producer   Producer
	mailbox    Mailbox
	supervisor *supervisor.Supervisor
	throughput int
	logger     log.Logger

	state   atomic.Int32
	stopped chan struct{}

	mu          sync.Mutex
	children    map[string]*childSlot
	pendingStop int
	watchers    mapset.Set[*Ref]
	behaviors   []ReceiveFunc
	stash       []*envelope
	stashing    bool
	instanceID  string
	stopErr     error

	actor       Actor
	lastMessage any
	current     *envelope

	processedCount atomic.Int64
	restartCount   atomic.Int32
}

func newCell(system *ActorSystem, path *address.Path, uid uint64, producer Producer, parent *cell, mailbox Mailbox, sup *supervisor.Supervisor, throughput int) *cell {
	c := &cell{
		path:       path,
		uid:        uid,
		system:     system,
		parent:     parent,
		producer:   producer,
		mailbox:    mailbox,
		supervisor: sup,
		throughput: throughput,
		logger:     system.logger,
		children:   make(map[string]*childSlot),
		watchers:   mapset.NewSet[*Ref](),
		stopped:    make(chan struct{}),
	}
	c.state.Store(int32(stateCreating))
	return c
}

func (c *cell) lifecycleState() lifecycleState { return lifecycleState(c.state.Load()) }

func (c *cell) context() *Context { return &Context{cell: c} }

// drain is the dispatcher's drain task body: system envelopes strictly
// before user envelopes, up to throughput user envelopes per invocation,
// then clear the scheduled flag and reschedule if work remains. Clearing
// before the final pending check (rather than after) is what avoids a
// lost wakeup against a concurrent PushUser/PushSystem.
func (c *cell) drain(throughput int) {
	c.drainSystem()
	n := 0
	for n < throughput {
		c.drainSystem()
		if c.lifecycleState() == stateTerminated {
			break
		}
		env := c.mailbox.PopUser()
		if env == nil {
			break
		}
		c.handleUser(env)
		n++
	}
	c.mailbox.ClearScheduled()
	if c.mailbox.HasSystem() || c.mailbox.HasUser() {
		c.system.dispatcher.schedule(c)
	}
}

func (c *cell) drainSystem() {
	for {
		env := c.mailbox.PopSystem()
		if env == nil {
			return
		}
		c.handleSystem(env)
	}
}

func (c *cell) handleSystem(env *envelope) {
	switch env.kind {
	case sysStart:
		c.doStart()
	case sysStop:
		c.initiateStop()
	case sysRestart:
		c.doRestart(env.cause, env.lastMessage)
	case sysResume:
		c.doResume()
	case sysChildTerminated:
		c.onChildTerminated(env.child)
	case sysFailed:
		c.onChildFailed(env.child, env.cause, env.lastMessage)
	case sysWatch:
		c.watchers.Add(env.sender)
	case sysUnwatch:
		c.watchers.Remove(env.sender)
	case sysIdentify:
		c.replyIdentity(env.sender)
	}
}

func (c *cell) handleUser(env *envelope) {
	if c.lifecycleState() != stateRunning {
		c.system.routeDeadLetter(c.selfRef, env.payload, env.sender)
		return
	}
	c.mu.Lock()
	if c.stashing {
		c.stash = append(c.stash, env)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if _, ok := env.payload.(*PoisonPill); ok {
		c.mailbox.PushSystem(systemEnvelope(sysStop))
		c.system.dispatcher.schedule(c)
		return
	}

	if _, ok := env.payload.(*Identify); ok {
		c.replyIdentity(env.sender)
		return
	}

	receive := c.currentReceive()
	if receive == nil {
		c.system.routeDeadLetter(c.selfRef, env.payload, env.sender)
		return
	}

	c.lastMessage = env.payload
	c.current = env
	ctx := &ReceiveContext{Context: c.context(), message: env.payload, sender: env.sender}

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.fail(errors.NewPanicError(r, debug.Stack()), env.payload)
			}
		}()
		receive(ctx)
	}()
	c.current = nil
	c.processedCount.Add(1)
}

// replyIdentity answers an Identify request, whether it arrived as the
// system-lane sysIdentify signal or the user-visible *Identify message.
func (c *cell) replyIdentity(requester *Ref) {
	if requester != nil {
		requester.Tell(&ActorIdentity{Ref: c.selfRef}, c.selfRef)
	}
}

func (c *cell) currentReceive() func(ctx *ReceiveContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.behaviors); n > 0 {
		return c.behaviors[n-1].Receive
	}
	if c.actor != nil {
		return c.actor.Receive
	}
	return nil
}

func (c *cell) become(fn ReceiveFunc) {
	c.mu.Lock()
	c.behaviors = append(c.behaviors, fn)
	c.mu.Unlock()
}

func (c *cell) unbecome() {
	c.mu.Lock()
	if n := len(c.behaviors); n > 0 {
		c.behaviors = c.behaviors[:n-1]
	}
	c.mu.Unlock()
}

func (c *cell) stashCurrent() {
	c.mu.Lock()
	if c.current != nil {
		c.stash = append(c.stash, c.current)
	}
	c.mu.Unlock()
}

func (c *cell) unstashAll() {
	c.mu.Lock()
	pending := c.stash
	c.stash = nil
	c.stashing = false
	c.mu.Unlock()
	for _, env := range pending {
		c.mailbox.PushUser(env)
	}
	if len(pending) > 0 {
		c.system.dispatcher.schedule(c)
	}
}

// doStart constructs a fresh actor instance from producer and runs
// pre_start/post_start before admitting user envelopes. Failure here
// escalates exactly like a handler panic.
func (c *cell) doStart() {
	c.state.Store(int32(stateStarting))
	c.instanceID = uuid.NewString()
	c.actor = c.producer()
	ctx := c.context()

	if hook, ok := c.actor.(PreStarter); ok {
		if err := hook.PreStart(ctx); err != nil {
			c.fail(err, nil)
			return
		}
	}
	if hook, ok := c.actor.(PostStarter); ok {
		if err := hook.PostStart(ctx); err != nil {
			c.fail(err, nil)
			return
		}
	}

	c.mu.Lock()
	c.behaviors = nil
	c.mu.Unlock()

	c.state.Store(int32(stateRunning))
	if c.system.metrics != nil {
		c.system.metrics.ActorStarted(context.Background())
	}
	c.system.publish(eventsTopic, &ActorStarted{Ref: c.selfRef})
}

// fail suspends the cell and escalates a Failed signal to the parent, or
// to the system's guardian-failure path if this cell has none.
func (c *cell) fail(err error, lastMessage any) {
	c.state.Store(int32(stateSuspended))
	c.mailbox.Suspend()
	c.logger.Errorf("actor %s failed: %v", c.path, err)
	if c.parent == nil {
		c.system.handleGuardianFailure(c, err)
		return
	}
	c.parent.mailbox.PushSystem(systemFailed(c.selfRef, err, lastMessage))
	c.system.dispatcher.schedule(c.parent)
}

func (c *cell) doResume() {
	if c.lifecycleState() != stateSuspended {
		return
	}
	c.state.Store(int32(stateRunning))
	c.mailbox.Resume()
}

// onChildFailed consults this cell's supervisor (or this cell's own
// actor's strategy override) for a Decision and acts on it, fanning out to
// siblings under an AllForOne strategy.
func (c *cell) onChildFailed(childRef *Ref, cause error, lastMessage any) {
	c.mu.Lock()
	slot, ok := c.childByUID(childRef)
	c.mu.Unlock()
	if !ok {
		return
	}

	strategyFn := c.supervisor.Decide
	if selector, ok := c.actor.(SupervisorStrategySelector); ok {
		if fn := selector.SupervisorStrategy(); fn != nil {
			strategyFn = fn
		}
	}
	decision := strategyFn(cause)
	includeSiblings := c.supervisor.Strategy() == supervisor.AllForOne

	switch decision {
	case supervisor.Resume:
		slot.cell.doResume()
	case supervisor.Restart:
		c.handleRestartDirective(slot, cause, lastMessage, includeSiblings)
	case supervisor.Stop:
		c.handleStopDirective(slot, includeSiblings)
	case supervisor.Escalate:
		c.fail(cause, lastMessage)
	default:
		slot.cell.state.Store(int32(stateSuspended))
	}
}

func (c *cell) childByUID(ref *Ref) (*childSlot, bool) {
	for _, slot := range c.children {
		if !slot.tombstoned && slot.cell.uid == ref.uid {
			return slot, true
		}
	}
	return nil, false
}

func (c *cell) siblingSlots(except *childSlot) []*childSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots := make([]*childSlot, 0, len(c.children))
	for _, slot := range c.children {
		if slot.tombstoned || slot == except {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// handleStopDirective posts Stop to target, and to its siblings under
// AllForOne, leaving each to drain its own teardown on its own goroutine.
func (c *cell) handleStopDirective(target *childSlot, includeSiblings bool) {
	targets := []*childSlot{target}
	if includeSiblings {
		targets = append(targets, c.siblingSlots(target)...)
	}
	for _, slot := range targets {
		slot.cell.mailbox.PushSystem(systemEnvelope(sysStop))
		c.system.dispatcher.schedule(slot.cell)
	}
}

// handleRestartDirective posts Restart to target, and to its siblings
// under AllForOne; each target runs its own retry-bounded restart on its
// own drain goroutine.
func (c *cell) handleRestartDirective(target *childSlot, cause error, lastMessage any, includeSiblings bool) {
	targets := []*childSlot{target}
	if includeSiblings {
		targets = append(targets, c.siblingSlots(target)...)
	}
	for _, slot := range targets {
		slot.cell.mailbox.PushSystem(systemRestart(cause, lastMessage))
		c.system.dispatcher.schedule(slot.cell)
	}
}

// doRestart runs the Restart transition on the cell's own drain
// goroutine: children stop first, pre_restart runs, then a fresh actor
// instance is started, retrying within the supervisor's retry budget if
// construction or the start hooks keep failing.
func (c *cell) doRestart(cause error, lastMessage any) {
	c.state.Store(int32(stateRestarting))
	if err := c.stopChildrenSync(); err != nil {
		c.logger.Warnf("errors stopping children of %s before restart: %v", c.path, err)
	}

	ctx := c.context()
	if hook, ok := c.actor.(PreRestarter); ok {
		if err := hook.PreRestart(ctx, cause, lastMessage); err != nil {
			c.logger.Errorf("pre_restart for %s: %v", c.path, err)
		}
	}

	c.mu.Lock()
	c.stash = nil
	c.stashing = false
	c.behaviors = nil
	c.mu.Unlock()

	attempt := func() error {
		c.state.Store(int32(stateStarting))
		c.instanceID = uuid.NewString()
		c.actor = c.producer()
		if hook, ok := c.actor.(PreStarter); ok {
			if err := hook.PreStart(ctx); err != nil {
				return err
			}
		}
		if hook, ok := c.actor.(PostStarter); ok {
			if err := hook.PostStart(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	maxRetries := c.supervisor.MaxRetries()
	timeout := c.supervisor.RetryTimeout()
	var err error
	if maxRetries == 0 || timeout <= 0 {
		err = attempt()
	} else {
		retrier := retry.NewRetrier(int(maxRetries), timeout, timeout)
		err = retrier.RunContext(context.Background(), func(context.Context) error {
			return attempt()
		})
	}

	if err != nil {
		c.logger.Errorf("restart exhausted retry budget for %s: %v", c.path, err)
		c.initiateStop()
		return
	}

	c.restartCount.Add(1)
	if c.system.metrics != nil {
		c.system.metrics.ActorRestarted(context.Background())
	}
	c.system.publish(eventsTopic, &ActorRestarted{Ref: c.selfRef, Cause: cause})

	c.mailbox.Resume()
	c.state.Store(int32(stateRunning))
}

// stopChildrenSync blocks until every live child has acknowledged
// termination, accumulating any PostStop error each child reported
// (grounded on the teacher's freeChildren/multierr.AppendInto pattern).
func (c *cell) stopChildrenSync() error {
	c.mu.Lock()
	slots := make([]*childSlot, 0, len(c.children))
	for _, slot := range c.children {
		if !slot.tombstoned {
			slots = append(slots, slot)
		}
	}
	c.mu.Unlock()

	for _, slot := range slots {
		slot.cell.mailbox.PushSystem(systemEnvelope(sysStop))
		c.system.dispatcher.schedule(slot.cell)
	}
	var err error
	for _, slot := range slots {
		<-slot.cell.stopped
		multierr.AppendInto(&err, slot.cell.stopErr)
	}
	return err
}

// initiateStop begins the Terminating transition: new user envelopes are
// rejected, children are asked to stop, and finishStop runs once every
// child has acknowledged (or immediately, if there were none).
func (c *cell) initiateStop() {
	state := c.lifecycleState()
	if state == stateTerminating || state == stateTerminated {
		return
	}
	c.state.Store(int32(stateTerminating))
	c.mailbox.Suspend()
	c.mailbox.Close()

	c.mu.Lock()
	children := make([]*childSlot, 0, len(c.children))
	for _, slot := range c.children {
		if !slot.tombstoned {
			children = append(children, slot)
		}
	}
	c.pendingStop = len(children)
	c.mu.Unlock()

	if len(children) == 0 {
		c.finishStop()
		return
	}
	for _, slot := range children {
		slot.cell.mailbox.PushSystem(systemEnvelope(sysStop))
		c.system.dispatcher.schedule(slot.cell)
	}
}

func (c *cell) onChildTerminated(childRef *Ref) {
	c.mu.Lock()
	var name string
	for n, slot := range c.children {
		if slot.cell.uid == childRef.uid {
			slot.tombstoned = true
			name = n
			break
		}
	}
	c.pendingStop--
	remaining := c.pendingStop
	terminating := c.lifecycleState() == stateTerminating
	c.mu.Unlock()

	if name != "" {
		c.system.registry.Delete(childRef.path.String())
		c.system.uidRegistry.Delete(childRef.uid)
		c.mu.Lock()
		delete(c.children, name)
		c.mu.Unlock()
	}

	if terminating && remaining <= 0 {
		c.finishStop()
	}
}

func (c *cell) finishStop() {
	ctx := c.context()
	if hook, ok := c.actor.(PostStopper); ok {
		if err := hook.PostStop(ctx); err != nil {
			c.logger.Errorf("post_stop for %s: %v", c.path, err)
			c.stopErr = err
		}
	}
	c.state.Store(int32(stateTerminated))
	if c.system.metrics != nil {
		c.system.metrics.ActorTerminated(context.Background())
	}
	c.system.publish(eventsTopic, &ActorTerminated{Ref: c.selfRef})

	c.watchers.Each(func(w *Ref) bool {
		w.Tell(&Terminated{Ref: c.selfRef}, c.selfRef)
		return false
	})

	if c.parent != nil {
		c.parent.mailbox.PushSystem(systemChildTerminated(c.selfRef))
		c.system.dispatcher.schedule(c.parent)
	}
	close(c.stopped)
}

func (c *cell) spawnChild(producer Producer, name string, opts ...SpawnOption) (*Ref, error) {
	if !address.ValidSegment(name) {
		return nil, errors.NewCreateError(name, errors.ErrInvalidName)
	}
	if c.system.isStopped() {
		return nil, errors.NewCreateError(name, errors.ErrSystemStopped)
	}

	c.mu.Lock()
	if _, exists := c.children[name]; exists {
		c.mu.Unlock()
		return nil, errors.NewCreateError(name, errors.ErrDuplicateName)
	}
	c.mu.Unlock()

	cfg := newSpawnConfig(c.system)
	for _, opt := range opts {
		opt(cfg)
	}

	uid := c.system.nextUID.Add(1)
	path := c.path.Child(name)
	child := newCell(c.system, path, uid, producer, c, cfg.mailbox, cfg.supervisor, cfg.throughput)
	ref := newRef(path, uid, child, c.system)
	child.selfRef = ref
	child.parentRef = c.selfRef

	c.mu.Lock()
	c.children[name] = &childSlot{ref: ref, cell: child}
	c.mu.Unlock()

	c.system.registry.Set(path.String(), child)
	c.system.uidRegistry.Set(uid, child)

	child.mailbox.PushSystem(systemEnvelope(sysStart))
	c.system.dispatcher.schedule(child)
	return ref, nil
}

func (c *cell) childRefs() []*Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	refs := make([]*Ref, 0, len(c.children))
	for _, slot := range c.children {
		if !slot.tombstoned {
			refs = append(refs, slot.ref)
		}
	}
	return refs
}
