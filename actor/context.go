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

	"github.com/silverware/actron/scheduler"
)

// Context is the per-cell capability handed to lifecycle hooks and,
// embedded in ReceiveContext, to Receive itself. It must not be retained
// past the call it was passed to or moved across cells.
type Context struct {
	cell *cell
}

// Myself returns the Ref addressing the cell this Context belongs to.
func (c *Context) Myself() *Ref { return c.cell.selfRef }

// Parent returns the parent's Ref, or nil for the root guardian.
func (c *Context) Parent() *Ref { return c.cell.parentRef }

// Children returns the live children of this cell, in no particular
// order.
func (c *Context) Children() []*Ref { return c.cell.childRefs() }

// System returns the owning ActorSystem.
func (c *Context) System() *ActorSystem { return c.cell.system }

// ActorOf spawns name as a child of this cell.
func (c *Context) ActorOf(producer Producer, name string, opts ...SpawnOption) (*Ref, error) {
	return c.cell.spawnChild(producer, name, opts...)
}

// Stop sends the system Stop signal to ref.
func (c *Context) Stop(ref *Ref) { ref.Stop() }

// Watch registers this cell to be notified with *Terminated when ref's
// cell terminates.
func (c *Context) Watch(ref *Ref) { ref.sendSystem(systemWatch(c.cell.selfRef)) }

// Unwatch reverses a prior Watch. It is idempotent.
func (c *Context) Unwatch(ref *Ref) { ref.sendSystem(systemUnwatch(c.cell.selfRef)) }

// Become replaces the cell's current receive function, pushing it onto a
// stack Unbecome can pop back off.
func (c *Context) Become(fn ReceiveFunc) { c.cell.become(fn) }

// Unbecome pops the most recent Become off the stack, reverting to
// whichever behavior was active before it (the actor's own Receive if
// the stack is empty).
func (c *Context) Unbecome() { c.cell.unbecome() }

// Stash sets aside the message currently being handled; it is
// re-enqueued, in order, on the next UnstashAll.
func (c *Context) Stash() { c.cell.stashCurrent() }

// StashAndWait is Stash plus suspending further user delivery until
// UnstashAll is called, for handlers that need to buffer everything
// until a state transition completes.
func (c *Context) StashAndWait() {
	c.cell.mu.Lock()
	c.cell.stashing = true
	c.cell.mu.Unlock()
	c.cell.stashCurrent()
}

// UnstashAll re-delivers every stashed message, oldest first, and resumes
// normal delivery.
func (c *Context) UnstashAll() { c.cell.unstashAll() }

// ScheduleOnce delivers msg to target once, after delay.
func (c *Context) ScheduleOnce(delay time.Duration, target *Ref, msg any) (scheduler.Handle, error) {
	return c.System().scheduler.ScheduleOnce(delay, deliverClosure(target, msg, c.cell.selfRef))
}

// Schedule delivers msg to target once after initial, and separately every
// interval counted from the call (see scheduler.Scheduler.Schedule).
func (c *Context) Schedule(initial, interval time.Duration, target *Ref, msg any) (scheduler.Handle, error) {
	return c.System().scheduler.Schedule(initial, interval, deliverClosure(target, msg, c.cell.selfRef))
}

// ScheduleAtInterval delivers msg to target every interval.
func (c *Context) ScheduleAtInterval(interval time.Duration, target *Ref, msg any) (scheduler.Handle, error) {
	return c.System().scheduler.ScheduleAtInterval(interval, deliverClosure(target, msg, c.cell.selfRef))
}

// Cancel suppresses future dispatches for h. Returns
// errors.ErrSchedulerHandleCancelled if h was already cancelled or never
// scheduled.
func (c *Context) Cancel(h scheduler.Handle) error {
	return c.System().scheduler.Cancel(h)
}

func deliverClosure(target *Ref, msg any, sender *Ref) func() error {
	return func() error {
		return target.Tell(msg, sender)
	}
}

// ReceiveContext is the Context passed to Actor.Receive, additionally
// exposing the message and its sender.
type ReceiveContext struct {
	*Context
	message any
	sender  *Ref
}

// Message returns the payload currently being handled.
func (rc *ReceiveContext) Message() any { return rc.message }

// Sender returns the sender Ref, or nil if tell was sent without one.
func (rc *ReceiveContext) Sender() *Ref { return rc.sender }

// Respond is a convenience for Sender().Tell(msg, rc.Myself()); it is a
// no-op if there was no sender.
func (rc *ReceiveContext) Respond(msg any) {
	if rc.sender != nil {
		rc.sender.Tell(msg, rc.Myself())
	}
}

// Unhandled routes the current message to dead letters, for Receive
// implementations that decline to handle a message type.
func (rc *ReceiveContext) Unhandled() {
	rc.System().routeDeadLetter(rc.Myself(), rc.message, rc.sender)
}
