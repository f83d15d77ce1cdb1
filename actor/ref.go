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
	"github.com/silverware/actron/address"
	"github.com/silverware/actron/errors"
)

// Ref is a lightweight, clonable handle addressing a cell by path and uid.
// Equality is by (path, uid), never by the embedded cell pointer. Holding
// a Ref does not keep the underlying cell alive: once the cell has
// terminated, Tell against this Ref routes to dead letters instead of
// failing.
type Ref struct {
	path   *address.Path
	uid    uint64
	cell   *cell
	system *ActorSystem
}

func newRef(path *address.Path, uid uint64, c *cell, system *ActorSystem) *Ref {
	return &Ref{path: path, uid: uid, cell: c, system: system}
}

// deadRef builds a Ref with no live cell, used for Select misses and for
// routing Tell calls against a terminated target.
func deadRef(path *address.Path, system *ActorSystem) *Ref {
	return &Ref{path: path, system: system}
}

// Path returns the Ref's position in the hierarchy.
func (r *Ref) Path() *address.Path { return r.path }

// UID returns the instance identifier assigned when the cell was created.
func (r *Ref) UID() uint64 { return r.uid }

// Equals reports whether two Refs address the same cell instance.
func (r *Ref) Equals(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.uid == other.uid && r.path.Equals(other.path)
}

func (r *Ref) String() string {
	if r == nil || r.path == nil {
		return "<nil>"
	}
	return r.path.String()
}

func (r *Ref) liveCell() *cell {
	if r == nil || r.cell == nil {
		return nil
	}
	if r.cell.state.Load() == int32(stateTerminated) {
		return nil
	}
	return r.cell
}

// Tell enqueues msg into the target's mailbox and ensures it is scheduled
// for a drain. It never returns an error to the caller: a dead, unknown,
// or closed target is routed to dead letters instead.
func (r *Ref) Tell(msg any, sender *Ref) error {
	c := r.liveCell()
	if c == nil {
		r.system.routeDeadLetter(r, msg, sender)
		return nil
	}
	if err := c.mailbox.PushUser(userEnvelope(msg, sender)); err != nil {
		r.system.routeDeadLetter(r, msg, sender)
		return nil
	}
	r.system.dispatcher.schedule(c)
	return nil
}

// TryTell is the non-blocking form for bounded mailboxes: it surfaces
// Closed/Overflow synchronously, as a *errors.TellError, instead of
// dead-lettering. A target that has terminated yields errors.ErrDead.
// Against a BoundedMailbox built with blockOnFull, TryTell blocks while
// the mailbox is full, the same as Tell, since both push through
// PushUser.
func (r *Ref) TryTell(msg any, sender *Ref) error {
	c := r.liveCell()
	if c == nil {
		return errors.ErrDead
	}
	if err := c.mailbox.PushUser(userEnvelope(msg, sender)); err != nil {
		return errors.NewTellError(err)
	}
	r.system.dispatcher.schedule(c)
	return nil
}

// Stop is a convenience for sending the system Stop signal.
func (r *Ref) Stop() { r.sendSystem(systemEnvelope(sysStop)) }

// Identify sends a system Identify request; the target answers with
// *ActorIdentity delivered to requester via an ordinary Tell.
func (r *Ref) Identify(requester *Ref) {
	env := systemEnvelope(sysIdentify)
	env.sender = requester
	r.sendSystem(env)
}

func (r *Ref) sendSystem(env *envelope) {
	c := r.liveCell()
	if c == nil {
		return
	}
	c.mailbox.PushSystem(env)
	r.system.dispatcher.schedule(c)
}

// Metrics returns a snapshot of the per-cell counters for this Ref's
// target, zero-valued if the Ref has no cell (such as a Select miss). A
// terminated cell still reports the counters it reached.
func (r *Ref) Metrics() ActorMetrics {
	if r == nil || r.cell == nil {
		return ActorMetrics{}
	}
	c := r.cell
	return ActorMetrics{
		ProcessedCount: c.processedCount.Load(),
		RestartCount:   c.restartCount.Load(),
		MailboxLength:  c.mailbox.Len(),
	}
}
