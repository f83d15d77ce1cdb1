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
	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/silverware/actron/errors"
)

// BoundedMailbox caps the user lane at a fixed capacity using a ring
// buffer (spec §6 "mailbox_capacity: usize"), while the system lane stays
// the unbounded MPSC queue from DefaultMailbox — system envelopes must
// never be dropped for backpressure.
//
// Overflow policy (spec §9 Open Question, resolved here): by default
// PushUser does not block. When the ring buffer is full, PushUser returns
// ErrMailboxFull so try_tell surfaces Overflow synchronously; tell (via
// Ref) converts that into a dead-letter. If blockOnFull was set at
// construction, PushUser instead blocks until space frees up.
type BoundedMailbox struct {
	mailboxFlags
	system      *mpscQueue
	user        *gods.RingBuffer
	blockOnFull bool
}

var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a bounded mailbox with the given user-lane
// capacity. The ring buffer rounds capacity up to the next power of two,
// so the lane holds that many envelopes. blockOnFull selects the overflow
// policy: false (default) dead-letters on overflow, true blocks the
// producer until space frees.
func NewBoundedMailbox(capacity int, blockOnFull bool) *BoundedMailbox {
	return &BoundedMailbox{
		system:      newMPSCQueue(),
		user:        gods.NewRingBuffer(uint64(capacity)),
		blockOnFull: blockOnFull,
	}
}

func (m *BoundedMailbox) PushUser(env *envelope) error {
	if m.isClosed() {
		return errors.ErrMailboxClosed
	}
	if m.blockOnFull {
		if err := m.user.Put(env); err != nil {
			return errors.ErrMailboxClosed
		}
		return nil
	}
	ok, err := m.user.Offer(env)
	if err != nil {
		return errors.ErrMailboxClosed
	}
	if !ok {
		return errors.ErrMailboxFull
	}
	return nil
}

func (m *BoundedMailbox) PushSystem(env *envelope) { m.system.push(env) }

func (m *BoundedMailbox) PopSystem() *envelope { return m.system.pop() }

func (m *BoundedMailbox) PopUser() *envelope {
	if m.isSuspended() || m.user.Len() == 0 {
		return nil
	}
	item, err := m.user.Get()
	if err != nil || item == nil {
		return nil
	}
	env, _ := item.(*envelope)
	return env
}

func (m *BoundedMailbox) HasSystem() bool { return !m.system.isEmpty() }
func (m *BoundedMailbox) HasUser() bool   { return m.user.Len() > 0 }

func (m *BoundedMailbox) Len() int64 {
	return m.system.length() + int64(m.user.Len())
}

func (m *BoundedMailbox) TrySetScheduled() bool { return m.trySetScheduled() }
func (m *BoundedMailbox) ClearScheduled()       { m.clearScheduled() }

func (m *BoundedMailbox) Suspend()          { m.suspend() }
func (m *BoundedMailbox) Resume()           { m.resume() }
func (m *BoundedMailbox) IsSuspended() bool { return m.isSuspended() }

func (m *BoundedMailbox) Close() {
	m.close()
	m.user.Dispose()
}
func (m *BoundedMailbox) IsClosed() bool { return m.isClosed() }
