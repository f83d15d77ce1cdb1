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

import "github.com/silverware/actron/errors"

// DefaultMailbox is the unbounded mailbox used unless a cell is spawned
// with a bounded capacity (spec §6 "mailbox_capacity... default
// unbounded"). It keeps the system and user lanes as two independent
// lock-free MPSC queues sharing one flags word, so PushSystem/PushUser
// never contend with each other and PopSystem is always safe even while
// PopUser is suspended.
type DefaultMailbox struct {
	mailboxFlags
	system *mpscQueue
	user   *mpscQueue
}

var _ Mailbox = (*DefaultMailbox)(nil)

// NewDefaultMailbox creates an empty, unbounded, unscheduled mailbox.
func NewDefaultMailbox() *DefaultMailbox {
	return &DefaultMailbox{
		system: newMPSCQueue(),
		user:   newMPSCQueue(),
	}
}

func (m *DefaultMailbox) PushUser(env *envelope) error {
	if m.isClosed() {
		return errors.ErrMailboxClosed
	}
	m.user.push(env)
	return nil
}

func (m *DefaultMailbox) PushSystem(env *envelope) {
	m.system.push(env)
}

func (m *DefaultMailbox) PopSystem() *envelope { return m.system.pop() }

func (m *DefaultMailbox) PopUser() *envelope {
	if m.isSuspended() {
		return nil
	}
	return m.user.pop()
}

func (m *DefaultMailbox) HasSystem() bool { return !m.system.isEmpty() }
func (m *DefaultMailbox) HasUser() bool   { return !m.user.isEmpty() }

func (m *DefaultMailbox) Len() int64 {
	return m.system.length() + m.user.length()
}

func (m *DefaultMailbox) TrySetScheduled() bool { return m.trySetScheduled() }
func (m *DefaultMailbox) ClearScheduled()       { m.clearScheduled() }

func (m *DefaultMailbox) Suspend()          { m.suspend() }
func (m *DefaultMailbox) Resume()           { m.resume() }
func (m *DefaultMailbox) IsSuspended() bool { return m.isSuspended() }

func (m *DefaultMailbox) Close()         { m.close() }
func (m *DefaultMailbox) IsClosed() bool { return m.isClosed() }
