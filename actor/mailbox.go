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

// Mailbox is the per-cell envelope queue: two lanes (system, user) behind
// a shared flags word (spec §4.1). Implementations must be safe for many
// concurrent PushUser/PushSystem callers; Pop* are called only by the
// single drain task that currently owns the cell (enforced by the
// scheduled flag, not by the mailbox itself).
type Mailbox interface {
	// PushUser enqueues a user envelope. Returns an error if the mailbox is
	// closed or, for bounded mailboxes, full. It does not block, except on a
	// BoundedMailbox built with blockOnFull, which waits for space instead
	// of reporting full.
	PushUser(env *envelope) error
	// PushSystem enqueues a system envelope. Always succeeds: system
	// envelopes drain even while suspended or after Close.
	PushSystem(env *envelope)
	// PopSystem dequeues the next system envelope, or nil if none pending.
	PopSystem() *envelope
	// PopUser dequeues the next user envelope, or nil if none pending or
	// the mailbox is suspended.
	PopUser() *envelope
	// HasSystem reports whether a system envelope is pending.
	HasSystem() bool
	// HasUser reports whether a user envelope is pending (irrespective of
	// suspension).
	HasUser() bool
	// Len returns a best-effort snapshot of the total pending envelopes.
	Len() int64

	// TrySetScheduled CAS's the scheduled flag false->true. Callers that
	// get true own the exclusive right to drain until ClearScheduled.
	TrySetScheduled() bool
	// ClearScheduled clears the scheduled flag. Must be called after the
	// drain batch completes and before re-checking for pending work, per
	// the clear -> observe -> reschedule ordering (spec §4.1).
	ClearScheduled()

	// Suspend stops user envelope delivery; system envelopes keep draining.
	Suspend()
	// Resume re-enables user envelope delivery.
	Resume()
	// IsSuspended reports the current suspension state.
	IsSuspended() bool

	// Close rejects further PushUser calls; in-flight system envelopes
	// still drain to completion.
	Close()
	// IsClosed reports whether Close has been called.
	IsClosed() bool
}
