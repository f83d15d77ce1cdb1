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

// Terminated is delivered as an ordinary user message to every watcher of
// a cell (other than its parent, which is notified over the system lane
// via ChildTerminated) once that cell reaches Terminated.
type Terminated struct {
	Ref *Ref
}

// PoisonPill is a user-visible message that behaves like a self-directed
// system Stop: an actor that receives one stops itself without the
// sender needing a reference's Stop method.
type PoisonPill struct{}

// Identify is the user-visible counterpart of Ref.Identify: an actor that
// receives one replies to the sender with *ActorIdentity, the same as a
// system-lane identify request.
type Identify struct{}

// ActorIdentity answers an Identify request.
type ActorIdentity struct {
	Ref *Ref
}

// ActorMetrics is a point-in-time snapshot of a cell's counters.
type ActorMetrics struct {
	ProcessedCount int64
	RestartCount   int32
	MailboxLength  int64
}

// ActorStarted, ActorRestarted, ActorTerminated, and DeadLetter are all
// published on the event stream's single events topic; subscribers
// type-switch on the payload to tell them apart. See
// (*ActorSystem).Subscribe.
type ActorStarted struct{ Ref *Ref }
type ActorRestarted struct {
	Ref   *Ref
	Cause error
}
type ActorTerminated struct{ Ref *Ref }

// DeadLetter wraps a message that could not be delivered to a live cell.
type DeadLetter struct {
	MsgTypeID     string
	Sender        *Ref
	RecipientPath string
	Message       any
}
