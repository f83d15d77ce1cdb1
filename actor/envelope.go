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

// systemKind enumerates the control signals carried by system envelopes
// (spec §3 "Envelope"). Zero value marks an ordinary user envelope.
type systemKind int

const (
	sysNone systemKind = iota
	sysStart
	sysStop
	sysRestart
	sysResume
	sysChildTerminated
	sysFailed
	sysIdentify
	sysWatch
	sysUnwatch
)

func (k systemKind) String() string {
	switch k {
	case sysStart:
		return "Start"
	case sysStop:
		return "Stop"
	case sysRestart:
		return "Restart"
	case sysResume:
		return "Resume"
	case sysChildTerminated:
		return "ChildTerminated"
	case sysFailed:
		return "Failed"
	case sysIdentify:
		return "Identify"
	case sysWatch:
		return "Watch"
	case sysUnwatch:
		return "Unwatch"
	default:
		return "None"
	}
}

// envelope is the unit the mailbox queues: a payload plus its optional
// sender (spec §3 "Envelope"). System envelopes additionally carry a
// systemKind and, for ChildTerminated/Failed/Watch/Unwatch, a reference to
// the child or watcher involved and (for Failed and Restart) the causing
// error and the message being handled when it occurred.
type envelope struct {
	kind    systemKind
	payload any
	sender  *Ref

	// populated only for system envelopes that need them.
	child       *Ref
	cause       error
	lastMessage any
}

func userEnvelope(payload any, sender *Ref) *envelope {
	return &envelope{payload: payload, sender: sender}
}

func systemEnvelope(kind systemKind) *envelope {
	return &envelope{kind: kind}
}

func (e *envelope) isSystem() bool { return e.kind != sysNone }

func systemRestart(cause error, lastMessage any) *envelope {
	e := systemEnvelope(sysRestart)
	e.cause = cause
	e.lastMessage = lastMessage
	return e
}

func systemChildTerminated(child *Ref) *envelope {
	e := systemEnvelope(sysChildTerminated)
	e.child = child
	return e
}

func systemFailed(child *Ref, cause error, lastMessage any) *envelope {
	e := systemEnvelope(sysFailed)
	e.child = child
	e.cause = cause
	e.lastMessage = lastMessage
	return e
}

func systemWatch(watcher *Ref) *envelope {
	e := systemEnvelope(sysWatch)
	e.sender = watcher
	return e
}

func systemUnwatch(watcher *Ref) *envelope {
	e := systemEnvelope(sysUnwatch)
	e.sender = watcher
	return e
}
