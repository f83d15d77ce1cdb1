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

import "sync/atomic"

const (
	flagScheduled uint32 = 1 << 0
	flagSuspended uint32 = 1 << 1
	flagClosed    uint32 = 1 << 2
)

// mailboxFlags is the {scheduled, suspended, closed} bitset every Mailbox
// implementation shares (spec §3 "Mailbox... a flags word").
type mailboxFlags struct {
	bits atomic.Uint32
}

func (f *mailboxFlags) trySetScheduled() bool {
	for {
		old := f.bits.Load()
		if old&flagScheduled != 0 {
			return false
		}
		if f.bits.CompareAndSwap(old, old|flagScheduled) {
			return true
		}
	}
}

func (f *mailboxFlags) clearScheduled() {
	for {
		old := f.bits.Load()
		if f.bits.CompareAndSwap(old, old&^flagScheduled) {
			return
		}
	}
}

func (f *mailboxFlags) setBit(bit uint32, set bool) {
	for {
		old := f.bits.Load()
		var next uint32
		if set {
			next = old | bit
		} else {
			next = old &^ bit
		}
		if f.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (f *mailboxFlags) hasBit(bit uint32) bool {
	return f.bits.Load()&bit != 0
}

func (f *mailboxFlags) suspend()          { f.setBit(flagSuspended, true) }
func (f *mailboxFlags) resume()           { f.setBit(flagSuspended, false) }
func (f *mailboxFlags) isSuspended() bool { return f.hasBit(flagSuspended) }
func (f *mailboxFlags) close()            { f.setBit(flagClosed, true) }
func (f *mailboxFlags) isClosed() bool    { return f.hasBit(flagClosed) }
