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
	"sync"
	"sync/atomic"
)

// mpscNode and mpscQueue are grounded on the teacher's default_mailbox.go:
// a lock-free, multi-producer/single-consumer linked queue with a pooled
// dummy-head node so producers can append by swapping the tail pointer.
type mpscNode struct {
	next atomic.Pointer[mpscNode]
	data *envelope
}

var mpscNodePool = sync.Pool{New: func() any { return new(mpscNode) }}

type mpscQueue struct {
	head atomic.Pointer[mpscNode]
	tail atomic.Pointer[mpscNode]
}

func newMPSCQueue() *mpscQueue {
	dummy := mpscNodePool.Get().(*mpscNode)
	dummy.next.Store(nil)
	dummy.data = nil
	q := &mpscQueue{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// push never blocks and is safe for many concurrent producers.
func (q *mpscQueue) push(value *envelope) {
	n := mpscNodePool.Get().(*mpscNode)
	n.data = value
	n.next.Store(nil)
	prev := q.tail.Swap(n)
	prev.next.Store(n)
}

// pop must be called by a single consumer goroutine; returns nil when
// empty.
func (q *mpscQueue) pop() *envelope {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}
	q.head.Store(next)
	value := next.data
	head.next.Store(nil)
	head.data = nil
	mpscNodePool.Put(head)
	return value
}

func (q *mpscQueue) isEmpty() bool {
	return q.head.Load().next.Load() == nil
}

// length is an O(n) diagnostic snapshot, intentionally not used on any hot
// path.
func (q *mpscQueue) length() int64 {
	var n int64
	cur := q.head.Load().next.Load()
	for cur != nil {
		n++
		cur = cur.next.Load()
	}
	return n
}
