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

// Executor is the opaque asynchronous task runner the dispatcher submits
// cell drains onto. ActorSystem defaults to internal/workerpool; callers
// may supply their own, provided it offers these two capabilities.
type Executor interface {
	// Spawn runs task on some worker, without blocking the caller.
	Spawn(task func())
	// SpawnBlocking runs task on a goroutine the caller does not expect
	// to return quickly.
	SpawnBlocking(task func())
}

// dispatcher ensures a cell with pending work has exactly one scheduled
// drain task at any time. How many user envelopes one drain processes
// before yielding is each cell's own throughput (option.go's
// WithCellThroughput), not a dispatcher-wide setting.
type dispatcher struct {
	executor Executor
}

func newDispatcher(executor Executor) *dispatcher {
	return &dispatcher{executor: executor}
}

// schedule submits a drain task for c if one is not already running.
// Safe to call redundantly: TrySetScheduled makes the CAS the single
// source of truth for whether a task is outstanding.
func (d *dispatcher) schedule(c *cell) {
	if c.mailbox.IsClosed() && !c.mailbox.HasSystem() {
		return
	}
	if !c.mailbox.TrySetScheduled() {
		return
	}
	d.executor.Spawn(func() {
		c.drain(c.throughput)
	})
}
