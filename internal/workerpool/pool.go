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

// Package workerpool implements the default Executor the ActorSystem runs
// cell drains on when the caller does not supply one of its own (spec §6
// "Executor handle"). The dispatcher (package actor) depends only on the
// Executor interface; this package is one concrete, opaque implementation
// of it, grounded on the teacher's internal/workerpool sharded design but
// trimmed to the two capabilities the spec actually names: Spawn and
// SpawnBlocking.
package workerpool

import (
	"sync"
	"sync/atomic"
	"time"
)

const maxShards = 128

// Option configures a WorkerPool at construction time.
type Option interface {
	apply(*WorkerPool)
}

type optionFunc func(*WorkerPool)

func (f optionFunc) apply(p *WorkerPool) { f(p) }

// WithNumShards caps the number of independent worker shards. Each shard
// owns its own task queue so unrelated cells rarely contend on the same
// channel.
func WithNumShards(n int) Option {
	return optionFunc(func(p *WorkerPool) {
		if n > maxShards {
			n = maxShards
		}
		if n > 0 {
			p.numShards = n
		}
	})
}

// WithIdleTimeout sets how long a worker goroutine waits for new work
// before exiting, shrinking the pool back down under light load.
func WithIdleTimeout(d time.Duration) Option {
	return optionFunc(func(p *WorkerPool) {
		if d > 0 {
			p.idleTimeout = d
		}
	})
}

type shard struct {
	tasks   chan func()
	mu      sync.Mutex
	workers int
}

// WorkerPool is the default Executor: a set of shards, each lazily
// growing a small goroutine pool that drains a task channel and shrinks
// back to zero after idleTimeout with no work.
type WorkerPool struct {
	shards      []*shard
	numShards   int
	idleTimeout time.Duration
	closed      atomic.Bool
	active      atomic.Int64
}

// New creates a WorkerPool ready to accept Spawn/SpawnBlocking calls.
func New(opts ...Option) *WorkerPool {
	p := &WorkerPool{
		numShards:   8,
		idleTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt.apply(p)
	}
	p.shards = make([]*shard, p.numShards)
	for i := range p.shards {
		p.shards[i] = &shard{tasks: make(chan func(), 64)}
	}
	return p
}

// Spawn submits task to be run on some worker goroutine. It never blocks:
// if every worker in the chosen shard is busy, a new one is started.
func (p *WorkerPool) Spawn(task func()) {
	if p.closed.Load() {
		go task()
		return
	}
	sh := p.shards[shardIndex(p.numShards)]
	sh.mu.Lock()
	if sh.workers == 0 {
		sh.workers++
		p.active.Add(1)
		go p.runWorker(sh)
	}
	sh.mu.Unlock()
	select {
	case sh.tasks <- task:
	default:
		sh.mu.Lock()
		sh.workers++
		sh.mu.Unlock()
		p.active.Add(1)
		go p.runWorker(sh)
		sh.tasks <- task
	}
}

// SpawnBlocking submits task on a dedicated goroutine, for work the caller
// expects may block for a while (spec §6: "spawn_blocking(task) optional").
// The default pool treats it identically to Spawn since Go goroutines are
// cheap and the pool never caps total concurrency; a deployment fronted by
// an OS-thread-limited executor would override this.
func (p *WorkerPool) SpawnBlocking(task func()) {
	p.active.Add(1)
	go func() {
		defer p.active.Add(-1)
		task()
	}()
}

func (p *WorkerPool) runWorker(sh *shard) {
	defer func() {
		sh.mu.Lock()
		sh.workers--
		sh.mu.Unlock()
		p.active.Add(-1)
	}()
	timer := time.NewTimer(p.idleTimeout)
	defer timer.Stop()
	for {
		select {
		case task, ok := <-sh.tasks:
			if !ok {
				return
			}
			task()
			timer.Reset(p.idleTimeout)
		case <-timer.C:
			return
		}
	}
}

// ActiveCount returns the number of live worker goroutines (busy or idle)
// plus SpawnBlocking goroutines still running, for diagnostics and tests.
func (p *WorkerPool) ActiveCount() int64 { return p.active.Load() }

// Close prevents further pooling; subsequent Spawn calls fall back to a
// bare goroutine per task.
func (p *WorkerPool) Close() {
	p.closed.Store(true)
	for _, sh := range p.shards {
		close(sh.tasks)
	}
}

var shardCursor atomic.Uint64

func shardIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return int(shardCursor.Add(1) % uint64(n))
}
