package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnRunsTask(t *testing.T) {
	pool := New()
	defer pool.Close()

	done := make(chan struct{})
	pool.Spawn(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestSpawnManyTasksAllRun(t *testing.T) {
	pool := New(WithNumShards(4))
	defer pool.Close()

	const n = 500
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		pool.Spawn(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	assert.EqualValues(t, n, count.Load())
}

func TestSpawnBlockingRunsOnItsOwnGoroutine(t *testing.T) {
	pool := New()
	defer pool.Close()

	block := make(chan struct{})
	done := make(chan struct{})
	pool.SpawnBlocking(func() {
		<-block
		close(done)
	})

	require.Eventually(t, func() bool {
		return pool.ActiveCount() >= 1
	}, time.Second, time.Millisecond)

	close(block)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocking task never completed")
	}
}

func TestWithNumShardsCapsAtMax(t *testing.T) {
	pool := New(WithNumShards(9999))
	defer pool.Close()
	assert.Equal(t, maxShards, pool.numShards)
}

func TestWithIdleTimeoutIgnoresNonPositive(t *testing.T) {
	pool := New(WithIdleTimeout(0))
	defer pool.Close()
	assert.Equal(t, 10*time.Second, pool.idleTimeout)
}

func TestCloseFallsBackToBareGoroutines(t *testing.T) {
	pool := New()
	pool.Close()

	done := make(chan struct{})
	pool.Spawn(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran after close")
	}
}
