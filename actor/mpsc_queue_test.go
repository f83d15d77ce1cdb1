package actor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMPSCQueuePushPopFIFO(t *testing.T) {
	q := newMPSCQueue()
	assert.True(t, q.isEmpty())

	e1 := userEnvelope(1, nil)
	e2 := userEnvelope(2, nil)
	e3 := userEnvelope(3, nil)
	q.push(e1)
	q.push(e2)
	q.push(e3)

	assert.False(t, q.isEmpty())
	assert.Equal(t, e1, q.pop())
	assert.Equal(t, e2, q.pop())
	assert.Equal(t, e3, q.pop())
	assert.Nil(t, q.pop())
	assert.True(t, q.isEmpty())
}

func TestMPSCQueueLength(t *testing.T) {
	q := newMPSCQueue()
	for i := 0; i < 5; i++ {
		q.push(userEnvelope(i, nil))
	}
	assert.EqualValues(t, 5, q.length())
	q.pop()
	assert.EqualValues(t, 4, q.length())
}

func TestMPSCQueueConcurrentProducers(t *testing.T) {
	q := newMPSCQueue()
	const producers = 20
	const perProducer = 100

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(userEnvelope(i, nil))
			}
		}()
	}
	wg.Wait()

	count := 0
	for q.pop() != nil {
		count++
	}
	require.Equal(t, producers*perProducer, count)
}
