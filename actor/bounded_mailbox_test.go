package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverware/actron/errors"
)

func TestBoundedMailboxOverflowDeadLettersByDefault(t *testing.T) {
	m := NewBoundedMailbox(2, false)
	require.NoError(t, m.PushUser(userEnvelope(1, nil)))
	require.NoError(t, m.PushUser(userEnvelope(2, nil)))

	err := m.PushUser(userEnvelope(3, nil))
	assert.ErrorIs(t, err, errors.ErrMailboxFull)
}

func TestBoundedMailboxWithinCapacitySucceeds(t *testing.T) {
	m := NewBoundedMailbox(4, false)
	for i := 0; i < 4; i++ {
		require.NoError(t, m.PushUser(userEnvelope(i, nil)))
	}
	assert.True(t, m.HasUser())
	assert.EqualValues(t, 4, m.Len())
}

func TestBoundedMailboxPopFIFO(t *testing.T) {
	m := NewBoundedMailbox(4, false)
	require.NoError(t, m.PushUser(userEnvelope("a", nil)))
	require.NoError(t, m.PushUser(userEnvelope("b", nil)))

	first := m.PopUser()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.payload)

	second := m.PopUser()
	require.NotNil(t, second)
	assert.Equal(t, "b", second.payload)

	assert.Nil(t, m.PopUser())
}

func TestBoundedMailboxCloseRejectsPush(t *testing.T) {
	m := NewBoundedMailbox(2, false)
	m.Close()
	err := m.PushUser(userEnvelope(1, nil))
	assert.ErrorIs(t, err, errors.ErrMailboxClosed)
}

func TestBoundedMailboxBlockOnFullBlocksUntilSpace(t *testing.T) {
	m := NewBoundedMailbox(1, true)
	require.NoError(t, m.PushUser(userEnvelope(1, nil)))

	done := make(chan struct{})
	go func() {
		require.NoError(t, m.PushUser(userEnvelope(2, nil)))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("push should have blocked while full")
	case <-time.After(50 * time.Millisecond):
	}

	popped := m.PopUser()
	require.NotNil(t, popped)
	assert.Equal(t, 1, popped.payload)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("blocked push never completed after space freed")
	}
}

func TestBoundedMailboxSuspensionRetainsUserEnvelopes(t *testing.T) {
	m := NewBoundedMailbox(4, false)
	m.Suspend()
	require.NoError(t, m.PushUser(userEnvelope("held", nil)))
	assert.Nil(t, m.PopUser())
	m.Resume()
	env := m.PopUser()
	require.NotNil(t, env)
	assert.Equal(t, "held", env.payload)
}

func TestBoundedMailboxSystemLaneUnbounded(t *testing.T) {
	m := NewBoundedMailbox(1, false)
	for i := 0; i < 100; i++ {
		m.PushSystem(systemEnvelope(sysStart))
	}
	assert.True(t, m.HasSystem())
}
