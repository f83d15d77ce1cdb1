package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMailboxSystemBeforeUser(t *testing.T) {
	m := NewDefaultMailbox()
	require.NoError(t, m.PushUser(userEnvelope("user-msg", nil)))
	m.PushSystem(systemEnvelope(sysStart))

	// system lane drains independently of user lane ordering.
	sysEnv := m.PopSystem()
	require.NotNil(t, sysEnv)
	assert.Equal(t, sysStart, sysEnv.kind)

	userEnv := m.PopUser()
	require.NotNil(t, userEnv)
	assert.Equal(t, "user-msg", userEnv.payload)
}

func TestDefaultMailboxSuspensionRetainsUserEnvelopes(t *testing.T) {
	m := NewDefaultMailbox()
	m.Suspend()
	require.NoError(t, m.PushUser(userEnvelope("held", nil)))

	assert.Nil(t, m.PopUser(), "suspended mailbox must not yield user envelopes")
	assert.True(t, m.HasUser(), "envelope remains queued, not dropped")

	m.Resume()
	env := m.PopUser()
	require.NotNil(t, env)
	assert.Equal(t, "held", env.payload)
}

func TestDefaultMailboxSystemDrainsWhileSuspended(t *testing.T) {
	m := NewDefaultMailbox()
	m.Suspend()
	m.PushSystem(systemEnvelope(sysStop))

	env := m.PopSystem()
	require.NotNil(t, env)
	assert.Equal(t, sysStop, env.kind)
}

func TestDefaultMailboxCloseRejectsNewUserEnvelopes(t *testing.T) {
	m := NewDefaultMailbox()
	m.Close()
	assert.True(t, m.IsClosed())

	err := m.PushUser(userEnvelope("late", nil))
	assert.Error(t, err)
}

func TestDefaultMailboxCloseStillDrainsInFlightSystemEnvelopes(t *testing.T) {
	m := NewDefaultMailbox()
	m.PushSystem(systemEnvelope(sysStop))
	m.Close()

	env := m.PopSystem()
	require.NotNil(t, env)
	assert.Equal(t, sysStop, env.kind)
}

func TestDefaultMailboxScheduledCAS(t *testing.T) {
	m := NewDefaultMailbox()
	assert.True(t, m.TrySetScheduled())
	assert.False(t, m.TrySetScheduled())
	m.ClearScheduled()
	assert.True(t, m.TrySetScheduled())
}

func TestDefaultMailboxLen(t *testing.T) {
	m := NewDefaultMailbox()
	require.NoError(t, m.PushUser(userEnvelope(1, nil)))
	require.NoError(t, m.PushUser(userEnvelope(2, nil)))
	m.PushSystem(systemEnvelope(sysStart))
	assert.EqualValues(t, 3, m.Len())
}
