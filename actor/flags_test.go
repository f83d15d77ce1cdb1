package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxFlagsTrySetScheduled(t *testing.T) {
	var f mailboxFlags
	assert.True(t, f.trySetScheduled())
	assert.False(t, f.trySetScheduled(), "second CAS while already scheduled must fail")

	f.clearScheduled()
	assert.True(t, f.trySetScheduled(), "CAS succeeds again once cleared")
}

func TestMailboxFlagsSuspendResume(t *testing.T) {
	var f mailboxFlags
	assert.False(t, f.isSuspended())
	f.suspend()
	assert.True(t, f.isSuspended())
	f.resume()
	assert.False(t, f.isSuspended())
}

func TestMailboxFlagsClose(t *testing.T) {
	var f mailboxFlags
	assert.False(t, f.isClosed())
	f.close()
	assert.True(t, f.isClosed())
}

func TestMailboxFlagsAreIndependent(t *testing.T) {
	var f mailboxFlags
	f.suspend()
	f.close()
	assert.True(t, f.trySetScheduled())
	assert.True(t, f.isSuspended())
	assert.True(t, f.isClosed())
}
