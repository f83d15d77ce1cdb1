package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateError(t *testing.T) {
	err := NewCreateError("worker", ErrDuplicateName)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "worker")
	assert.True(t, errors.Is(err, ErrDuplicateName))
}

func TestTellError(t *testing.T) {
	err := NewTellError(ErrMailboxFull)
	assert.ErrorIs(t, err, ErrMailboxFull)
	assert.Equal(t, ErrMailboxFull.Error(), err.Error())
}

func TestPanicError(t *testing.T) {
	stack := []byte("stack trace")
	err := NewPanicError("boom", stack)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, stack, err.Stack)
}

func TestAnyError(t *testing.T) {
	err := &AnyError{}
	assert.Equal(t, "*", err.Error())
}
