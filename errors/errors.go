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

// Package errors defines the sentinel error values and typed wrappers the
// runtime surfaces at its boundaries (§6-7 of the design). Actor handler
// failures never reach this package directly — they are captured as
// *PanicError and routed through supervision instead.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned by actor_of when name is already taken by
	// a live or tombstoned sibling.
	ErrDuplicateName = errors.New("actor name already exists")
	// ErrInvalidName is returned by actor_of when name is empty, contains
	// '/', or does not match the path segment grammar.
	ErrInvalidName = errors.New("invalid actor name")
	// ErrSystemStopped is returned by actor_of once ActorSystem.Shutdown has
	// been called.
	ErrSystemStopped = errors.New("actor system has stopped")
	// ErrMailboxClosed is returned by try_tell when the target mailbox has
	// been closed.
	ErrMailboxClosed = errors.New("mailbox is closed")
	// ErrMailboxFull is returned by try_tell against a bounded mailbox at
	// capacity.
	ErrMailboxFull = errors.New("mailbox is full")
	// ErrDead is returned for operations that require a live cell.
	ErrDead = errors.New("actor is not alive")
	// ErrNotRunning indicates an operation was attempted on a cell that has
	// not reached the Running state.
	ErrNotRunning = errors.New("actor is not running")
	// ErrSchedulerNotStarted is returned by scheduler operations invoked
	// before Start or after Stop.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")
	// ErrSchedulerHandleCancelled is returned by Cancel for a handle whose
	// key(s) are all already gone: never scheduled, or already cancelled.
	ErrSchedulerHandleCancelled = errors.New("scheduled handle already cancelled")
	// ErrUnhandled marks a message a receive function declined to handle.
	ErrUnhandled = errors.New("unhandled message")
)

// CreateError wraps the structured reason actor_of failed with.
type CreateError struct {
	Reason error
	Name   string
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create actor %q: %v", e.Name, e.Reason)
}

func (e *CreateError) Unwrap() error { return e.Reason }

// NewCreateError builds a CreateError for the given child name.
func NewCreateError(name string, reason error) *CreateError {
	return &CreateError{Name: name, Reason: reason}
}

// TellError wraps the structured reason try_tell failed with.
type TellError struct {
	Reason error
}

func (e *TellError) Error() string { return e.Reason.Error() }
func (e *TellError) Unwrap() error { return e.Reason }

// NewTellError builds a TellError for the given reason.
func NewTellError(reason error) *TellError { return &TellError{Reason: reason} }

// PanicError wraps a value recovered from a panic inside a handler or
// lifecycle hook, along with the stack trace captured at the cell
// boundary. It is the payload of a Failed system envelope (§4.2, §7).
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError wraps a recovered panic value with its stack trace.
func NewPanicError(value any, stack []byte) *PanicError {
	return &PanicError{Value: value, Stack: stack}
}

// AnyError is a sentinel error type used as a supervisor directive map key
// meaning "match any error type", mirroring the teacher's AnyError.
type AnyError struct{}

func (*AnyError) Error() string { return "*" }
