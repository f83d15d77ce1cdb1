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

// Package testkit provides a small actor that records every message it
// receives, for use as the sender or target in end-to-end assertions.
package testkit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/silverware/actron/actor"
)

const defaultProbeTimeout = 3 * time.Second

type received struct {
	sender  *actor.Ref
	payload any
}

type probeActor struct {
	actor.NoOpHooks
	inbox chan received
}

func (p *probeActor) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *actor.Terminated:
		return
	default:
		select {
		case p.inbox <- received{sender: ctx.Sender(), payload: ctx.Message()}:
		default:
		}
	}
}

// Probe wraps a spawned probeActor with blocking assertion helpers in the
// style this runtime's own end-to-end tests want: ExpectMessage blocks up
// to a timeout for the next message and fails the test if none, or a
// different one, arrives.
type Probe struct {
	t    *testing.T
	ref  *actor.Ref
	ch   chan received
	last received
}

// NewProbe spawns a probe actor under system and returns a handle to it.
func NewProbe(t *testing.T, system *actor.ActorSystem) *Probe {
	t.Helper()
	inbox := make(chan received, testkitInboxSize)
	ref, err := system.ActorOf(func() actor.Actor {
		return &probeActor{inbox: inbox}
	}, fmt.Sprintf("probe-%p", inbox))
	require.NoError(t, err)
	return &Probe{t: t, ref: ref, ch: inbox}
}

const testkitInboxSize = 64

// Ref returns the probe's own Ref, usable as a sender or tell target.
func (p *Probe) Ref() *actor.Ref { return p.ref }

// ExpectMessage blocks for the default timeout and asserts the next
// received message equals want.
func (p *Probe) ExpectMessage(want any) {
	p.ExpectMessageWithin(defaultProbeTimeout, want)
}

// ExpectMessageWithin is ExpectMessage with an explicit timeout.
func (p *Probe) ExpectMessageWithin(timeout time.Duration, want any) {
	p.t.Helper()
	msg := p.receive(timeout)
	require.Equal(p.t, want, msg.payload)
}

// ExpectAnyMessage blocks for the default timeout and returns whatever
// message arrives, failing the test if none does.
func (p *Probe) ExpectAnyMessage() any {
	p.t.Helper()
	return p.receive(defaultProbeTimeout).payload
}

// ExpectNoMessage asserts nothing arrives within the default timeout.
func (p *Probe) ExpectNoMessage() {
	p.t.Helper()
	select {
	case msg := <-p.ch:
		p.t.Fatalf("expected no message, got %#v", msg.payload)
	case <-time.After(defaultProbeTimeout):
	}
}

// Sender returns the sender of the most recently received message.
func (p *Probe) Sender() *actor.Ref { return p.last.sender }

func (p *Probe) receive(timeout time.Duration) received {
	p.t.Helper()
	select {
	case msg := <-p.ch:
		p.last = msg
		return msg
	case <-time.After(timeout):
		p.t.Fatalf("timed out after %s waiting for a message", timeout)
		return received{}
	}
}
