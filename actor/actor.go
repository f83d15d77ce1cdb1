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

// Package actor implements the core in-process actor runtime: the cell
// (C2), reference (C3), hierarchy/registry (C4), dispatcher (C6), channels
// (C7), dead letters (C9), and the ActorSystem (C10) that wires them
// together. Supervision decisions (C5) are delegated to package
// supervisor; timed delivery (C8) to package scheduler.
package actor

import "github.com/silverware/actron/supervisor"

// Actor is the capability set a user type implements to be spawned into a
// cell (spec §3 "Actor (user-defined)"). Receive is invoked with exactly
// one in-flight message per cell at a time (spec §4.2). The lifecycle
// hooks are optional; embed NoOpHooks to satisfy Actor while only
// implementing Receive.
type Actor interface {
	// Receive handles one message. Panics are recovered at the cell
	// boundary and converted into a Failed envelope posted to the parent.
	Receive(ctx *ReceiveContext)
}

// PreStarter runs before the first user message is delivered, after the
// mailbox exists but before the cell reaches Running.
type PreStarter interface {
	PreStart(ctx *Context) error
}

// PostStarter runs immediately after PreStart succeeds, still before the
// cell transitions to Running.
type PostStarter interface {
	PostStart(ctx *Context) error
}

// PreRestarter runs when supervision decides Restart, after the failing
// instance is torn down and before a fresh one is constructed. cause is
// the error that triggered the restart; lastMessage is the user message
// being handled when the failure occurred, if any (spec §4.2 Transitions,
// scenario 2 in §8: "pre_restart(err, Some(m1))").
type PreRestarter interface {
	PreRestart(ctx *Context, cause error, lastMessage any) error
}

// PostStopper runs once, after all children have terminated and before
// ChildTerminated is sent to the parent.
type PostStopper interface {
	PostStop(ctx *Context) error
}

// StrategyFunc computes a supervision Decision for an observed error.
type StrategyFunc func(err error) supervisor.Decision

// SupervisorStrategySelector lets an actor override the default decision
// mapping used when one of its own children fails, keyed dynamically by
// the observed error (spec §3 "optional supervisor strategy selector").
type SupervisorStrategySelector interface {
	SupervisorStrategy() StrategyFunc
}

// NoOpHooks is embeddable by actors that only need Receive.
type NoOpHooks struct{}

func (NoOpHooks) PreStart(*Context) error                           { return nil }
func (NoOpHooks) PostStart(*Context) error                          { return nil }
func (NoOpHooks) PostStop(*Context) error                           { return nil }
func (NoOpHooks) PreRestart(*Context, error, any) error             { return nil }

// ReceiveFunc adapts a plain function to the Actor interface, grounded on
// the teacher's func_actor.go convenience for small, stateless actors.
type ReceiveFunc func(ctx *ReceiveContext)

func (f ReceiveFunc) Receive(ctx *ReceiveContext) { f(ctx) }

// Producer constructs a fresh Actor instance. The runtime calls Producer
// again on every restart so each actor instance starts from a clean Go
// value (spec §4.5 "constructs a fresh actor instance").
type Producer func() Actor
