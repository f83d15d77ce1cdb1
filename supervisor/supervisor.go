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

// Package supervisor implements the failure-decision policy a parent cell
// consults when a child reports Failed (spec §4.5).
package supervisor

import (
	"reflect"
	"sync"
	"time"

	"github.com/silverware/actron/errors"
)

// Strategy selects which children a Decision applies to once computed.
type Strategy int

const (
	// OneForOne applies the decision only to the failing child.
	OneForOne Strategy = iota
	// AllForOne applies the decision to the failing child and all its
	// siblings under the same supervisor.
	AllForOne
)

func (s Strategy) String() string {
	switch s {
	case OneForOne:
		return "OneForOne"
	case AllForOne:
		return "AllForOne"
	default:
		return "Unknown"
	}
}

// Decision is the action a supervisor takes in response to a child's
// failure (spec §4.5 "Decisions").
type Decision int

const (
	// Resume leaves the child's state intact and un-suspends it.
	Resume Decision = iota
	// Restart tears down the child and its descendants (and, per strategy,
	// its siblings) and brings up a fresh instance.
	Restart
	// Stop terminates the affected children permanently.
	Stop
	// Escalate propagates the failure to the supervisor's own parent.
	Escalate
)

func (d Decision) String() string {
	switch d {
	case Resume:
		return "Resume"
	case Restart:
		return "Restart"
	case Stop:
		return "Stop"
	case Escalate:
		return "Escalate"
	default:
		return "Unknown"
	}
}

// Option configures a Supervisor at construction time.
type Option func(*Supervisor)

// WithStrategy sets the fan-out strategy.
func WithStrategy(s Strategy) Option {
	return func(sup *Supervisor) { sup.strategy = s }
}

// WithDirective maps the concrete type of err to decision.
func WithDirective(err error, decision Decision) Option {
	return func(sup *Supervisor) { sup.directives[errorType(err)] = decision }
}

// WithAnyErrorDirective makes decision the catch-all applied regardless of
// error type, discarding any type-specific rules set by earlier options.
func WithAnyErrorDirective(decision Decision) Option {
	return func(sup *Supervisor) {
		sup.directives = map[string]Decision{errorType(&errors.AnyError{}): decision}
	}
}

// WithRetry bounds how many times the cell attempts a Restart, waiting
// timeout between attempts; once the attempts are used up the child is
// stopped (grounded on the teacher's Supervisor.MaxRetries/Timeout).
func WithRetry(maxRetries uint32, timeout time.Duration) Option {
	return func(sup *Supervisor) {
		sup.maxRetries = maxRetries
		sup.timeout = timeout
	}
}

// Supervisor maps a failing child's error to a Decision under a Strategy.
// Safe for concurrent use.
type Supervisor struct {
	mu         sync.Mutex
	strategy   Strategy
	directives map[string]Decision
	maxRetries uint32
	timeout    time.Duration
}

// New builds a Supervisor. The default strategy is OneForOne with Restart
// applied to any error (spec §6 "default_supervisor_strategy: ... default
// OneForOne with Restart on any error").
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		strategy:   OneForOne,
		directives: map[string]Decision{errorType(&errors.AnyError{}): Restart},
		timeout:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the configured fan-out strategy.
func (s *Supervisor) Strategy() Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

// Decide returns the Decision configured for err: an exact type match if
// one exists, else the catch-all rule, else Restart.
func (s *Supervisor) Decide(err error) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.directives[errorType(err)]; ok {
		return d
	}
	if d, ok := s.directives[errorType(&errors.AnyError{})]; ok {
		return d
	}
	return Restart
}

// MaxRetries returns the restart retry budget.
func (s *Supervisor) MaxRetries() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxRetries
}

// RetryTimeout returns the delay the cell waits between Restart attempts
// counted against MaxRetries.
func (s *Supervisor) RetryTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeout
}

func errorType(err error) string {
	if err == nil {
		return "nil"
	}
	rtype := reflect.TypeOf(err)
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return rtype.String()
}
