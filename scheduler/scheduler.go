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

// Package scheduler implements timed and recurring message delivery
// (spec §4.8). It knows nothing about actors or mailboxes: callers supply
// a deliver closure, keeping this package free of a dependency on package
// actor (which in turn depends on scheduler for Context.Schedule*).
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/silverware/actron/errors"
	"github.com/silverware/actron/log"
)

// Handle identifies a scheduled job for cancellation (spec §4.8).
// Cancellation is idempotent; a dispatch already handed off to the quartz
// scheduler's job runner cannot be revoked once in flight (spec: "a
// dispatch already handed to the target's mailbox cannot be revoked").
type Handle struct {
	key string
}

// Scheduler backs one-shot and fixed-interval recurring delivery on top of
// github.com/reugn/go-quartz, mirroring the teacher's actor/scheduler.go.
type Scheduler struct {
	mu          sync.Mutex
	quartz      quartz.Scheduler
	keys        map[string]struct{}
	started     atomic.Bool
	logger      log.Logger
	stopTimeout time.Duration
}

// New creates a Scheduler. It must be started with Start before any
// Schedule* call succeeds.
func New(logger log.Logger, stopTimeout time.Duration) *Scheduler {
	if logger == nil {
		logger = log.DiscardLogger
	}
	sched := quartz.NewStdScheduler()
	return &Scheduler{
		quartz:      sched,
		keys:        make(map[string]struct{}),
		logger:      logger,
		stopTimeout: stopTimeout,
	}
}

// Start brings the underlying quartz scheduler up.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quartz.Start(ctx)
	s.started.Store(s.quartz.IsStarted())
	s.logger.Info("scheduler started")
}

// Stop drains in-flight jobs and tears the scheduler down. New Schedule*
// calls fail with ErrSchedulerNotStarted once Stop returns.
func (s *Scheduler) Stop(ctx context.Context) {
	if !s.started.Load() {
		return
	}
	s.mu.Lock()
	_ = s.quartz.Clear()
	s.keys = make(map[string]struct{})
	s.quartz.Stop()
	s.started.Store(false)
	s.mu.Unlock()

	stopCtx, cancel := context.WithTimeout(ctx, s.stopTimeout)
	defer cancel()
	s.quartz.Wait(stopCtx)
	s.logger.Info("scheduler stopped")
}

// ScheduleOnce delivers exactly once after delay.
func (s *Scheduler) ScheduleOnce(delay time.Duration, deliver func() error) (Handle, error) {
	return s.scheduleJob(deliver, quartz.NewRunOnceTrigger(delay))
}

// Schedule delivers once after initial, and separately every interval
// (fixed-interval, not fixed-rate: each next fire is computed interval
// after the previous dispatch, spec §4.8). Both legs are scheduled at the
// call, so the recurring fires fall at interval, 2*interval, ... from the
// call; they are not offset by initial.
func (s *Scheduler) Schedule(initial, interval time.Duration, deliver func() error) (Handle, error) {
	first, err := s.ScheduleOnce(initial, deliver)
	if err != nil {
		return Handle{}, err
	}
	rest, err := s.ScheduleAtInterval(interval, deliver)
	if err != nil {
		return Handle{}, err
	}
	// Cancelling the composite handle cancels both legs.
	return Handle{key: first.key + "," + rest.key}, nil
}

// ScheduleAtInterval delivers every interval, starting after the first
// interval elapses.
func (s *Scheduler) ScheduleAtInterval(interval time.Duration, deliver func() error) (Handle, error) {
	return s.scheduleJob(deliver, quartz.NewSimpleTrigger(interval))
}

func (s *Scheduler) scheduleJob(deliver func() error, trigger quartz.Trigger) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started.Load() {
		return Handle{}, errors.ErrSchedulerNotStarted
	}
	key := uuid.NewString()
	j := job.NewFunctionJob(func(context.Context) (bool, error) {
		err := deliver()
		return err == nil, err
	})
	detail := quartz.NewJobDetail(j, quartz.NewJobKey(key))
	if err := s.quartz.ScheduleJob(detail, trigger); err != nil {
		return Handle{}, err
	}
	s.keys[key] = struct{}{}
	return Handle{key: key}, nil
}

// Cancel suppresses all future dispatches for h. Idempotent: cancelling an
// already-cancelled or unknown handle returns ErrSchedulerHandleCancelled
// rather than panicking or silently succeeding, so callers can tell a stale
// handle from a live one they just cancelled.
func (s *Scheduler) Cancel(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cancelledAny bool
	for _, key := range splitKeys(h.key) {
		if _, live := s.keys[key]; !live {
			continue
		}
		delete(s.keys, key)
		_ = s.quartz.DeleteJob(quartz.NewJobKey(key))
		cancelledAny = true
	}
	if !cancelledAny {
		return errors.ErrSchedulerHandleCancelled
	}
	return nil
}

func splitKeys(combined string) []string {
	if combined == "" {
		return nil
	}
	var keys []string
	start := 0
	for i := 0; i < len(combined); i++ {
		if combined[i] == ',' {
			keys = append(keys, combined[start:i])
			start = i + 1
		}
	}
	keys = append(keys, combined[start:])
	return keys
}
