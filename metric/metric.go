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

// Package metric exposes the OpenTelemetry instruments the ActorSystem
// records lifecycle and dead-letter counts against (ambient observability,
// SPEC_FULL.md §4). These are diagnostics only; no invariant in spec §8
// depends on them.
package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics holds the counters an ActorSystem updates as cells start,
// restart, and terminate, and as messages land in dead letters.
type SystemMetrics struct {
	actorsStarted    metric.Int64Counter
	actorsRestarted  metric.Int64Counter
	actorsTerminated metric.Int64Counter
	deadLetters      metric.Int64Counter
	mailboxDepth     metric.Int64ObservableGauge
}

// New builds SystemMetrics against meter. depth is polled lazily via an
// observable callback supplied by the caller (typically the ActorSystem
// summing every live cell's mailbox length).
func New(meter metric.Meter, depth func() int64) (*SystemMetrics, error) {
	m := new(SystemMetrics)
	var err error

	if m.actorsStarted, err = meter.Int64Counter(
		"actron_actors_started_total",
		metric.WithDescription("Total number of actors started"),
	); err != nil {
		return nil, fmt.Errorf("actorsStarted instrument: %w", err)
	}
	if m.actorsRestarted, err = meter.Int64Counter(
		"actron_actors_restarted_total",
		metric.WithDescription("Total number of actor restarts"),
	); err != nil {
		return nil, fmt.Errorf("actorsRestarted instrument: %w", err)
	}
	if m.actorsTerminated, err = meter.Int64Counter(
		"actron_actors_terminated_total",
		metric.WithDescription("Total number of actors terminated"),
	); err != nil {
		return nil, fmt.Errorf("actorsTerminated instrument: %w", err)
	}
	if m.deadLetters, err = meter.Int64Counter(
		"actron_dead_letters_total",
		metric.WithDescription("Total number of messages routed to dead letters"),
	); err != nil {
		return nil, fmt.Errorf("deadLetters instrument: %w", err)
	}
	if depth != nil {
		if m.mailboxDepth, err = meter.Int64ObservableGauge(
			"actron_mailbox_depth",
			metric.WithDescription("Aggregate mailbox depth across live actors"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(depth())
				return nil
			}),
		); err != nil {
			return nil, fmt.Errorf("mailboxDepth instrument: %w", err)
		}
	}
	return m, nil
}

func (m *SystemMetrics) ActorStarted(ctx context.Context)    { m.actorsStarted.Add(ctx, 1) }
func (m *SystemMetrics) ActorRestarted(ctx context.Context)  { m.actorsRestarted.Add(ctx, 1) }
func (m *SystemMetrics) ActorTerminated(ctx context.Context) { m.actorsTerminated.Add(ctx, 1) }
func (m *SystemMetrics) DeadLetter(ctx context.Context)      { m.deadLetters.Add(ctx, 1) }
