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

package eventstream

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscriber receives Messages pushed by a Stream. Unexported methods keep
// construction confined to AddSubscriber, mirroring the teacher's
// eventstream.Subscriber.
type Subscriber interface {
	ID() string
	Active() bool
	Topics() []string
	// C is the channel new messages are signaled on. Consumers should
	// range over it; it is closed on Shutdown.
	C() <-chan *Message
	Shutdown()

	signal(message *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	id string

	topicsMu sync.Mutex
	topics   map[string]bool

	ch     chan *Message
	active atomic.Bool
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	s := &subscriber{
		id:     uuid.NewString(),
		topics: make(map[string]bool),
		ch:     make(chan *Message, 256),
	}
	s.active.Store(true)
	return s
}

func (s *subscriber) ID() string     { return s.id }
func (s *subscriber) Active() bool   { return s.active.Load() }
func (s *subscriber) C() <-chan *Message { return s.ch }

func (s *subscriber) Topics() []string {
	s.topicsMu.Lock()
	defer s.topicsMu.Unlock()
	topics := make([]string, 0, len(s.topics))
	for topic := range s.topics {
		topics = append(topics, topic)
	}
	return topics
}

func (s *subscriber) Shutdown() {
	if s.active.CompareAndSwap(true, false) {
		close(s.ch)
	}
}

func (s *subscriber) signal(message *Message) {
	if !s.active.Load() {
		return
	}
	select {
	case s.ch <- message:
	default:
		// slow subscriber: drop rather than block the publisher.
	}
}

func (s *subscriber) subscribe(topic string) {
	s.topicsMu.Lock()
	s.topics[topic] = true
	s.topicsMu.Unlock()
}

func (s *subscriber) unsubscribe(topic string) {
	s.topicsMu.Lock()
	delete(s.topics, topic)
	s.topicsMu.Unlock()
}
