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

package actor

import mapset "github.com/deckarep/golang-set/v2"

// Subscribe registers subscriber to receive Publish messages sent on
// topic to a Channel actor.
type Subscribe struct {
	Topic      string
	Subscriber *Ref
}

// Unsubscribe reverses a prior Subscribe.
type Unsubscribe struct {
	Topic      string
	Subscriber *Ref
}

// SubscribeAll registers subscriber for every topic, including ones
// created after the call.
type SubscribeAll struct {
	Subscriber *Ref
}

// Publish asks a Channel to deliver msg to every subscriber of topic,
// plus every All-subscriber.
type Publish struct {
	Topic string
	Msg   any
}

// Channel is a built-in actor implementing topic-routed publish/
// subscribe: Subscribe/Unsubscribe/SubscribeAll/Publish as its user
// protocol. Delivery to each subscriber goes through an ordinary Tell,
// so it is ordered per (publisher, subscriber) pair and unordered across
// subscribers.
type Channel struct {
	NoOpHooks
	topics map[string]mapset.Set[*Ref]
	all    mapset.Set[*Ref]
}

// NewChannel returns a Producer for a fresh Channel instance.
func NewChannel() Producer {
	return func() Actor {
		return &Channel{
			topics: make(map[string]mapset.Set[*Ref]),
			all:    mapset.NewSet[*Ref](),
		}
	}
}

func (ch *Channel) Receive(ctx *ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *Subscribe:
		ch.subscribersFor(msg.Topic).Add(msg.Subscriber)
	case *Unsubscribe:
		if set, ok := ch.topics[msg.Topic]; ok {
			set.Remove(msg.Subscriber)
		}
	case *SubscribeAll:
		ch.all.Add(msg.Subscriber)
	case *Publish:
		ch.deliver(msg.Topic, msg.Msg, ctx.Sender())
	default:
		ctx.Unhandled()
	}
}

func (ch *Channel) subscribersFor(topic string) mapset.Set[*Ref] {
	set, ok := ch.topics[topic]
	if !ok {
		set = mapset.NewSet[*Ref]()
		ch.topics[topic] = set
	}
	return set
}

func (ch *Channel) deliver(topic string, msg any, sender *Ref) {
	ch.pruneDead(ch.topics[topic])
	ch.pruneDead(ch.all)

	if set, ok := ch.topics[topic]; ok {
		set.Each(func(sub *Ref) bool {
			sub.Tell(msg, sender)
			return false
		})
	}
	ch.all.Each(func(sub *Ref) bool {
		sub.Tell(msg, sender)
		return false
	})
}

// pruneDead lazily drops subscribers whose cell has terminated, on the
// next publish that touches their entry.
func (ch *Channel) pruneDead(set mapset.Set[*Ref]) {
	if set == nil {
		return
	}
	var dead []*Ref
	set.Each(func(sub *Ref) bool {
		if sub.liveCell() == nil {
			dead = append(dead, sub)
		}
		return false
	})
	for _, sub := range dead {
		set.Remove(sub)
	}
}
