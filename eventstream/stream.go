// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package eventstream provides a lightweight topic-based publish/subscribe
// broker. It carries the actor handle state snapshots consumed by reactive
// accessors, but is payload-agnostic.
package eventstream

import "sync"

// defaultBufferCapacity is the per-subscriber staging buffer size.
const defaultBufferCapacity uint64 = 256

// Stream defines the event stream broker.
type Stream struct {
	subsMu      sync.RWMutex
	subscribers map[string]*Subscriber

	topicsMu sync.RWMutex
	topics   map[string]map[string]*Subscriber
}

// New creates an instance of Stream.
func New() *Stream {
	return &Stream{
		subscribers: make(map[string]*Subscriber),
		topics:      make(map[string]map[string]*Subscriber),
	}
}

// AddSubscriber adds a subscriber to the stream. The subscriber receives no
// messages until it is subscribed to at least one topic.
func (x *Stream) AddSubscriber() *Subscriber {
	x.subsMu.Lock()
	defer x.subsMu.Unlock()
	sub := newSubscriber(defaultBufferCapacity)
	x.subscribers[sub.ID()] = sub
	return sub
}

// RemoveSubscriber shuts the subscriber down and removes it from every topic.
func (x *Stream) RemoveSubscriber(sub *Subscriber) {
	if sub == nil {
		return
	}

	x.topicsMu.Lock()
	for _, topic := range sub.Topics() {
		if subs, ok := x.topics[topic]; ok {
			delete(subs, sub.ID())
		}
	}
	x.topicsMu.Unlock()

	x.subsMu.Lock()
	delete(x.subscribers, sub.ID())
	x.subsMu.Unlock()

	sub.Shutdown()
}

// Subscribe subscribes a subscriber to a topic.
func (x *Stream) Subscribe(sub *Subscriber, topic string) {
	if sub == nil || !sub.Active() {
		return
	}

	x.topicsMu.Lock()
	if _, ok := x.topics[topic]; !ok {
		x.topics[topic] = make(map[string]*Subscriber)
	}
	x.topics[topic][sub.ID()] = sub
	x.topicsMu.Unlock()

	sub.subscribe(topic)
}

// Unsubscribe removes a subscriber from a topic.
func (x *Stream) Unsubscribe(sub *Subscriber, topic string) {
	if sub == nil {
		return
	}

	x.topicsMu.Lock()
	if subs, ok := x.topics[topic]; ok {
		delete(subs, sub.ID())
	}
	x.topicsMu.Unlock()

	sub.unsubscribe(topic)
}

// SubscribersCount returns the number of subscribers for a given topic.
func (x *Stream) SubscribersCount(topic string) int {
	x.topicsMu.RLock()
	defer x.topicsMu.RUnlock()
	return len(x.topics[topic])
}

// Publish publishes a message to a topic.
func (x *Stream) Publish(topic string, payload any) {
	x.topicsMu.RLock()
	subs := make([]*Subscriber, 0, len(x.topics[topic]))
	for _, sub := range x.topics[topic] {
		subs = append(subs, sub)
	}
	x.topicsMu.RUnlock()

	message := &Message{Topic: topic, Payload: payload}
	for _, sub := range subs {
		sub.signal(message)
	}
}

// Broadcast notifies all subscribers of the given topics of a new message.
func (x *Stream) Broadcast(payload any, topics []string) {
	for _, topic := range topics {
		x.Publish(topic, payload)
	}
}

// Close shuts down every subscriber and empties the stream.
func (x *Stream) Close() {
	x.subsMu.Lock()
	subscribers := make([]*Subscriber, 0, len(x.subscribers))
	for _, sub := range x.subscribers {
		subscribers = append(subscribers, sub)
	}
	x.subscribers = make(map[string]*Subscriber)
	x.subsMu.Unlock()

	x.topicsMu.Lock()
	x.topics = make(map[string]map[string]*Subscriber)
	x.topicsMu.Unlock()

	for _, sub := range subscribers {
		sub.Shutdown()
	}
}
