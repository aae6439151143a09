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

package eventstream

import (
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscriber receives the messages published on the topics it is subscribed
// to. Subscribers are created by a Stream via AddSubscriber.
//
// Messages are staged in a bounded ring buffer and delivered in order on the
// channel returned by Iterator. When the buffer is full new messages are
// dropped rather than blocking publishers.
type Subscriber struct {
	id string

	topicsMu sync.Mutex
	topics   map[string]bool

	buffer *gods.RingBuffer
	out    chan *Message

	active    *atomic.Bool
	stop      chan struct{}
	closeOnce sync.Once
}

func newSubscriber(capacity uint64) *Subscriber {
	s := &Subscriber{
		id:     uuid.NewString(),
		topics: make(map[string]bool),
		buffer: gods.NewRingBuffer(capacity),
		out:    make(chan *Message),
		active: atomic.NewBool(true),
		stop:   make(chan struct{}),
	}
	go s.pump()
	return s
}

// ID returns the subscriber unique identifier.
func (x *Subscriber) ID() string {
	return x.id
}

// Active reports whether the subscriber still receives messages.
func (x *Subscriber) Active() bool {
	return x.active.Load()
}

// Topics returns the topics the subscriber is subscribed to.
func (x *Subscriber) Topics() []string {
	x.topicsMu.Lock()
	defer x.topicsMu.Unlock()

	topics := make([]string, 0, len(x.topics))
	for topic := range x.topics {
		topics = append(topics, topic)
	}
	return topics
}

// Iterator returns the channel messages are delivered on. The channel is
// closed when the subscriber shuts down.
func (x *Subscriber) Iterator() <-chan *Message {
	return x.out
}

// Shutdown deactivates the subscriber, unblocks any pending delivery and
// closes the iterator channel. Shutdown is idempotent.
func (x *Subscriber) Shutdown() {
	x.closeOnce.Do(func() {
		x.active.Store(false)
		close(x.stop)
		x.buffer.Dispose()
	})
}

// pump drains the staging buffer and delivers messages in order until the
// subscriber shuts down.
func (x *Subscriber) pump() {
	defer close(x.out)
	for {
		item, err := x.buffer.Get()
		if err != nil {
			// buffer disposed
			return
		}
		msg, ok := item.(*Message)
		if !ok {
			continue
		}
		select {
		case x.out <- msg:
		case <-x.stop:
			return
		}
	}
}

func (x *Subscriber) signal(message *Message) {
	if !x.active.Load() {
		return
	}
	// drop the message instead of blocking the publisher when full
	_, _ = x.buffer.Offer(message)
}

func (x *Subscriber) subscribe(topic string) {
	x.topicsMu.Lock()
	x.topics[topic] = true
	x.topicsMu.Unlock()
}

func (x *Subscriber) unsubscribe(topic string) {
	x.topicsMu.Lock()
	delete(x.topics, topic)
	x.topicsMu.Unlock()
}
