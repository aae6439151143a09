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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receiveOne(t *testing.T, sub *Subscriber) *Message {
	t.Helper()
	select {
	case msg := <-sub.Iterator():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

func TestPubSub(t *testing.T) {
	stream := New()
	defer stream.Close()

	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "states")
	require.Equal(t, 1, stream.SubscribersCount("states"))

	stream.Publish("states", "hello")

	msg := receiveOne(t, sub)
	assert.Equal(t, "states", msg.Topic)
	assert.Equal(t, "hello", msg.Payload)
}

func TestOrderedDelivery(t *testing.T) {
	stream := New()
	defer stream.Close()

	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "states")

	for i := range 5 {
		stream.Publish("states", i)
	}

	for i := range 5 {
		msg := receiveOne(t, sub)
		assert.Equal(t, i, msg.Payload)
	}
}

func TestMultipleSubscribers(t *testing.T) {
	stream := New()
	defer stream.Close()

	first := stream.AddSubscriber()
	second := stream.AddSubscriber()
	stream.Subscribe(first, "states")
	stream.Subscribe(second, "states")

	stream.Publish("states", "fanout")

	assert.Equal(t, "fanout", receiveOne(t, first).Payload)
	assert.Equal(t, "fanout", receiveOne(t, second).Payload)
}

func TestUnsubscribe(t *testing.T) {
	stream := New()
	defer stream.Close()

	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "states")
	stream.Unsubscribe(sub, "states")
	require.Zero(t, stream.SubscribersCount("states"))

	stream.Publish("states", "lost")

	select {
	case msg := <-sub.Iterator():
		t.Fatalf("unexpected message: %v", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcast(t *testing.T) {
	stream := New()
	defer stream.Close()

	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "a")
	stream.Subscribe(sub, "b")
	assert.ElementsMatch(t, []string{"a", "b"}, sub.Topics())

	stream.Broadcast("payload", []string{"a", "b"})

	topics := []string{receiveOne(t, sub).Topic, receiveOne(t, sub).Topic}
	assert.ElementsMatch(t, []string{"a", "b"}, topics)
}

func TestRemoveSubscriber(t *testing.T) {
	stream := New()
	defer stream.Close()

	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "states")
	stream.RemoveSubscriber(sub)

	assert.False(t, sub.Active())
	assert.Zero(t, stream.SubscribersCount("states"))

	// iterator channel is closed after shutdown
	_, open := <-sub.Iterator()
	assert.False(t, open)
}

func TestCloseShutsDownSubscribers(t *testing.T) {
	stream := New()
	sub := stream.AddSubscriber()
	stream.Subscribe(sub, "states")

	stream.Close()
	assert.False(t, sub.Active())
}
