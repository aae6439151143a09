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

package actor

import (
	"context"
	"sync"

	"github.com/tochemey/icactor/agent"
)

// Accessor is the read-and-react view over a single handle: current-state
// reads, change subscriptions, and delegates for the handle's imperative
// operations. Multiple accessors over the same handle observe the same
// state.
type Accessor struct {
	handle *Handle
}

// NewAccessor creates an accessor over the given handle.
func NewAccessor(handle *Handle) *Accessor {
	return &Accessor{handle: handle}
}

// Handle returns the underlying handle.
func (x *Accessor) Handle() *Handle {
	return x.handle
}

// Snapshot returns the handle's current state.
func (x *Accessor) Snapshot() Snapshot {
	return x.handle.Snapshot()
}

// Actor returns the current exposed call surface.
func (x *Accessor) Actor() Actor {
	return x.handle.Actor()
}

// Status returns the anonymous-creation status.
func (x *Accessor) Status() Status {
	return x.handle.Status()
}

// IsInitializing reports whether the anonymous actor is under construction.
func (x *Accessor) IsInitializing() bool {
	return x.handle.Status() == StatusInitializing
}

// IsSuccess reports whether the anonymous actor exists.
func (x *Accessor) IsSuccess() bool {
	return x.handle.Status() == StatusSuccess
}

// IsError reports whether the handle is in the error state.
func (x *Accessor) IsError() bool {
	return x.handle.Status() == StatusError
}

// IsAuthenticated reports whether an identity is attached.
func (x *Accessor) IsAuthenticated() bool {
	return x.handle.IsAuthenticated()
}

// LastError returns the last recorded failure.
func (x *Accessor) LastError() error {
	return x.handle.LastError()
}

// Subscribe returns a channel carrying a snapshot for every state change of
// the handle, starting with the state at subscription time, and a cancel
// function releasing the subscription. The channel is closed on cancel and
// when the handle is disposed.
func (x *Accessor) Subscribe() (<-chan Snapshot, func()) {
	subscriber := x.handle.Subscribe()
	out := make(chan Snapshot, 1)
	done := make(chan struct{})

	// the initial snapshot fills the channel buffer before the pump starts
	out <- x.handle.Snapshot()

	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case message, ok := <-subscriber.Iterator():
				if !ok {
					return
				}
				snapshot, valid := message.Payload.(Snapshot)
				if !valid {
					continue
				}
				select {
				case out <- snapshot:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			x.handle.Unsubscribe(subscriber)
		})
	}
	return out, cancel
}

// EnsureInitialized delegates to the handle.
func (x *Accessor) EnsureInitialized(ctx context.Context) (Actor, error) {
	return x.handle.EnsureInitialized(ctx)
}

// Authenticate delegates to the handle.
func (x *Accessor) Authenticate(ctx context.Context, identity agent.Identity) error {
	return x.handle.Authenticate(ctx, identity)
}

// SetInterceptors delegates to the handle.
func (x *Accessor) SetInterceptors(interceptors Interceptors) error {
	return x.handle.SetInterceptors(interceptors)
}

// Reset delegates to the handle.
func (x *Accessor) Reset(ctx context.Context) {
	x.handle.Reset(ctx)
}

// ClearError delegates to the handle.
func (x *Accessor) ClearError() {
	x.handle.ClearError()
}
