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

// Package future provides a single-assignment future and its writable
// counterpart. A Future is completed at most once and every Await observes
// the same outcome, which makes it suitable to represent one-shot lifecycle
// signals shared by many concurrent waiters.
package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point, or an error if that value could not
// be made available.
//
// A Future is read-only. It is completed exactly once through the
// Completable that created it; subsequent completions are ignored.
type Future[T any] interface {
	// Await blocks until the Future is completed or the context is canceled
	// and returns either the value or an error. Await can be called any
	// number of times from any number of goroutines; every caller observes
	// the same outcome once the Future is completed.
	Await(context.Context) (T, error)

	// complete completes the Future with either a value or an error.
	// It is used by [Completable] internally.
	complete(T, error)
}

// Completable is a writable, single-assignment container which completes
// a Future.
type Completable[T any] interface {
	// Success completes the underlying Future with a value.
	Success(T)

	// Failure fails the underlying Future with an error.
	Failure(error)

	// Future returns the underlying Future.
	Future() Future[T]
}

// NewCompletable creates a Completable with a fresh, uncompleted Future.
func NewCompletable[T any]() Completable[T] {
	return &completer[T]{
		future: newFuture[T](),
	}
}

// future implements the Future interface.
type future[T any] struct {
	completeOnce sync.Once
	done         chan struct{}
	value        T
	err          error
}

// enforce compilation error
var _ Future[int] = (*future[int])(nil)

func newFuture[T any]() *future[T] {
	return &future[T]{
		done: make(chan struct{}),
	}
}

// Await blocks until the Future is completed or context is canceled and
// returns either a result or an error.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// complete completes the Future with either a value or an error.
func (x *future[T]) complete(value T, err error) {
	x.completeOnce.Do(func() {
		x.value = value
		x.err = err
		close(x.done)
	})
}

// completer implements the Completable interface.
type completer[T any] struct {
	once   sync.Once
	future *future[T]
}

// enforce compilation error
var _ Completable[int] = (*completer[int])(nil)

// Success completes the underlying Future with a given value.
func (x *completer[T]) Success(value T) {
	x.once.Do(func() {
		x.future.complete(value, nil)
	})
}

// Failure fails the underlying Future with a given error.
func (x *completer[T]) Failure(err error) {
	x.once.Do(func() {
		var zero T
		x.future.complete(zero, err)
	})
}

// Future returns the underlying Future.
func (x *completer[T]) Future() Future[T] {
	return x.future
}
