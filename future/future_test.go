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

package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	completable := NewCompletable[string]()
	go func() {
		completable.Success("ok")
	}()

	value, err := completable.Future().Await(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestFailure(t *testing.T) {
	completable := NewCompletable[string]()
	failure := errors.New("boom")
	completable.Failure(failure)

	value, err := completable.Future().Await(context.TODO())
	assert.ErrorIs(t, err, failure)
	assert.Empty(t, value)
}

func TestAwaitIsRepeatable(t *testing.T) {
	completable := NewCompletable[int]()
	completable.Success(42)

	for range 3 {
		value, err := completable.Future().Await(context.TODO())
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	}
}

func TestSingleAssignment(t *testing.T) {
	completable := NewCompletable[int]()
	completable.Success(1)
	completable.Success(2)
	completable.Failure(errors.New("ignored"))

	value, err := completable.Future().Await(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestConcurrentAwaitersShareOutcome(t *testing.T) {
	completable := NewCompletable[int]()

	const waiters = 10
	results := make([]int, waiters)
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := range waiters {
		go func() {
			defer wg.Done()
			value, err := completable.Future().Await(context.TODO())
			require.NoError(t, err)
			results[i] = value
		}()
	}

	completable.Success(7)
	wg.Wait()

	for _, value := range results {
		assert.Equal(t, 7, value)
	}
}

func TestAwaitHonorsContext(t *testing.T) {
	completable := NewCompletable[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := completable.Future().Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// a late completion is still observable by fresh waiters
	completable.Success(3)
	value, err := completable.Future().Await(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}
