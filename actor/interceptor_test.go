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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/icactor/errors"
)

func TestWrapWithoutInterceptorsReturnsTarget(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	wrapped := Wrap(target, Interceptors{})
	assert.Same(t, target, wrapped)
}

func TestWrapKeepsActorShape(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	wrapped := Wrap(target, Interceptors{
		OnRequest: func(_ context.Context, _ string, args []any) ([]any, error) {
			return args, nil
		},
	})

	assert.NotSame(t, target, wrapped)
	assert.ElementsMatch(t, target.MethodNames(), wrapped.MethodNames())
	assert.Same(t, target.Agent(), wrapped.Agent())
}

func TestOnRequestRewritesArguments(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	wrapped := Wrap(target, Interceptors{
		OnRequest: func(_ context.Context, _ string, args []any) ([]any, error) {
			if value, ok := args[0].(int); ok {
				return []any{value * 2}, nil
			}
			return args, nil
		},
	})

	response, err := wrapped.Invoke(context.TODO(), "echo", 5)
	require.NoError(t, err)
	assert.Equal(t, 10, response)
}

func TestOnRequestFailureIsArgumentClass(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	seen := make([]error, 0, 1)
	wrapped := Wrap(target, Interceptors{
		OnRequest: func(_ context.Context, _ string, _ []any) ([]any, error) {
			return nil, fmt.Errorf("bad argument")
		},
		OnRequestError: func(_ context.Context, _ string, _ []any, err error) error {
			seen = append(seen, err)
			return err
		},
	})

	_, err := wrapped.Invoke(context.TODO(), "echo", 5)
	require.Error(t, err)
	assert.True(t, errors.IsArgumentError(err))
	require.Len(t, seen, 1)
	assert.True(t, errors.IsArgumentError(seen[0]))
}

func TestOnResponseTransformsResult(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	wrapped := Wrap(target, Interceptors{
		OnResponse: func(_ context.Context, _ string, _ []any, response any) (any, error) {
			if value, ok := response.(string); ok {
				return value + "!", nil
			}
			return response, nil
		},
	})

	response, err := wrapped.Invoke(context.TODO(), "greet")
	require.NoError(t, err)
	assert.Equal(t, "hi!", response)
}

func TestOnResponseErrorReplacesError(t *testing.T) {
	boom := fmt.Errorf("endpoint exploded")
	replacement := fmt.Errorf("friendlier failure")

	target := newFakeActor(newFakeAgent())
	target.methods["always_fails"] = func([]any) (any, error) {
		return nil, boom
	}

	wrapped := Wrap(target, Interceptors{
		OnResponseError: func(_ context.Context, _ string, _ []any, err error) error {
			assert.ErrorIs(t, err, boom)
			return replacement
		},
	})

	_, err := wrapped.Invoke(context.TODO(), "always_fails")
	assert.ErrorIs(t, err, replacement)
	assert.NotErrorIs(t, err, boom)
}

func TestErrorHandlerNeverSwallows(t *testing.T) {
	boom := fmt.Errorf("endpoint exploded")
	target := newFakeActor(newFakeAgent())
	target.methods["always_fails"] = func([]any) (any, error) {
		return nil, boom
	}

	wrapped := Wrap(target, Interceptors{
		OnResponseError: func(_ context.Context, _ string, _ []any, _ error) error {
			// a nil return keeps the original failure
			return nil
		},
	})

	_, err := wrapped.Invoke(context.TODO(), "always_fails")
	assert.ErrorIs(t, err, boom)
}

func TestErrorRoutingByClass(t *testing.T) {
	target := newFakeActor(newFakeAgent())
	target.methods["always_fails"] = func([]any) (any, error) {
		return nil, fmt.Errorf("endpoint exploded")
	}

	var requestErrors, responseErrors int
	wrapped := Wrap(target, Interceptors{
		OnRequestError: func(_ context.Context, _ string, _ []any, err error) error {
			requestErrors++
			return err
		},
		OnResponseError: func(_ context.Context, _ string, _ []any, err error) error {
			responseErrors++
			return err
		},
	})

	// an unknown method is a request-construction failure
	_, err := wrapped.Invoke(context.TODO(), "unknown")
	require.Error(t, err)
	// a failing known method is a response failure
	_, err = wrapped.Invoke(context.TODO(), "always_fails")
	require.Error(t, err)

	assert.Equal(t, 1, requestErrors)
	assert.Equal(t, 1, responseErrors)
}
