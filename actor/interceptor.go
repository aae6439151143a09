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

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/errors"
)

// Interceptors is the set of callbacks invoked around every operation of a
// wrapped actor. Any subset may be set; each call goes through the full
// configured pipeline independently, no per-call state is retained between
// invocations.
//
// Error handlers transform failures, they never swallow them: the error they
// return replaces the original one and is returned to the caller. A handler
// returning nil keeps the original error.
type Interceptors struct {
	// OnRequest receives the method name and arguments before dispatch and
	// returns the argument list used for the real call.
	OnRequest func(ctx context.Context, method string, args []any) ([]any, error)

	// OnResponse receives the successful response; its return value replaces
	// the response seen by the caller.
	OnResponse func(ctx context.Context, method string, args []any, response any) (any, error)

	// OnRequestError receives request-construction failures, classified by
	// error type (see errors.IsArgumentError).
	OnRequestError func(ctx context.Context, method string, args []any, err error) error

	// OnResponseError receives every other failure, transport and endpoint
	// failures included.
	OnResponseError func(ctx context.Context, method string, args []any, err error) error
}

func (x Interceptors) isZero() bool {
	return x.OnRequest == nil &&
		x.OnResponse == nil &&
		x.OnRequestError == nil &&
		x.OnResponseError == nil
}

// Wrap returns an actor whose operations go through the given interceptors.
// When no interceptor is configured the target is returned unchanged, no
// wrapper layer is introduced. Wrapping does not alter the actor's apparent
// shape: method names and the bound agent are those of the target.
func Wrap(target Actor, interceptors Interceptors) Actor {
	if interceptors.isZero() {
		return target
	}
	return &interceptedActor{
		target:       target,
		interceptors: interceptors,
	}
}

// interceptedActor decorates a call surface with the intercept-dispatch-
// transform pipeline.
type interceptedActor struct {
	target       Actor
	interceptors Interceptors
}

// enforce compilation error
var _ Actor = (*interceptedActor)(nil)

// Invoke runs the interceptor pipeline around the target operation.
func (x *interceptedActor) Invoke(ctx context.Context, method string, args ...any) (any, error) {
	response, err := x.dispatch(ctx, method, args)
	if err != nil {
		return nil, x.transformError(ctx, method, args, err)
	}
	return response, nil
}

// MethodNames returns the method names of the wrapped actor.
func (x *interceptedActor) MethodNames() []string {
	return x.target.MethodNames()
}

// Agent returns the agent of the wrapped actor.
func (x *interceptedActor) Agent() agent.Agent {
	return x.target.Agent()
}

func (x *interceptedActor) dispatch(ctx context.Context, method string, args []any) (any, error) {
	if x.interceptors.OnRequest != nil {
		modified, err := x.interceptors.OnRequest(ctx, method, args)
		if err != nil {
			// a failure before dispatch is request-construction class
			return nil, errors.NewArgumentError(method, err)
		}
		args = modified
	}

	// bind to the original target so the call-surface internals stay valid
	response, err := x.target.Invoke(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	if x.interceptors.OnResponse != nil {
		return x.interceptors.OnResponse(ctx, method, args, response)
	}
	return response, nil
}

func (x *interceptedActor) transformError(ctx context.Context, method string, args []any, err error) error {
	var handler func(context.Context, string, []any, error) error
	if errors.IsArgumentError(err) {
		handler = x.interceptors.OnRequestError
	} else {
		handler = x.interceptors.OnResponseError
	}

	if handler == nil {
		return err
	}
	if replacement := handler(ctx, method, args, err); replacement != nil {
		return replacement
	}
	return err
}
