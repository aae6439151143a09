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

// Package errors defines the sentinel errors shared by the actor lifecycle,
// the interceptor layer and the agent implementations.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrActorNotFound is returned when an operation requires a constructed
	// call-surface actor and the handle does not hold one.
	ErrActorNotFound = errors.New("actor not found")

	// ErrAgentNotFound is returned when the actor's bound agent cannot be
	// retrieved, which makes authentication impossible.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrIdentityReplacementUnsupported is returned when the actor's agent does
	// not expose the identity replacement capability.
	ErrIdentityReplacementUnsupported = errors.New("agent does not support identity replacement")

	// ErrInitializationFailed is returned by EnsureInitialized when the handle is
	// in the error state and no more specific failure was recorded.
	ErrInitializationFailed = errors.New("actor initialization failed")

	// ErrIdentityRequired is returned when a nil identity is supplied to
	// an authentication call.
	ErrIdentityRequired = errors.New("identity is required")

	// ErrCanisterIDRequired is returned when a handle is created without a
	// canister identifier.
	ErrCanisterIDRequired = errors.New("canister identifier is required")

	// ErrInterfaceFactoryRequired is returned when a handle is created without
	// an interface factory.
	ErrInterfaceFactoryRequired = errors.New("interface factory is required")

	// ErrHandleDisposed is returned when an operation is attempted on a handle
	// that has been disposed.
	ErrHandleDisposed = errors.New("actor handle has been disposed")

	// ErrHandleReset is returned when a reset supersedes an operation that was
	// still in flight. The operation's effects do not apply to the new
	// lifetime segment.
	ErrHandleReset = errors.New("actor handle was reset mid-operation")

	// ErrHostRequired is returned when an agent is configured without a host.
	ErrHostRequired = errors.New("host is required")
)

// ArgumentError marks a failure raised while constructing a request, before
// the call reaches the transport. The interceptor layer routes errors of this
// type to OnRequestError; every other failure is treated as a response error.
//
// The classification is by error type, not by the phase that actually failed.
// A transport that raises an ArgumentError mid-call will still be routed to
// OnRequestError.
type ArgumentError struct {
	// Method is the name of the invoked operation.
	Method string
	// Err is the underlying cause.
	Err error
}

// NewArgumentError creates an ArgumentError for the given method.
func NewArgumentError(method string, err error) *ArgumentError {
	return &ArgumentError{Method: method, Err: err}
}

func (x *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument for method=(%s): %v", x.Method, x.Err)
}

func (x *ArgumentError) Unwrap() error {
	return x.Err
}

// IsArgumentError reports whether the given error is request-construction
// class, i.e. whether an ArgumentError appears anywhere in its chain.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}
