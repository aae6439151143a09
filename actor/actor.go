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

// Package actor manages the lifecycle of call-surface actors bound to remote
// canisters: anonymous initialization, identity attachment, call
// interception, and process-wide coordination across every handle created in
// the process.
package actor

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/errors"
)

// Actor is the client-side call surface of a remote canister: it supports
// invoking named operations with argument lists, asynchronously. One
// implementation exists per remote service shape; interceptor wrappers
// implement the same interface.
type Actor interface {
	// Invoke dispatches the named operation with the given arguments and
	// returns the decoded reply.
	Invoke(ctx context.Context, method string, args ...any) (any, error)

	// MethodNames returns the names of the operations the actor exposes.
	MethodNames() []string

	// Agent returns the transport agent the actor is bound to, nil when the
	// actor carries none.
	Agent() agent.Agent
}

// MethodKind tells how an operation reaches the endpoint.
type MethodKind int

const (
	// Update is a state-changing call.
	Update MethodKind = iota
	// Query is a read-only call.
	Query
)

// InterfaceDescriptor is the distilled interface description of a remote
// canister: its operation names and their kinds.
type InterfaceDescriptor struct {
	Methods map[string]MethodKind
}

// ActorConfig is handed to an InterfaceFactory when a call surface is built.
type ActorConfig struct {
	// Agent is the transport agent the actor must bind to.
	Agent agent.Agent
	// CanisterID is the remote service identifier.
	CanisterID string
	// Extra is the opaque call-surface options bag. The lifecycle never
	// interprets it.
	Extra map[string]any
}

// InterfaceFactory builds a call-surface actor from the given configuration.
// It is synchronous and may fail.
type InterfaceFactory func(config ActorConfig) (Actor, error)

// NewInterfaceFactory returns the default InterfaceFactory: actors built by
// it encode arguments with CBOR and dispatch through the bound agent,
// routing each operation as an update or a query per the descriptor.
func NewInterfaceFactory(descriptor *InterfaceDescriptor) InterfaceFactory {
	return func(config ActorConfig) (Actor, error) {
		if descriptor == nil || len(descriptor.Methods) == 0 {
			return nil, errors.ErrInterfaceFactoryRequired
		}
		if config.Agent == nil {
			return nil, errors.ErrAgentNotFound
		}
		if config.CanisterID == "" {
			return nil, errors.ErrCanisterIDRequired
		}

		methods := make(map[string]MethodKind, len(descriptor.Methods))
		for name, kind := range descriptor.Methods {
			methods[name] = kind
		}

		return &remoteActor{
			agent:      config.Agent,
			canisterID: config.CanisterID,
			methods:    methods,
		}, nil
	}
}

// remoteActor is the default call-surface implementation.
type remoteActor struct {
	agent      agent.Agent
	canisterID string
	methods    map[string]MethodKind
}

// enforce compilation error
var _ Actor = (*remoteActor)(nil)

// Invoke dispatches the named operation through the bound agent.
//
// An unknown method or an argument encoding failure is a request-construction
// failure and surfaces as an ArgumentError; transport and endpoint failures
// surface as is.
func (x *remoteActor) Invoke(ctx context.Context, method string, args ...any) (any, error) {
	kind, ok := x.methods[method]
	if !ok {
		return nil, errors.NewArgumentError(method, fmt.Errorf("method not exposed by canister=(%s)", x.canisterID))
	}

	arg, err := cbor.Marshal(args)
	if err != nil {
		return nil, errors.NewArgumentError(method, err)
	}

	var raw []byte
	switch kind {
	case Query:
		raw, err = x.agent.Query(ctx, x.canisterID, method, arg)
	default:
		raw, err = x.agent.Call(ctx, x.canisterID, method, arg)
	}
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var reply any
	if err := cbor.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode reply of method=(%s): %w", method, err)
	}
	return reply, nil
}

// MethodNames returns the names of the operations the actor exposes.
func (x *remoteActor) MethodNames() []string {
	names := make([]string, 0, len(x.methods))
	for name := range x.methods {
		names = append(names, name)
	}
	return names
}

// Agent returns the transport agent the actor is bound to.
func (x *remoteActor) Agent() agent.Agent {
	return x.agent
}
