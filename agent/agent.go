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

// Package agent defines the transport layer contract consumed by the actor
// lifecycle, the identities agents sign requests with, and an HTTP/2
// production implementation.
package agent

import "context"

// Agent turns a method invocation into a signed network request to a remote
// endpoint. Implementations must be safe for concurrent use: a single agent
// is shared by every call going through one actor handle.
type Agent interface {
	// Call performs a state-changing (update) call against the given canister
	// and returns the raw reply payload.
	Call(ctx context.Context, canisterID string, method string, arg []byte) ([]byte, error)

	// Query performs a read-only call against the given canister and returns
	// the raw reply payload.
	Query(ctx context.Context, canisterID string, method string, arg []byte) ([]byte, error)
}

// IdentityReplacer is the optional capability an Agent exposes to swap its
// signing identity in place. Agents without this capability cannot be
// authenticated after construction.
type IdentityReplacer interface {
	// ReplaceIdentity replaces the agent's signing identity. Requests issued
	// after ReplaceIdentity returns are signed with the new identity.
	ReplaceIdentity(identity Identity) error
}

// Factory constructs an Agent from the given configuration. Construction is
// network-capable and may fail for environmental reasons.
type Factory func(ctx context.Context, config *Config) (Agent, error)
