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
	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/log"
)

// GetActor is retained for old call sites only. It logs a warning and
// returns nil.
//
// Deprecated: create a Handle with New and read the call surface through it
// or an Accessor.
func GetActor(canisterID string) Actor {
	log.DefaultLogger.Warnf("GetActor is deprecated and non-functional, create a handle for canister=(%s) instead", canisterID)
	return nil
}

// SetGlobalIdentity is retained for old call sites only. It logs a warning
// and does nothing.
//
// Deprecated: identities attach per handle; use Handle.Authenticate or
// Registry.AuthenticateAll.
func SetGlobalIdentity(identity agent.Identity) {
	sender := agent.AnonymousSender
	if identity != nil {
		sender = identity.Sender()
	}
	log.DefaultLogger.Warnf("SetGlobalIdentity is deprecated and non-functional, ignoring identity sender=(%s)", sender)
}
