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

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/log"
)

func newRegisteredHandle(t *testing.T, registry *Registry, canisterID string, h *harness) *Handle {
	t.Helper()
	handle, err := New(context.TODO(), canisterID, h.interfaceFactory,
		WithHost("http://127.0.0.1:4943"),
		WithNetwork("local"),
		WithAgentFactory(h.agentFactory),
		WithRegistry(registry),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	t.Cleanup(handle.Dispose)
	return handle
}

func TestRegistryTracksHandles(t *testing.T) {
	registry := NewRegistry()
	assert.Zero(t, registry.Len())

	handle := newRegisteredHandle(t, registry, "aaaaa-aa", newHarness())
	assert.Equal(t, 1, registry.Len())

	found, ok := registry.Get(handle.ID())
	require.True(t, ok)
	assert.Same(t, handle, found)

	handle.Dispose()
	assert.Zero(t, registry.Len())
	_, ok = registry.Get(handle.ID())
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	previous := ResetDefaultRegistry()
	assert.NotSame(t, previous, DefaultRegistry())
	assert.Same(t, DefaultRegistry(), DefaultRegistry())

	h := newHarness()
	handle, err := New(context.TODO(), "aaaaa-aa", h.interfaceFactory,
		WithHost("http://127.0.0.1:4943"),
		WithNetwork("local"),
		WithAgentFactory(h.agentFactory),
		WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	t.Cleanup(handle.Dispose)

	assert.Equal(t, 1, DefaultRegistry().Len())
}

func TestEnsureAllInitialized(t *testing.T) {
	t.Run("With every handle succeeding", func(t *testing.T) {
		registry := NewRegistry()
		for i := 0; i < 3; i++ {
			newRegisteredHandle(t, registry, fmt.Sprintf("canister-%d", i), newHarness())
		}
		assert.NoError(t, registry.EnsureAllInitialized(context.TODO()))
	})

	t.Run("With one handle failing", func(t *testing.T) {
		registry := NewRegistry()
		newRegisteredHandle(t, registry, "canister-0", newHarness())

		failing := newHarness()
		boom := fmt.Errorf("construction exploded")
		failing.failNext(boom)
		newRegisteredHandle(t, registry, "canister-1", failing)

		assert.ErrorIs(t, registry.EnsureAllInitialized(context.TODO()), boom)
	})
}

func TestAuthenticateAll(t *testing.T) {
	t.Run("With every handle succeeding", func(t *testing.T) {
		registry := NewRegistry()
		handles := make([]*Handle, 0, 3)
		for i := 0; i < 3; i++ {
			handles = append(handles, newRegisteredHandle(t, registry, fmt.Sprintf("canister-%d", i), newHarness()))
		}

		identity, err := agent.NewEd25519Identity()
		require.NoError(t, err)
		require.NoError(t, registry.AuthenticateAll(context.TODO(), identity))

		for _, handle := range handles {
			assert.True(t, handle.IsAuthenticated())
		}
	})

	t.Run("With a partial failure", func(t *testing.T) {
		registry := NewRegistry()
		healthy1 := newRegisteredHandle(t, registry, "canister-0", newHarness())
		healthy2 := newRegisteredHandle(t, registry, "canister-1", newHarness())

		broken := newHarness()
		broken.transport = frozenAgent{}
		failing := newRegisteredHandle(t, registry, "canister-2", broken)

		identity, err := agent.NewEd25519Identity()
		require.NoError(t, err)

		err = registry.AuthenticateAll(context.TODO(), identity)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to authenticate 1 actor(s)")
		assert.Contains(t, err.Error(), "canister-2")

		// the failure never rolls back the handles that succeeded
		assert.True(t, healthy1.IsAuthenticated())
		assert.True(t, healthy2.IsAuthenticated())
		assert.False(t, failing.IsAuthenticated())
	})

	t.Run("With a canister filter", func(t *testing.T) {
		registry := NewRegistry()
		left := newRegisteredHandle(t, registry, "canister-left", newHarness())
		right := newRegisteredHandle(t, registry, "canister-right", newHarness())

		identity, err := agent.NewEd25519Identity()
		require.NoError(t, err)
		require.NoError(t, registry.AuthenticateAll(context.TODO(), identity, "canister-right"))

		assert.False(t, left.IsAuthenticated())
		assert.True(t, right.IsAuthenticated())
	})
}

func TestAuthenticateCanister(t *testing.T) {
	registry := NewRegistry()
	target := newRegisteredHandle(t, registry, "canister-target", newHarness())
	other := newRegisteredHandle(t, registry, "canister-other", newHarness())

	identity, err := agent.NewEd25519Identity()
	require.NoError(t, err)
	require.NoError(t, registry.AuthenticateCanister(context.TODO(), "canister-target", identity))

	assert.True(t, target.IsAuthenticated())
	assert.False(t, other.IsAuthenticated())
}

func TestResetAll(t *testing.T) {
	registry := NewRegistry()
	harnesses := []*harness{newHarness(), newHarness()}
	handles := []*Handle{
		newRegisteredHandle(t, registry, "canister-0", harnesses[0]),
		newRegisteredHandle(t, registry, "canister-1", harnesses[1]),
	}

	require.NoError(t, registry.EnsureAllInitialized(context.TODO()))
	registry.ResetAll(context.TODO())
	require.NoError(t, registry.EnsureAllInitialized(context.TODO()))

	for i, handle := range handles {
		assert.False(t, handle.IsAuthenticated())
		assert.Equal(t, 2, harnesses[i].constructionCount())
	}
}
