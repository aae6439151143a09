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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/internal/syncmap"
)

// Registry tracks every live handle so process-wide operations can reach all
// of them at once: waiting for initialization everywhere, attaching an
// identity everywhere, resetting everywhere. Handles register themselves on
// construction and deregister on Dispose.
type Registry struct {
	handles *syncmap.SyncMap[int64, *Handle]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handles: syncmap.New[int64, *Handle](),
	}
}

var (
	defaultRegistryMu sync.Mutex
	defaultRegistry   *Registry
)

// DefaultRegistry returns the process-wide registry handles join when no
// registry option is given.
func DefaultRegistry() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// ResetDefaultRegistry replaces the process-wide registry with a fresh one
// and returns the previous registry. Meant for tests.
func ResetDefaultRegistry() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	previous := defaultRegistry
	defaultRegistry = NewRegistry()
	return previous
}

func (x *Registry) register(handle *Handle) {
	x.handles.Set(handle.ID(), handle)
}

func (x *Registry) deregister(id int64) {
	x.handles.Delete(id)
}

// Get returns the handle with the given identifier.
func (x *Registry) Get(id int64) (*Handle, bool) {
	return x.handles.Get(id)
}

// Handles returns every registered handle.
func (x *Registry) Handles() []*Handle {
	return x.handles.Values()
}

// Len returns the number of registered handles.
func (x *Registry) Len() int {
	return x.handles.Len()
}

// EnsureAllInitialized waits until every registered handle has completed its
// anonymous initialization. The first failure cancels the wait and is
// returned.
func (x *Registry) EnsureAllInitialized(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, handle := range x.Handles() {
		handle := handle
		eg.Go(func() error {
			_, err := handle.EnsureInitialized(ctx)
			return err
		})
	}
	return eg.Wait()
}

// AuthenticateAll attaches the given identity to every registered handle,
// concurrently and without short-circuiting: a failing handle never prevents
// the others from authenticating. When some handles fail the combined
// failure is returned; the rest are authenticated regardless.
//
// When canister identifiers are given only the handles bound to one of them
// are touched; with none given every handle is.
func (x *Registry) AuthenticateAll(ctx context.Context, identity agent.Identity, canisterIDs ...string) error {
	filter := mapset.NewSet(canisterIDs...)

	var (
		mu       sync.Mutex
		failures []error
		wg       sync.WaitGroup
	)

	for _, handle := range x.Handles() {
		if filter.Cardinality() > 0 && !filter.Contains(handle.CanisterID()) {
			continue
		}

		wg.Add(1)
		go func(handle *Handle) {
			defer wg.Done()
			if err := handle.Authenticate(ctx, identity); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("canister=(%s): %w", handle.CanisterID(), err))
				mu.Unlock()
			}
		}(handle)
	}
	wg.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("failed to authenticate %d actor(s): %w", len(failures), multierr.Combine(failures...))
	}
	return nil
}

// AuthenticateCanister attaches the given identity to every handle bound to
// the given canister.
func (x *Registry) AuthenticateCanister(ctx context.Context, canisterID string, identity agent.Identity) error {
	return x.AuthenticateAll(ctx, identity, canisterID)
}

// ResetAll resets every registered handle.
func (x *Registry) ResetAll(ctx context.Context) {
	for _, handle := range x.Handles() {
		handle.Reset(ctx)
	}
}
