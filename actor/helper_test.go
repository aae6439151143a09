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
	"testing"

	"go.uber.org/goleak"

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/errors"
	"github.com/tochemey/icactor/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAgent is an in-memory transport that supports identity replacement.
// When the rendezvous channels are set, ReplaceIdentity announces itself on
// replaceEntered and then waits on replaceRelease, letting a test order the
// replacement against other handle operations.
type fakeAgent struct {
	mu             sync.Mutex
	identity       agent.Identity
	replaceErr     error
	calls          int
	replaceEntered chan struct{}
	replaceRelease chan struct{}
}

var (
	_ agent.Agent            = (*fakeAgent)(nil)
	_ agent.IdentityReplacer = (*fakeAgent)(nil)
)

func newFakeAgent() *fakeAgent {
	return &fakeAgent{identity: agent.Anonymous()}
}

func (x *fakeAgent) Call(_ context.Context, _, _ string, arg []byte) ([]byte, error) {
	x.mu.Lock()
	x.calls++
	x.mu.Unlock()
	return arg, nil
}

func (x *fakeAgent) Query(_ context.Context, _, _ string, arg []byte) ([]byte, error) {
	x.mu.Lock()
	x.calls++
	x.mu.Unlock()
	return arg, nil
}

func (x *fakeAgent) ReplaceIdentity(identity agent.Identity) error {
	if x.replaceEntered != nil {
		x.replaceEntered <- struct{}{}
		<-x.replaceRelease
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if identity == nil {
		return errors.ErrIdentityRequired
	}
	if x.replaceErr != nil {
		return x.replaceErr
	}
	x.identity = identity
	return nil
}

func (x *fakeAgent) Identity() agent.Identity {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.identity
}

// frozenAgent is a transport without the identity replacement capability.
type frozenAgent struct{}

var _ agent.Agent = (*frozenAgent)(nil)

func (frozenAgent) Call(_ context.Context, _, _ string, arg []byte) ([]byte, error) {
	return arg, nil
}

func (frozenAgent) Query(_ context.Context, _, _ string, arg []byte) ([]byte, error) {
	return arg, nil
}

// fakeActor is an in-memory call surface whose behavior is set per method.
type fakeActor struct {
	agent   agent.Agent
	methods map[string]func(args []any) (any, error)
}

var _ Actor = (*fakeActor)(nil)

func newFakeActor(boundAgent agent.Agent) *fakeActor {
	return &fakeActor{
		agent: boundAgent,
		methods: map[string]func(args []any) (any, error){
			"echo": func(args []any) (any, error) {
				if len(args) == 0 {
					return nil, nil
				}
				return args[0], nil
			},
			"greet": func([]any) (any, error) {
				return "hi", nil
			},
		},
	}
}

func (x *fakeActor) Invoke(_ context.Context, method string, args ...any) (any, error) {
	fn, ok := x.methods[method]
	if !ok {
		return nil, errors.NewArgumentError(method, fmt.Errorf("method not exposed"))
	}
	return fn(args)
}

func (x *fakeActor) MethodNames() []string {
	names := make([]string, 0, len(x.methods))
	for name := range x.methods {
		names = append(names, name)
	}
	return names
}

func (x *fakeActor) Agent() agent.Agent {
	return x.agent
}

// harness wires a controllable agent factory and interface factory into a
// handle under test.
type harness struct {
	mu            sync.Mutex
	transport     agent.Agent
	constructions int
	failWith      error
	blockFirst    chan struct{}
}

func newHarness() *harness {
	return &harness{transport: newFakeAgent()}
}

func (x *harness) agentFactory(_ context.Context, _ *agent.Config) (agent.Agent, error) {
	return x.transport, nil
}

func (x *harness) interfaceFactory(config ActorConfig) (Actor, error) {
	x.mu.Lock()
	x.constructions++
	attempt := x.constructions
	failWith := x.failWith
	gate := x.blockFirst
	x.mu.Unlock()

	if attempt == 1 && gate != nil {
		<-gate
	}
	if failWith != nil {
		return nil, failWith
	}
	return newFakeActor(config.Agent), nil
}

func (x *harness) constructionCount() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.constructions
}

func (x *harness) failNext(err error) {
	x.mu.Lock()
	x.failWith = err
	x.mu.Unlock()
}

func newTestHandle(t *testing.T, h *harness, opts ...Option) *Handle {
	t.Helper()
	registry := NewRegistry()
	options := append([]Option{
		WithHost("http://127.0.0.1:4943"),
		WithNetwork("local"),
		WithAgentFactory(h.agentFactory),
		WithRegistry(registry),
		WithLogger(log.DiscardLogger),
	}, opts...)

	handle, err := New(context.TODO(), "ryjl3-tyaaa-aaaaa-aaaba-cai", h.interfaceFactory, options...)
	if err != nil {
		t.Fatalf("failed to create handle: %v", err)
	}
	t.Cleanup(handle.Dispose)
	return handle
}
