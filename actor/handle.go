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
	"sync"

	"go.uber.org/atomic"

	"github.com/tochemey/icactor/agent"
	"github.com/tochemey/icactor/errors"
	"github.com/tochemey/icactor/eventstream"
	"github.com/tochemey/icactor/future"
	"github.com/tochemey/icactor/internal/errorschain"
	"github.com/tochemey/icactor/log"
)

// stateTopic is the event stream topic handle snapshots are published on.
const stateTopic = "actor.states"

// handleSequence hands out process-unique handle identifiers.
var handleSequence = atomic.NewInt64(0)

// Handle owns a single logical actor bound to one canister: it creates the
// actor anonymously on construction, tracks initialization and
// authentication status, replaces the identity without rebuilding the actor,
// attaches interceptors, and supports a full reset-and-reinitialize cycle.
//
// A Handle is safe for concurrent use. Exactly one initialization sequence
// runs per lifetime segment: concurrent EnsureInitialized callers share the
// same outcome. Each initialization attempt carries a generation tag;
// completions of superseded attempts (a Reset raced an in-flight
// initialization) are discarded instead of resolving stale state.
type Handle struct {
	id         int64
	canisterID string

	interfaceFactory InterfaceFactory
	agentFactory     agent.Factory
	host             string
	network          string
	agentOptions     []agent.Option
	extra            map[string]any
	logger           log.Logger
	registry         *Registry
	stream           *eventstream.Stream

	mu            sync.Mutex
	status        Status
	authenticated bool
	lastErr       error
	raw           Actor
	signal        future.Completable[Actor]
	generation    *atomic.Int64
	disposed      bool
}

// New creates a Handle bound to the given canister and registers it with the
// configured registry (the process default unless overridden).
//
// Construction kicks off the anonymous initialization in the background and
// never fails for environmental reasons: agent or call-surface construction
// failures are captured into the handle state and surface through
// EnsureInitialized. Only invalid arguments make New return an error.
func New(ctx context.Context, canisterID string, interfaceFactory InterfaceFactory, opts ...Option) (*Handle, error) {
	if err := errorschain.New(errorschain.ReturnFirst()).
		AddErrorFn(func() error {
			if canisterID == "" {
				return errors.ErrCanisterIDRequired
			}
			return nil
		}).
		AddErrorFn(func() error {
			if interfaceFactory == nil {
				return errors.ErrInterfaceFactoryRequired
			}
			return nil
		}).
		Error(); err != nil {
		return nil, err
	}

	handle := &Handle{
		id:               handleSequence.Inc(),
		canisterID:       canisterID,
		interfaceFactory: interfaceFactory,
		agentFactory:     agent.DefaultFactory,
		network:          agent.MainnetTarget,
		extra:            make(map[string]any),
		logger:           log.DefaultLogger,
		stream:           eventstream.New(),
		status:           StatusInitializing,
		signal:           future.NewCompletable[Actor](),
		generation:       atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(handle)
	}

	if handle.registry == nil {
		handle.registry = DefaultRegistry()
	}
	handle.registry.register(handle)

	go handle.initialize(ctx, handle.generation.Load(), handle.signal)
	return handle, nil
}

// ID returns the process-unique handle identifier.
func (x *Handle) ID() int64 {
	return x.id
}

// CanisterID returns the canister the handle is bound to.
func (x *Handle) CanisterID() string {
	return x.canisterID
}

// Actor returns the current exposed call surface, nil while initializing or
// after an initialization failure. After a failed authentication the
// anonymous actor is still returned: anonymous use survives the failure.
func (x *Handle) Actor() Actor {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.raw
}

// Status returns the anonymous-creation status.
func (x *Handle) Status() Status {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.status
}

// IsAuthenticated reports whether an identity has been attached.
func (x *Handle) IsAuthenticated() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.authenticated
}

// LastError returns the last recorded initialization or authentication
// failure.
func (x *Handle) LastError() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.lastErr
}

// Snapshot returns the current state of the handle.
func (x *Handle) Snapshot() Snapshot {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.snapshotLocked()
}

// EnsureInitialized returns the actor when the anonymous creation step has
// completed, waiting for it when it is still in flight. It rethrows the
// recorded failure when the handle is in the error state. Concurrent callers
// during initialization share the same outcome; no duplicate initialization
// work is triggered.
func (x *Handle) EnsureInitialized(ctx context.Context) (Actor, error) {
	x.mu.Lock()
	switch x.status {
	case StatusError:
		err := x.lastErr
		x.mu.Unlock()
		if err == nil {
			err = errors.ErrInitializationFailed
		}
		return nil, err
	case StatusSuccess:
		raw := x.raw
		x.mu.Unlock()
		return raw, nil
	default:
		pending := x.signal.Future()
		x.mu.Unlock()
		return pending.Await(ctx)
	}
}

// Authenticate waits for the handle's own initialization, then replaces the
// identity of the actor's agent in place: the call-surface reference is
// unchanged by authentication. On success the authenticated flag is set and
// the last error cleared.
//
// On failure the handle status flips to StatusError, the authenticated flag
// is cleared and the error is returned; the anonymous actor remains usable
// through Actor. This is the one operation whose failure moves a handle away
// from StatusSuccess.
//
// Like initialization, authentication belongs to one lifetime segment: when
// a reset supersedes an in-flight Authenticate, its outcome never touches
// the handle state and ErrHandleReset is returned.
func (x *Handle) Authenticate(ctx context.Context, identity agent.Identity) error {
	generation := x.generation.Load()
	raw, err := x.EnsureInitialized(ctx)
	if err != nil {
		return err
	}

	if identity == nil {
		return x.failAuthentication(generation, errors.ErrIdentityRequired)
	}
	if raw == nil {
		return x.failAuthentication(generation, errors.ErrActorNotFound)
	}

	boundAgent := raw.Agent()
	if boundAgent == nil {
		return x.failAuthentication(generation, errors.ErrAgentNotFound)
	}

	replacer, ok := boundAgent.(agent.IdentityReplacer)
	if !ok {
		return x.failAuthentication(generation, errors.ErrIdentityReplacementUnsupported)
	}

	if err := replacer.ReplaceIdentity(identity); err != nil {
		return x.failAuthentication(generation, err)
	}

	x.mu.Lock()
	if x.disposed || x.generation.Load() != generation {
		x.mu.Unlock()
		x.logger.Debugf("discarding stale authentication outcome for handle=(%d)", x.id)
		return errors.ErrHandleReset
	}
	x.authenticated = true
	x.lastErr = nil
	snapshot := x.snapshotLocked()
	x.mu.Unlock()

	x.publish(snapshot)
	x.logger.Infof("actor handle=(%d) canister=(%s) authenticated, sender=(%s)", x.id, x.canisterID, identity.Sender())
	return nil
}

// SetInterceptors wraps the current actor with the given interceptors and
// replaces the handle's exposed actor reference with the wrapped version.
// Status and the authenticated flag are unaffected.
//
// Each call wraps the current reference again: pass the full desired
// interceptor set every time rather than adding incrementally, otherwise
// proxy layers accumulate.
func (x *Handle) SetInterceptors(interceptors Interceptors) error {
	x.mu.Lock()
	if x.raw == nil {
		err := errors.ErrActorNotFound
		x.status = StatusError
		x.lastErr = err
		snapshot := x.snapshotLocked()
		x.mu.Unlock()
		x.publish(snapshot)
		return err
	}

	x.raw = Wrap(x.raw, interceptors)
	snapshot := x.snapshotLocked()
	x.mu.Unlock()

	x.publish(snapshot)
	return nil
}

// Reset discards the current actor and every piece of recorded state, then
// re-runs the anonymous initialization: logically equivalent to destroying
// and recreating the handle in place. Callers awaiting the previous
// initialization signal still receive its original outcome; the handle
// itself ignores completions of the superseded attempt.
func (x *Handle) Reset(ctx context.Context) {
	x.mu.Lock()
	if x.disposed {
		x.mu.Unlock()
		return
	}
	generation := x.generation.Inc()
	x.raw = nil
	x.status = StatusInitializing
	x.authenticated = false
	x.lastErr = nil
	x.signal = future.NewCompletable[Actor]()
	signal := x.signal
	snapshot := x.snapshotLocked()
	x.mu.Unlock()

	x.publish(snapshot)
	x.logger.Infof("actor handle=(%d) canister=(%s) reset", x.id, x.canisterID)
	go x.initialize(ctx, generation, signal)
}

// ClearError clears the recorded error without changing the status.
func (x *Handle) ClearError() {
	x.mu.Lock()
	x.lastErr = nil
	snapshot := x.snapshotLocked()
	x.mu.Unlock()
	x.publish(snapshot)
}

// Dispose removes the handle from its registry and shuts down its event
// stream. Waiters on a still-pending initialization are released with an
// error. Dispose is idempotent; a disposed handle stays readable but can no
// longer be reset.
func (x *Handle) Dispose() {
	x.mu.Lock()
	if x.disposed {
		x.mu.Unlock()
		return
	}
	x.disposed = true
	// orphan any in-flight initialization
	x.generation.Inc()
	signal := x.signal
	x.mu.Unlock()

	signal.Failure(errors.ErrHandleDisposed)
	x.registry.deregister(x.id)
	x.stream.Close()
	x.logger.Debugf("actor handle=(%d) canister=(%s) disposed", x.id, x.canisterID)
}

// Subscribe registers a new subscriber to the handle's state snapshots.
func (x *Handle) Subscribe() *eventstream.Subscriber {
	subscriber := x.stream.AddSubscriber()
	x.stream.Subscribe(subscriber, stateTopic)
	return subscriber
}

// Unsubscribe shuts the given subscriber down.
func (x *Handle) Unsubscribe(subscriber *eventstream.Subscriber) {
	x.stream.RemoveSubscriber(subscriber)
}

// initialize runs the anonymous creation step: it builds the transport agent
// then the call surface, and captures any failure into the handle state. The
// signal belongs to this attempt: it is resolved with the attempt's outcome
// even when a reset superseded the attempt mid-flight, so waiters of the
// previous lifetime segment still observe the outcome they awaited.
func (x *Handle) initialize(ctx context.Context, generation int64, signal future.Completable[Actor]) {
	x.logger.Debugf("initializing actor handle=(%d) canister=(%s)", x.id, x.canisterID)

	raw, err := x.buildActor(ctx)
	x.complete(generation, signal, raw, err)
}

func (x *Handle) buildActor(ctx context.Context) (Actor, error) {
	options := make([]agent.Option, 0, len(x.agentOptions)+2)
	options = append(options, agent.WithNetwork(x.network), agent.WithLogger(x.logger))
	options = append(options, x.agentOptions...)

	config, err := agent.NewConfig(x.host, options...)
	if err != nil {
		return nil, err
	}

	transport, err := x.agentFactory(ctx, config)
	if err != nil {
		return nil, err
	}

	return x.interfaceFactory(ActorConfig{
		Agent:      transport,
		CanisterID: x.canisterID,
		Extra:      x.extra,
	})
}

// complete records the outcome of one initialization attempt. Outcomes of
// superseded generations resolve their own signal but never touch the
// handle state.
func (x *Handle) complete(generation int64, signal future.Completable[Actor], raw Actor, err error) {
	x.mu.Lock()
	if x.disposed || x.generation.Load() != generation {
		x.mu.Unlock()
		x.logger.Debugf("discarding stale initialization outcome for handle=(%d)", x.id)
		if err != nil {
			signal.Failure(err)
		} else {
			signal.Success(raw)
		}
		return
	}

	if err != nil {
		x.status = StatusError
		x.lastErr = err
		x.raw = nil
	} else {
		x.status = StatusSuccess
		x.lastErr = nil
		x.raw = raw
	}
	snapshot := x.snapshotLocked()
	x.mu.Unlock()

	if err != nil {
		signal.Failure(err)
		x.logger.Errorf("failed to initialize actor handle=(%d) canister=(%s): %v", x.id, x.canisterID, err)
	} else {
		signal.Success(raw)
		x.logger.Infof("actor handle=(%d) canister=(%s) initialized", x.id, x.canisterID)
	}
	x.publish(snapshot)
}

func (x *Handle) failAuthentication(generation int64, err error) error {
	x.mu.Lock()
	if x.disposed || x.generation.Load() != generation {
		x.mu.Unlock()
		x.logger.Debugf("discarding stale authentication failure for handle=(%d)", x.id)
		return err
	}
	// the anonymous actor is deliberately retained; the authenticated flag is
	// not: the agent's credential state after a failed replacement is unknown
	x.status = StatusError
	x.authenticated = false
	x.lastErr = err
	snapshot := x.snapshotLocked()
	x.mu.Unlock()

	x.publish(snapshot)
	x.logger.Errorf("failed to authenticate actor handle=(%d) canister=(%s): %v", x.id, x.canisterID, err)
	return err
}

func (x *Handle) snapshotLocked() Snapshot {
	return Snapshot{
		Status:        x.status,
		Authenticated: x.authenticated,
		LastError:     x.lastErr,
		Actor:         x.raw,
	}
}

func (x *Handle) publish(snapshot Snapshot) {
	x.stream.Publish(stateTopic, snapshot)
}
