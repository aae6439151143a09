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

package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tochemey/icactor/errors"
	"github.com/tochemey/icactor/internal/http"
	"github.com/tochemey/icactor/log"
)

const (
	requestTypeCall  = "call"
	requestTypeQuery = "query"

	contentTypeCBOR = "application/cbor"

	// ingressExpiryWindow is how far in the future a request envelope stays
	// acceptable to the endpoint.
	ingressExpiryWindow = 4 * time.Minute
)

// HTTPAgent is the production Agent implementation. It signs CBOR request
// envelopes with its current identity and posts them to the endpoint over an
// HTTP/2 cleartext client.
//
// The identity can be replaced at any time via ReplaceIdentity; in-flight
// requests keep the identity they were signed with.
type HTTPAgent struct {
	host           string
	client         *nethttp.Client
	requestTimeout time.Duration
	logger         log.Logger

	identityMu sync.RWMutex
	identity   Identity

	rootKey []byte
}

// enforce compilation error
var (
	_ Agent            = (*HTTPAgent)(nil)
	_ IdentityReplacer = (*HTTPAgent)(nil)
)

// DefaultFactory builds an HTTPAgent. It is the Factory used by actor
// handles unless overridden.
var DefaultFactory Factory = func(ctx context.Context, config *Config) (Agent, error) {
	return NewHTTPAgent(ctx, config)
}

// NewHTTPAgent creates an HTTPAgent from the given configuration. Unless the
// configuration skips it, the endpoint root key is fetched and pinned during
// construction, so construction may fail for environmental reasons.
func NewHTTPAgent(ctx context.Context, config *Config) (*HTTPAgent, error) {
	client := config.httpClient
	if client == nil {
		client = http.NewClient()
	}

	agent := &HTTPAgent{
		host:           config.Host(),
		client:         client,
		requestTimeout: config.RequestTimeout(),
		logger:         config.Logger(),
		identity:       config.Identity(),
	}

	if config.SkipRootKeyVerification() {
		agent.logger.Debugf("skipping root key verification for host=(%s) network=(%s)", config.Host(), config.Network())
		return agent, nil
	}

	if err := agent.fetchRootKey(ctx); err != nil {
		return nil, err
	}
	return agent, nil
}

// Call performs a state-changing call against the given canister.
func (x *HTTPAgent) Call(ctx context.Context, canisterID string, method string, arg []byte) ([]byte, error) {
	return x.dispatch(ctx, requestTypeCall, canisterID, method, arg)
}

// Query performs a read-only call against the given canister.
func (x *HTTPAgent) Query(ctx context.Context, canisterID string, method string, arg []byte) ([]byte, error) {
	return x.dispatch(ctx, requestTypeQuery, canisterID, method, arg)
}

// ReplaceIdentity replaces the agent's signing identity in place. The agent
// instance, and therefore every actor bound to it, is unchanged otherwise.
func (x *HTTPAgent) ReplaceIdentity(identity Identity) error {
	if identity == nil {
		return errors.ErrIdentityRequired
	}
	x.identityMu.Lock()
	x.identity = identity
	x.identityMu.Unlock()
	x.logger.Infof("agent identity replaced, sender=(%s)", identity.Sender())
	return nil
}

// Identity returns the current signing identity.
func (x *HTTPAgent) Identity() Identity {
	x.identityMu.RLock()
	defer x.identityMu.RUnlock()
	return x.identity
}

// Host returns the endpoint host.
func (x *HTTPAgent) Host() string {
	return x.host
}

// RootKey returns the pinned endpoint root key, nil when verification was
// skipped.
func (x *HTTPAgent) RootKey() []byte {
	return x.rootKey
}

func (x *HTTPAgent) dispatch(ctx context.Context, requestType, canisterID, method string, arg []byte) ([]byte, error) {
	x.identityMu.RLock()
	identity := x.identity
	x.identityMu.RUnlock()

	nonce, err := uuid.New().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to create request nonce: %w", err)
	}

	content := envelopeContent{
		RequestType:   requestType,
		Sender:        identity.Sender(),
		Nonce:         nonce,
		IngressExpiry: uint64(time.Now().Add(ingressExpiryWindow).UnixNano()),
		CanisterID:    canisterID,
		MethodName:    method,
		Arg:           arg,
	}

	payload, err := encodeEnvelope(identity, content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, x.requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v2/canister/%s/%s", x.host, canisterID, requestType)
	request, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", contentTypeCBOR)

	response, err := x.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to reach endpoint host=(%s): %w", x.host, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoint reply: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("endpoint returned http status=(%d): %s", response.StatusCode, string(body))
	}

	return decodeReply(body)
}

// statusResponse is the payload of the endpoint status route.
type statusResponse struct {
	RootKey []byte `cbor:"root_key"`
}

func (x *HTTPAgent) fetchRootKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, x.requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v2/status", x.host)
	request, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}

	response, err := x.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to fetch root key from host=(%s): %w", x.host, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read status reply: %w", err)
	}

	if response.StatusCode != nethttp.StatusOK {
		return fmt.Errorf("status route returned http status=(%d)", response.StatusCode)
	}

	var status statusResponse
	if err := cborDec.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if len(status.RootKey) == 0 {
		return fmt.Errorf("%w: missing root key", ErrMalformedReply)
	}

	x.rootKey = status.RootKey
	x.logger.Debugf("root key pinned for host=(%s)", x.host)
	return nil
}
