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
	"net/http"
	"time"

	"github.com/tochemey/icactor/errors"
	"github.com/tochemey/icactor/internal/errorschain"
	"github.com/tochemey/icactor/log"
)

// MainnetTarget is the deployment-target indicator of the production
// network. Any other target is treated as non-production and skips
// root-key verification.
const MainnetTarget = "ic"

// defaultRequestTimeout bounds a single request round trip.
const defaultRequestTimeout = 30 * time.Second

// Config carries the settings an agent is built from.
type Config struct {
	host           string
	network        string
	identity       Identity
	httpClient     *http.Client
	requestTimeout time.Duration
	logger         log.Logger
	extra          map[string]any

	skipRootKeyVerification bool
}

// NewConfig creates an agent Config bound to the given host and validates it.
// The root-key verification skip is computed from the deployment target: any
// target other than MainnetTarget skips it.
func NewConfig(host string, opts ...Option) (*Config, error) {
	config := &Config{
		host:           host,
		network:        MainnetTarget,
		identity:       Anonymous(),
		requestTimeout: defaultRequestTimeout,
		logger:         log.DefaultLogger,
		extra:          make(map[string]any),
	}

	for _, opt := range opts {
		opt.Apply(config)
	}

	config.skipRootKeyVerification = config.network != MainnetTarget

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Host returns the endpoint host the agent talks to.
func (x *Config) Host() string { return x.host }

// Network returns the deployment-target indicator.
func (x *Config) Network() string { return x.network }

// Identity returns the signing identity.
func (x *Config) Identity() Identity { return x.identity }

// RequestTimeout returns the per-request timeout.
func (x *Config) RequestTimeout() time.Duration { return x.requestTimeout }

// Logger returns the configured logger.
func (x *Config) Logger() log.Logger { return x.logger }

// Extra returns the opaque passthrough options bag. The core never
// interprets it; custom agent factories may.
func (x *Config) Extra() map[string]any { return x.extra }

// SkipRootKeyVerification reports whether transport root-key verification is
// skipped. True for every non-production deployment target.
func (x *Config) SkipRootKeyVerification() bool { return x.skipRootKeyVerification }

func (x *Config) validate() error {
	return errorschain.New(errorschain.ReturnFirst()).
		AddErrorFn(func() error {
			if x.host == "" {
				return errors.ErrHostRequired
			}
			return nil
		}).
		AddErrorFn(func() error {
			if x.identity == nil {
				return errors.ErrIdentityRequired
			}
			return nil
		}).
		Error()
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithNetwork sets the deployment-target indicator.
func WithNetwork(network string) Option {
	return OptionFunc(func(config *Config) {
		config.network = network
	})
}

// WithIdentity sets the initial signing identity.
func WithIdentity(identity Identity) Option {
	return OptionFunc(func(config *Config) {
		config.identity = identity
	})
}

// WithHTTPClient overrides the HTTP client used by the agent. Handy for
// tests and for callers that need custom transport settings.
func WithHTTPClient(client *http.Client) Option {
	return OptionFunc(func(config *Config) {
		config.httpClient = client
	})
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.requestTimeout = timeout
	})
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithExtra sets an opaque passthrough option.
func WithExtra(key string, value any) Option {
	return OptionFunc(func(config *Config) {
		config.extra[key] = value
	})
}
