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

// Option is the interface that applies a configuration option to a Handle.
type Option interface {
	// Apply sets the Option value of a handle.
	Apply(*Handle)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(handle *Handle)

func (f OptionFunc) Apply(h *Handle) {
	f(h)
}

// WithHost sets the endpoint host the handle's agent will talk to.
func WithHost(host string) Option {
	return OptionFunc(func(handle *Handle) {
		handle.host = host
	})
}

// WithNetwork sets the deployment-target indicator forwarded to the agent.
func WithNetwork(network string) Option {
	return OptionFunc(func(handle *Handle) {
		handle.network = network
	})
}

// WithAgentOptions forwards extra options to the agent configuration.
func WithAgentOptions(opts ...agent.Option) Option {
	return OptionFunc(func(handle *Handle) {
		handle.agentOptions = append(handle.agentOptions, opts...)
	})
}

// WithAgentFactory overrides the transport agent factory.
func WithAgentFactory(factory agent.Factory) Option {
	return OptionFunc(func(handle *Handle) {
		handle.agentFactory = factory
	})
}

// WithCallSurfaceOption sets an opaque option handed to the interface
// factory. The lifecycle never interprets it.
func WithCallSurfaceOption(key string, value any) Option {
	return OptionFunc(func(handle *Handle) {
		handle.extra[key] = value
	})
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(handle *Handle) {
		handle.logger = logger
	})
}

// WithRegistry registers the handle with the given registry instead of the
// process default.
func WithRegistry(registry *Registry) Option {
	return OptionFunc(func(handle *Handle) {
		handle.registry = registry
	})
}
