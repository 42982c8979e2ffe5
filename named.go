// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"rivaas.dev/routing/route"
)

// NamedOption configures ConnectNamed.
type NamedOption func(*route.ConnectOptions)

// NamedReset drops the rules connected so far.
func NamedReset() NamedOption {
	return func(o *route.ConnectOptions) {
		o.Reset = true
	}
}

// NamedGreedy controls whether keys without a rule are named parameters
// too. ConnectNamed is greedy unless told otherwise.
func NamedGreedy(greedy bool) NamedOption {
	return func(o *route.ConnectOptions) {
		o.Greedy = greedy
	}
}

// NamedWithDefaults also accepts the default names (page, fields, order,
// limit, recursive, sort, direction, step).
func NamedWithDefaults() NamedOption {
	return func(o *route.ConnectOptions) {
		o.Default = true
	}
}

// NamedSeparator replaces the key/value separator.
func NamedSeparator(sep string) NamedOption {
	return func(o *route.ConnectOptions) {
		o.Separator = sep
	}
}

// ConnectNamed adds named-parameter rules. A rule with an existing name
// replaces it.
func (r *Router) ConnectNamed(rules []route.NamedRule, opts ...NamedOption) error {
	o := route.ConnectOptions{Greedy: true}
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.named.Connect(rules, o)
	if err != nil {
		return err
	}
	r.named = cfg
	return nil
}

// ConnectNamedDefaults enables greedy named parameters with the default
// names, or disables named parameters.
func (r *Router) ConnectNamedDefaults(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named = r.named.ConnectDefaults(enabled)
}

// NamedConfig returns a copy of the named-parameter configuration.
func (r *Router) NamedConfig() route.NamedConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.named.Clone()
}
