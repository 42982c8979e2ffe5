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

package route

import (
	"maps"
	"slices"
)

// settings holds the options of a route.
type settings struct {
	constraints  map[string]string
	pass         []string
	passDefaults []string
	persist      []string
	methods      []string
	named        []NamedRule
	namedSet     bool
	namedOff     bool
	greedy       *bool
	class        string
	namedConfig  *NamedConfig
}

// Option configures a route.
type Option func(*settings)

// WithConstraint constrains param to match pattern entirely. The param may
// be a placeholder or any other key, such as action.
func WithConstraint(param, pattern string) Option {
	return func(s *settings) {
		s.constraints = maps.Clone(s.constraints)
		if s.constraints == nil {
			s.constraints = make(map[string]string)
		}
		s.constraints[param] = pattern
	}
}

// WithConstraintKind constrains param with a predefined pattern.
func WithConstraintKind(param string, kind ConstraintKind) Option {
	if kind == ConstraintNone {
		return func(*settings) {}
	}
	return WithConstraint(param, kind.Pattern())
}

// WithPass copies the listed keys, in order, to the front of the positional
// arguments on parse.
func WithPass(keys ...string) Option {
	return func(s *settings) {
		s.pass = append(slices.Clone(s.pass), keys...)
	}
}

// WithPassDefaults sets positional defaults. They seed the positional
// arguments on parse and must be reproduced by the target on match.
func WithPassDefaults(values ...string) Option {
	return func(s *settings) {
		s.passDefaults = append(slices.Clone(s.passDefaults), values...)
	}
}

// WithPersist carries the listed keys over from the current request when
// generating URLs.
func WithPersist(keys ...string) Option {
	return func(s *settings) {
		s.persist = append(slices.Clone(s.persist), keys...)
	}
}

// WithMethods binds the route to HTTP verbs.
func WithMethods(methods ...string) Option {
	return func(s *settings) {
		s.methods = append(slices.Clone(s.methods), methods...)
	}
}

// WithNamed restricts named parameters of this route to rules. It replaces
// the router-wide rules entirely.
func WithNamed(rules ...NamedRule) Option {
	return func(s *settings) {
		s.named = append(slices.Clone(s.named), rules...)
		s.namedSet = true
		s.namedOff = false
	}
}

// WithoutNamed disables named parameters: every wildcard segment is passed.
func WithoutNamed() Option {
	return func(s *settings) {
		s.namedOff = true
	}
}

// WithGreedy sets the greedy mode of named parameters for this route.
func WithGreedy(greedy bool) Option {
	return func(s *settings) {
		s.greedy = &greedy
	}
}

// WithClass selects the route class instantiated by a router.
func WithClass(class string) Option {
	return func(s *settings) {
		s.class = class
	}
}

// WithNamedConfig sets the named parameter configuration used by Parse
// and Match when the route is used on its own.
func WithNamedConfig(cfg NamedConfig) Option {
	return func(s *settings) {
		c := cfg.Clone()
		s.namedConfig = &c
	}
}

// Class returns the class selected by opts, or ClassDefault.
func Class(opts ...Option) string {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.class == "" {
		return ClassDefault
	}
	return s.class
}

// Constrains reports whether opts constrain param.
func Constrains(param string, opts ...Option) bool {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	_, ok := s.constraints[param]
	return ok
}
