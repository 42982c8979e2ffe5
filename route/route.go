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
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Kind identifies a route variant.
type Kind uint8

const (
	KindDefault     Kind = iota // plain route
	KindPluginShort             // /:plugin shortcut, controller defaults to the plugin
	KindResource                // REST resource route bound to HTTP verbs
)

// String returns the class name of k.
func (k Kind) String() string {
	switch k {
	case KindPluginShort:
		return ClassPluginShort
	case KindResource:
		return ClassResource
	default:
		return ClassDefault
	}
}

// Matcher is implemented by every route class.
//
// ParseWith and MatchWith receive the router-wide Env so that named
// parameter rules connected after the route still apply to it.
type Matcher interface {
	Template() string
	Persist() []string
	ParseWith(env Env, method, path string) (*Parsed, bool)
	MatchWith(env Env, t Target) (string, bool)
}

// Env is the router-wide state consulted by a route.
type Env struct {
	Named NamedConfig
}

// Route is a compiled URL template with defaults and options.
//
// A Route is safe for concurrent use. Only Where mutates it.
type Route struct {
	kind     Kind
	template string
	defaults Params
	set      settings

	mu       sync.RWMutex
	compiled *compiled
}

// New creates a route. Template and constraint errors are reported as a
// *ConfigError.
func New(template string, defaults Params, opts ...Option) (*Route, error) {
	return build(KindDefault, template, defaults, opts)
}

// MustNew is like New but panics on error.
func MustNew(template string, defaults Params, opts ...Option) *Route {
	r, err := New(template, defaults, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func build(kind Kind, template string, defaults Params, opts []Option) (*Route, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	for _, rule := range s.named {
		if err := rule.Validate(); err != nil {
			return nil, &ConfigError{Template: template, Param: rule.Name, Pattern: rule.Match, Err: err}
		}
	}
	if s.namedConfig != nil {
		if err := s.namedConfig.Validate(); err != nil {
			return nil, &ConfigError{Template: template, Err: err}
		}
	}

	r := &Route{
		kind:     kind,
		template: template,
		defaults: defaults.Clone(),
		set:      s,
	}
	if _, err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load returns the compiled state, compiling it on first use.
func (r *Route) load() (*compiled, error) {
	r.mu.RLock()
	c := r.compiled
	r.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.compiled == nil {
		c, err := compileRoute(r.template, r.defaults, r.set.constraints)
		if err != nil {
			return nil, err
		}
		r.compiled = c
	}
	return r.compiled, nil
}

// Compile returns the match regex, compiling it on first use. Repeated
// calls return the same value until a constraint changes.
func (r *Route) Compile() (*regexp.Regexp, error) {
	c, err := r.load()
	if err != nil {
		return nil, err
	}
	return c.re, nil
}

// Where constrains param to pattern and invalidates the compiled regex.
// It panics with a *ConfigError when pattern is not a valid regular
// expression.
//
// Example:
//
//	r.Where("id", `[0-9]+`)
func (r *Route) Where(param, pattern string) *Route {
	if _, err := regexp.Compile(`^(?:` + pattern + `)$`); err != nil {
		panic(constraintError(r.template, param, pattern, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	constraints := maps.Clone(r.set.constraints)
	if constraints == nil {
		constraints = make(map[string]string, 1)
	}
	constraints[param] = pattern
	r.set.constraints = constraints
	r.compiled = nil
	return r
}

// Template returns the route template.
func (r *Route) Template() string { return r.template }

// Kind returns the route variant.
func (r *Route) Kind() Kind { return r.kind }

// Defaults returns a copy of the route defaults.
func (r *Route) Defaults() Params { return r.defaults.Clone() }

// Persist returns the keys carried over from the current request when
// generating URLs.
func (r *Route) Persist() []string { return slices.Clone(r.set.persist) }

// PassKeys returns the keys copied into the positional arguments on parse.
func (r *Route) PassKeys() []string { return slices.Clone(r.set.pass) }

// Methods returns the HTTP verbs the route is bound to. Empty means any.
func (r *Route) Methods() []string { return slices.Clone(r.set.methods) }

// Constraints returns a copy of the constraint patterns.
func (r *Route) Constraints() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.set.constraints)
}

// Keys returns the placeholder names in template order.
func (r *Route) Keys() []string {
	c, err := r.load()
	if err != nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Nodes returns the template AST.
func (r *Route) Nodes() []Node {
	c, err := r.load()
	if err != nil {
		return nil
	}
	return slices.Clone(c.nodes)
}

// Pattern returns the source of the compiled regex.
func (r *Route) Pattern() string {
	c, err := r.load()
	if err != nil {
		return ""
	}
	return c.re.String()
}

// Greedy reports whether the template ends with a wildcard.
func (r *Route) Greedy() bool {
	c, err := r.load()
	return err == nil && c.greedy
}

// LeadingSegment returns the first path segment when it is fully literal.
// Routes sharing a leading segment are candidates for the same paths.
func (r *Route) LeadingSegment() (string, bool) {
	c, err := r.load()
	if err != nil || len(c.nodes) == 0 || c.nodes[0].Kind != NodeLiteral {
		return "", false
	}
	text, ok := strings.CutPrefix(c.nodes[0].Value, "/")
	if !ok {
		return "", false
	}
	if seg, _, found := strings.Cut(text, "/"); found {
		return seg, seg != ""
	}
	if len(c.nodes) == 1 || c.nodes[1].Kind == NodeWildcard {
		return text, text != ""
	}
	return "", false
}

// Parse parses path with the named parameter configuration given to
// WithNamedConfig, or DefaultNamedConfig.
func (r *Route) Parse(method, path string) (*Parsed, bool) {
	return r.ParseWith(r.env(), method, path)
}

// Match generates a path for t with the named parameter configuration
// given to WithNamedConfig, or DefaultNamedConfig.
func (r *Route) Match(t Target) (string, bool) {
	return r.MatchWith(r.env(), t)
}

func (r *Route) env() Env {
	if r.set.namedConfig != nil {
		return Env{Named: *r.set.namedConfig}
	}
	return Env{Named: DefaultNamedConfig()}
}

func (r *Route) allowsMethod(method string) bool {
	if len(r.set.methods) == 0 {
		return true
	}
	for _, m := range r.set.methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
