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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"

	"rivaas.dev/routing/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Option defines functional options for router configuration.
type Option func(*Router)

// Settings provides the routing configuration read at construction and
// on Reload.
type Settings interface {
	// Admin returns the legacy admin prefix name, or "".
	Admin() string
	// Prefixes returns the additional prefix names.
	Prefixes() []string
}

// PluginRegistry lists the names of the installed plugins.
type PluginRegistry interface {
	Plugins() []string
}

// StaticSettings is a fixed Settings and PluginRegistry.
type StaticSettings struct {
	AdminPrefix string
	PrefixNames []string
	PluginNames []string
}

// Admin implements Settings.
func (s StaticSettings) Admin() string { return s.AdminPrefix }

// Prefixes implements Settings.
func (s StaticSettings) Prefixes() []string { return s.PrefixNames }

// Plugins implements PluginRegistry.
func (s StaticSettings) Plugins() []string { return s.PluginNames }

// Router is an ordered table of routes with the routing configuration.
//
// Parse turns request paths into parameters using the first route that
// applies. URL turns parameters back into paths using the first route that
// matches them, and falls back to /prefix/plugin/controller/action/...
// when none does.
//
// Routes connected by the application come first. The implicit default
// routes (plugin shortcuts, prefix routes, the /:controller/:action/*
// catch-all) are derived on the next Parse or URL after a change and are
// tried last.
//
// A Router is safe for concurrent use. Request state set with
// SetRequestInfo is shared by all callers; use ForRequest for state scoped
// to one request.
type Router struct {
	mu sync.RWMutex

	settings    Settings
	plugins     PluginRegistry
	logger      *slog.Logger
	diagnostics DiagnosticHandler
	observer    Observer
	fullBaseURL string

	routes      *table
	implicit    *table
	derived     bool
	useDefaults bool
	named       route.NamedConfig
	prefixes    []string
	parseExt    bool
	extensions  []string
	resources   []string

	req requestState
}

// New creates a router.
//
// Example:
//
//	r, err := routing.New(
//	    routing.WithSettings(routing.StaticSettings{AdminPrefix: "admin"}),
//	    routing.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.MustConnect("/", route.Params{"controller": "pages", "action": "display"}, route.WithPassDefaults("home"))
func New(opts ...Option) (*Router, error) {
	r := &Router{
		logger:      noopLogger,
		useDefaults: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("routing configuration validation failed: %w", err)
	}
	r.reset()
	return r, nil
}

// MustNew creates a router and panics if configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("routing.MustNew: %v", err))
	}
	return r
}

// validate checks the router configuration for common errors.
func (r *Router) validate() error {
	var errs []error
	if r.fullBaseURL != "" {
		u, err := url.Parse(r.fullBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidFullBaseURL, r.fullBaseURL))
		}
	}
	for _, p := range r.configuredPrefixes() {
		if strings.ContainsAny(p, "/?#") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPrefix, p))
		}
	}
	return errors.Join(errs...)
}

// reset restores the route table and configuration. Request state is kept.
func (r *Router) reset() {
	r.routes = newTable()
	r.implicit = nil
	r.derived = false
	r.useDefaults = true
	r.named = route.DefaultNamedConfig()
	r.prefixes = r.configuredPrefixes()
	r.parseExt = false
	r.extensions = nil
	r.resources = nil
}

// configuredPrefixes returns the admin prefix followed by the configured
// prefixes, de-duplicated in first-seen order.
func (r *Router) configuredPrefixes() []string {
	if r.settings == nil {
		return nil
	}
	var out []string
	if admin := r.settings.Admin(); admin != "" {
		out = append(out, admin)
	}
	for _, p := range r.settings.Prefixes() {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// Reload clears the routes, the named parameter rules and the extensions,
// and re-reads the prefixes from the settings. The implicit default routes
// are derived again from the current plugins on the next Parse or URL.
// Request state is not changed.
func (r *Router) Reload() {
	r.mu.Lock()
	r.reset()
	prefixes := slices.Clone(r.prefixes)
	r.mu.Unlock()

	r.logger.Debug("routes reloaded", "prefixes", prefixes)
}

// Defaults enables or disables the implicit default routes.
func (r *Router) Defaults(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.useDefaults = enabled
}

// Prefixes returns the known prefixes: the admin prefix first, then the
// configured and connected prefixes in first-seen order.
func (r *Router) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.prefixes)
}

// Connect appends a route to the table. Routes are tried in the order they
// were connected.
//
// A prefix flag in defaults (such as "admin": "1" for a known prefix) sets
// the prefix of the route, and a "prefix" default registers a new prefix.
// The plugin default is "" and the action default is "index" unless the
// action is constrained. route.WithClass selects the route class.
//
// Example:
//
//	r.Connect("/posts/:id", route.Params{"controller": "posts", "action": "view"},
//	    route.WithConstraintKind("id", route.ConstraintID), route.WithPass("id"))
func (r *Router) Connect(template string, defaults route.Params, opts ...route.Option) (route.Matcher, error) {
	r.mu.Lock()
	m, err := r.connect(r.routes, template, defaults, opts)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	class := route.Class(opts...)
	r.logger.Debug("route connected", "template", template, "class", class)
	r.emit(DiagnosticEvent{
		Kind:    DiagRouteConnected,
		Message: "route connected",
		Fields:  map[string]any{"template": template, "class": class},
	})
	return m, nil
}

// MustConnect is like Connect but panics on error.
func (r *Router) MustConnect(template string, defaults route.Params, opts ...route.Option) route.Matcher {
	m, err := r.Connect(template, defaults, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// connect builds a route and appends it to t. The caller holds the write lock.
func (r *Router) connect(t *table, template string, defaults route.Params, opts []route.Option) (route.Matcher, error) {
	d := defaults.Clone()
	for _, p := range r.prefixes {
		if v, ok := d[p]; ok && route.Truthy(v) {
			d[p] = route.True
			d[route.KeyPrefix] = p
			break
		}
	}
	if p := d[route.KeyPrefix]; p != "" {
		if _, ok := d[p]; !ok {
			d[p] = route.True
		}
		r.addPrefix(p)
	}
	if !d.Has(route.KeyPlugin) {
		d[route.KeyPlugin] = ""
	}
	if !d.Has(route.KeyAction) && !route.Constrains(route.KeyAction, opts...) {
		d[route.KeyAction] = "index"
	}

	factory, err := route.Lookup(route.Class(opts...))
	if err != nil {
		return nil, err
	}
	m, err := factory(template, d, opts...)
	if err != nil {
		return nil, err
	}
	t.add(m)
	return m, nil
}

// addPrefix registers p. A new prefix invalidates the implicit routes.
func (r *Router) addPrefix(p string) {
	if slices.Contains(r.prefixes, p) {
		return
	}
	r.prefixes = append(r.prefixes, p)
	r.derived = false
}

// Routes returns the connected routes followed by the implicit default
// routes, in the order they are tried.
func (r *Router) Routes() []route.Matcher {
	r.ensureDefaults()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.routes.routes)
	if r.useDefaults && r.implicit != nil {
		out = append(out, r.implicit.routes...)
	}
	return out
}

// CurrentRoute returns the route that produced the last parse result, or nil.
func (r *Router) CurrentRoute() route.Matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.req.current
}

func (r *Router) emit(e DiagnosticEvent) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(e)
	}
}
