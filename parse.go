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
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/iancoleman/strcase"

	"rivaas.dev/routing/route"
)

// DefaultExtension is the extension of a parsed path without one when
// extension parsing is enabled.
const DefaultExtension = "html"

var extensionPattern = regexp.MustCompile(`\.([0-9a-zA-Z]*)$`)

// Parse parses a request path without HTTP verb. Routes bound to verbs do
// not apply. See ParseMethod.
func (r *Router) Parse(path string) (*route.Parsed, error) {
	return r.ParseMethod("", path)
}

// ParseMethod parses a request path with the HTTP verb of the request.
//
// A missing leading slash is added and a query string is dropped. When
// extension parsing is enabled a recognised extension is stripped and
// returned in Parsed.Ext. Routes are tried in order; the first that
// applies wins. ErrNoMatch is returned when none does.
func (r *Router) ParseMethod(method, path string) (*route.Parsed, error) {
	start := time.Now()
	r.ensureDefaults()

	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	r.mu.RLock()
	path, ext, ambiguous := r.parseExtension(path)
	env := route.Env{Named: r.named}
	var (
		found   *route.Parsed
		matched route.Matcher
	)
	try := func(m route.Matcher) bool {
		if p, ok := m.ParseWith(env, method, path); ok {
			found, matched = p, m
			return false
		}
		return true
	}
	r.routes.candidates(path, try)
	if found == nil && r.useDefaults && r.implicit != nil {
		r.implicit.candidates(path, try)
	}
	r.mu.RUnlock()

	if ambiguous != "" {
		r.emit(DiagnosticEvent{
			Kind:    DiagAmbiguousExtension,
			Message: "dotted suffix is not a configured extension",
			Fields:  map[string]any{"path": path, "suffix": ambiguous},
		})
	}

	if found == nil {
		r.observeParse("", false, start)
		r.logger.Debug("no route matched", "method", method, "path", path)
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
	}

	found.Ext = ext
	r.mu.Lock()
	r.req.current = matched
	r.mu.Unlock()

	r.observeParse(matched.Template(), true, start)
	return found, nil
}

func (r *Router) observeParse(template string, matched bool, start time.Time) {
	if r.observer != nil {
		r.observer.OnParse(template, matched, time.Since(start))
	}
}

// parseExtension strips a recognised extension from path. It also returns
// the suffix of a dotted last segment that was kept because it is not
// configured. The caller holds the read lock.
func (r *Router) parseExtension(path string) (stripped, ext, ambiguous string) {
	if !r.parseExt {
		return path, "", ""
	}

	ext = DefaultExtension
	m := extensionPattern.FindStringSubmatchIndex(path)
	if m == nil {
		return path, ext, ""
	}
	suffix := path[m[2]:m[3]]
	if suffix == "" {
		return path, ext, ""
	}
	if len(r.extensions) == 0 {
		return path[:m[0]], suffix, ""
	}
	for _, name := range r.extensions {
		if strings.EqualFold(name, suffix) {
			return path[:m[0]], suffix, ""
		}
	}
	return path, ext, suffix
}

// ParseExtensions enables extension parsing for exts. Without arguments
// any alphanumeric suffix is an extension.
func (r *Router) ParseExtensions(exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parseExt = true
	r.extensions = slices.Clone(exts)
}

// Extensions returns the configured extensions.
func (r *Router) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.extensions)
}

// ensureDefaults derives the implicit routes when they are stale.
func (r *Router) ensureDefaults() {
	r.mu.RLock()
	fresh := r.derived || !r.useDefaults
	r.mu.RUnlock()
	if fresh {
		return
	}

	r.mu.Lock()
	if r.derived || !r.useDefaults {
		r.mu.Unlock()
		return
	}
	n, plugins, err := r.deriveDefaults()
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("failed to derive default routes", "error", err)
		return
	}
	r.logger.Debug("default routes mapped", "routes", n, "plugins", plugins)
	r.emit(DiagnosticEvent{
		Kind:    DiagDefaultsMapped,
		Message: "default routes mapped",
		Fields:  map[string]any{"routes": n, "plugins": plugins},
	})
}

// deriveDefaults builds the implicit routes: plugin shortcuts for every
// plugin, with and without each prefix, then the prefix routes and the
// catch-all routes. The caller holds the write lock.
func (r *Router) deriveDefaults() (int, []string, error) {
	t := newTable()
	prefixes := slices.Clone(r.prefixes)

	var plugins []string
	if r.plugins != nil {
		for _, p := range r.plugins.Plugins() {
			if p != "" {
				plugins = append(plugins, strcase.ToSnake(p))
			}
		}
	}

	type def struct {
		template string
		defaults route.Params
		opts     []route.Option
	}
	var defs []def
	if len(plugins) > 0 {
		alternatives := make([]string, len(plugins))
		for i, p := range plugins {
			alternatives[i] = regexp.QuoteMeta(p)
		}
		match := route.WithConstraint(route.KeyPlugin, strings.Join(alternatives, "|"))
		short := []route.Option{match, route.WithClass(route.ClassPluginShort)}
		for _, p := range prefixes {
			params := route.Params{route.KeyPrefix: p, p: route.True}
			index := params.Clone()
			index[route.KeyAction] = "index"
			defs = append(defs,
				def{"/" + p + "/:plugin", index, short},
				def{"/" + p + "/:plugin/:controller", index, []route.Option{match}},
				def{"/" + p + "/:plugin/:controller/:action/*", params, []route.Option{match}},
			)
		}
		defs = append(defs,
			def{"/:plugin", route.Params{route.KeyAction: "index"}, short},
			def{"/:plugin/:controller", route.Params{route.KeyAction: "index"}, []route.Option{match}},
			def{"/:plugin/:controller/:action/*", nil, []route.Option{match}},
		)
	}
	for _, p := range prefixes {
		params := route.Params{route.KeyPrefix: p, p: route.True}
		index := params.Clone()
		index[route.KeyAction] = "index"
		defs = append(defs,
			def{"/" + p + "/:controller", index, nil},
			def{"/" + p + "/:controller/:action/*", params, nil},
		)
	}
	defs = append(defs,
		def{"/:controller", route.Params{route.KeyAction: "index"}, nil},
		def{"/:controller/:action/*", nil, nil},
	)

	for _, d := range defs {
		if _, err := r.connect(t, d.template, d.defaults, d.opts); err != nil {
			return 0, plugins, err
		}
	}
	if !r.named.Configured {
		r.named = r.named.ConnectDefaults(true)
	}

	r.implicit = t
	r.derived = true
	return t.len(), plugins, nil
}
