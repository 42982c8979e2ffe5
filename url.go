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
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"rivaas.dev/routing/route"
)

// URL describes a URL to generate.
type URL struct {
	// Params holds the controller, action, plugin, prefix flags, route
	// keys and named parameters. An empty value is an explicit null.
	Params route.Params
	// Pass holds the positional arguments.
	Pass []string
	// Query is appended after '?'.
	Query url.Values
	// Fragment is appended after '#'.
	Fragment string
	// Ext is appended as ".ext".
	Ext string
	// NoBase omits the base path of the request.
	NoBase bool
	// Full prepends the full base URL.
	Full bool
}

type urlOptions struct {
	escape bool
	full   bool
}

// URLOption configures URL generation.
type URLOption func(*urlOptions)

// Escape joins query parameters with "&amp;" instead of "&".
func Escape() URLOption {
	return func(o *urlOptions) {
		o.escape = true
	}
}

// Full prepends the full base URL.
func Full() URLOption {
	return func(o *urlOptions) {
		o.full = true
	}
}

// URL generates a URL with the shared request state. See Request.URL.
func (r *Router) URL(u URL, opts ...URLOption) string {
	return r.buildURL(r.snapshot(), u, opts)
}

// URLString resolves a string link with the shared request state. See
// Request.URLString.
func (r *Router) URLString(link string, opts ...URLOption) string {
	return r.buildURLString(r.snapshot(), link, opts)
}

// Reverse rebuilds the URL of a parse result.
func (r *Router) Reverse(p *route.Parsed, opts ...URLOption) string {
	return r.URL(ReverseURL(p), opts...)
}

// ReverseURL converts a parse result into a URL. Named parameters become
// params; the default extension is dropped.
func ReverseURL(p *route.Parsed) URL {
	params := p.Params.Clone()
	for k, v := range p.Named {
		params[k] = v
	}
	u := URL{Params: params, Pass: slices.Clone(p.Pass)}
	if p.Ext != DefaultExtension {
		u.Ext = p.Ext
	}
	return u
}

// Normalize strips the base path, the query string, duplicate slashes and
// the trailing slash from a URL. Absolute URLs are returned unchanged.
func (r *Router) Normalize(link string) string {
	if isAbsolute(link) {
		return link
	}
	base := r.RequestPaths().Base
	if base != "" {
		link = strings.TrimPrefix(link, base)
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	link = collapseSlashes("/" + link)
	if len(link) > 1 {
		link = strings.TrimSuffix(link, "/")
	}
	return link
}

// buildURL generates a URL from u in the context of the request state req.
//
// The action defaults to the current action when the controller is
// unchanged, else to index. An active prefix carries over unless u names a
// prefix flag; a falsy flag removes its prefix. Controller and plugin
// default to the current ones. Persistent keys of each candidate route are
// copied from the request before matching it.
func (r *Router) buildURL(req requestState, u URL, opts []URLOption) string {
	var o urlOptions
	for _, opt := range opts {
		opt(&o)
	}
	r.ensureDefaults()

	current := route.Params{route.KeyPlugin: "", route.KeyController: "", route.KeyAction: "index"}
	if req.params != nil {
		for k, v := range req.params.Params {
			current[k] = v
		}
	}

	params := u.Params.Clone()
	delete(params, route.KeyPrefix)
	ext := u.Ext
	if v, ok := params["ext"]; ok {
		if ext == "" {
			ext = v
		}
		delete(params, "ext")
	}
	if params[route.KeyAction] == "" {
		if c := params[route.KeyController]; c == "" || c == current[route.KeyController] {
			params[route.KeyAction] = current[route.KeyAction]
		} else {
			params[route.KeyAction] = "index"
		}
	}

	r.mu.RLock()
	prefixes := r.prefixes
	named := r.named
	hasPrefix := slices.ContainsFunc(prefixes, params.Has)
	for _, p := range prefixes {
		switch {
		case !hasPrefix && route.Truthy(current[p]):
			params[p] = route.True
		case params.Has(p) && !route.Truthy(params[p]):
			delete(params, p)
		case params.Has(p):
			params[p] = route.True
		}
		if params.Has(p) {
			params[route.KeyAction] = strings.TrimPrefix(params[route.KeyAction], p+"_")
		}
	}
	if !params.Has(route.KeyController) {
		params[route.KeyController] = current[route.KeyController]
	}
	if !params.Has(route.KeyPlugin) {
		params[route.KeyPlugin] = current[route.KeyPlugin]
	}

	env := route.Env{Named: named}
	var (
		output   string
		template string
		matched  bool
	)
	try := func(m route.Matcher) bool {
		t := route.Target{Params: params, Pass: u.Pass}
		if keys := m.Persist(); len(keys) > 0 && req.params != nil {
			t.Params = persist(params, req.params.Params, keys)
		}
		if out, ok := m.MatchWith(env, t); ok {
			output, template, matched = strings.Trim(out, "/"), m.Template(), true
			return false
		}
		return true
	}
	r.routes.each(try)
	if !matched && r.useDefaults && r.implicit != nil {
		r.implicit.each(try)
	}
	if !matched {
		output = fallback(params, u.Pass, prefixes, named)
	}
	fullBase := r.fullBaseURL
	r.mu.RUnlock()

	if !matched {
		r.logger.Debug("no route matched url, composing fallback", "url", output)
		r.emit(DiagnosticEvent{
			Kind:    DiagURLFallback,
			Message: "no route matched url parameters",
			Fields:  map[string]any{"controller": params[route.KeyController], "action": params[route.KeyAction]},
		})
	}
	if r.observer != nil {
		r.observer.OnURL(template, !matched)
	}

	base := req.paths.Base
	if u.NoBase {
		base = ""
	}
	out := collapseSlashes(base + "/" + output)
	if u.Full || o.full {
		out = fullBase + out
	}
	if ext != "" {
		if len(out) > 1 {
			out = strings.TrimSuffix(out, "/")
		}
		out += "." + ext
	}
	return out + queryString(u.Query, o.escape) + fragment(u.Fragment)
}

// persist copies keys from the request into a copy of params unless
// params names them, including with an empty value.
func persist(params, request route.Params, keys []string) route.Params {
	out := params.Clone()
	for _, k := range keys {
		if v, ok := request[k]; ok && !out.Has(k) {
			out[k] = v
		}
	}
	return out
}

// fallback composes /prefix/plugin/controller/action/pass.../named... from
// params. Named parameters follow the rule order, then the remaining keys
// in lexical order. Empty values are dropped.
func fallback(params route.Params, pass, prefixes []string, named route.NamedConfig) string {
	skip := map[string]struct{}{
		"bare": {}, route.KeyAction: {}, route.KeyController: {}, route.KeyPlugin: {}, route.KeyPrefix: {},
	}
	for _, p := range prefixes {
		skip[p] = struct{}{}
	}

	var keys []string
	for k, v := range params {
		if _, ok := skip[k]; ok || v == "" || strings.HasPrefix(k, "[") {
			continue
		}
		keys = append(keys, k)
	}
	order := make(map[string]int, len(named.Rules))
	for i, rule := range named.Rules {
		order[rule.Name] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iRule := order[keys[i]]
		oj, jRule := order[keys[j]]
		switch {
		case iRule && jRule:
			return oi < oj
		case iRule != jRule:
			return iRule
		default:
			return keys[i] < keys[j]
		}
	})

	var args []string
	for _, v := range pass {
		if v != "" {
			args = append(args, v)
		}
	}

	action := params[route.KeyAction]
	var prefix string
	for _, p := range prefixes {
		if route.Truthy(params[p]) {
			prefix = p
			action = strings.TrimPrefix(action, p+"_")
			break
		}
	}
	if len(keys) == 0 && len(args) == 0 && action == "index" {
		action = ""
	}

	var parts []string
	for _, part := range []string{prefix, params[route.KeyPlugin], params[route.KeyController], action} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	parts = append(parts, args...)
	sep := named.Separator
	if sep == "" {
		sep = route.DefaultSeparator
	}
	for _, k := range keys {
		parts = append(parts, k+sep+params[k])
	}
	return strings.Join(parts, "/")
}

// buildURLString resolves a string link.
//
// Absolute links and fragments are returned unchanged, "" is the current
// path, "/x" is x under the base path, and a relative link is resolved
// under the current prefix, plugin and controller.
func (r *Router) buildURLString(req requestState, link string, opts []URLOption) string {
	var o urlOptions
	for _, opt := range opts {
		opt(&o)
	}
	if isAbsolute(link) || strings.HasPrefix(link, "#") {
		return link
	}

	var out string
	switch {
	case link == "":
		out = req.paths.Here
		if out == "" {
			out = "/"
		}
	case strings.HasPrefix(link, "/"):
		out = req.paths.Base + link
	default:
		var current route.Params
		if req.params != nil {
			current = req.params.Params
		}
		var b strings.Builder
		b.WriteString(req.paths.Base)
		b.WriteByte('/')
		for _, p := range r.Prefixes() {
			if route.Truthy(current[p]) {
				b.WriteString(p + "/")
				break
			}
		}
		if plugin := current[route.KeyPlugin]; plugin != "" && plugin != current[route.KeyController] {
			b.WriteString(strcase.ToSnake(plugin) + "/")
		}
		if controller := current[route.KeyController]; controller != "" {
			b.WriteString(strcase.ToSnake(controller) + "/")
		}
		b.WriteString(link)
		out = b.String()
	}
	out = collapseSlashes(out)

	if o.full {
		r.mu.RLock()
		out = r.fullBaseURL + out
		r.mu.RUnlock()
	}
	return out
}

func isAbsolute(link string) bool {
	return strings.Contains(link, "://") ||
		strings.HasPrefix(link, "mailto:") ||
		strings.HasPrefix(link, "javascript:")
}

func collapseSlashes(s string) string {
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return s
}

func queryString(q url.Values, escape bool) string {
	if len(q) == 0 {
		return ""
	}
	out := q.Encode()
	if escape {
		out = strings.ReplaceAll(out, "&", "&amp;")
	}
	return "?" + out
}

func fragment(f string) string {
	if f == "" {
		return ""
	}
	return "#" + url.QueryEscape(f)
}
