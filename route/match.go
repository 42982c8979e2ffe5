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
	"slices"
	"strings"
)

// MatchWith generates the path of t. It reports false when the route
// cannot produce a path for t.
func (r *Route) MatchWith(env Env, t Target) (string, bool) {
	if r.kind != KindPluginShort {
		return r.match(env, t, r.defaults)
	}

	controller, plugin := t.Params[KeyController], t.Params[KeyPlugin]
	if plugin == "" || controller != "" && controller != plugin {
		return "", false
	}
	defaults := r.defaults.Clone()
	defaults[KeyController] = controller
	return r.match(env, t, defaults)
}

func (r *Route) match(env Env, t Target, defaults Params) (string, bool) {
	c, err := r.load()
	if err != nil {
		return "", false
	}

	url := t.Params.Clone()
	if len(r.set.methods) > 0 && !r.allowsMethod(url[KeyMethod]) {
		return "", false
	}
	delete(url, KeyMethod)
	if prefix := defaults[KeyPrefix]; prefix != "" {
		url[KeyPrefix] = prefix
	}
	pass := r.bindPassKeys(url, slices.DeleteFunc(slices.Clone(t.Pass), func(v string) bool { return v == "" }))

	for _, k := range c.keys {
		if url[k] == "" && !defaults.Has(k) {
			return "", false
		}
	}

	// differs holds every key whose value is not the default, diff the
	// subset with a non-empty value.
	differs := make(map[string]struct{})
	diff := make(Params)
	for k, v := range url {
		if dv, ok := defaults[k]; !ok || dv != v {
			differs[k] = struct{}{}
			if v != "" {
				diff[k] = v
			}
		}
	}
	for k, v := range defaults {
		if _, ok := url[k]; !ok {
			differs[k] = struct{}{}
			if v != "" {
				diff[k] = v
			}
		}
	}

	for k, v := range defaults {
		if v == "" || c.isKey(k) {
			continue
		}
		if _, ok := differs[k]; ok {
			return "", false
		}
	}

	extras := make(Params)
	for k, v := range diff {
		if !c.isKey(k) {
			extras[k] = v
		}
	}

	pass, ok := r.skipPassDefaults(pass)
	if !ok {
		return "", false
	}
	if !c.greedy && (len(extras) > 0 || len(pass) > 0) {
		return "", false
	}

	scope := r.scope(env.Named)
	named, leftover := scope.elements(extras, url[KeyController], url[KeyAction])
	if len(leftover) > 0 {
		return "", false
	}

	for k, check := range c.checks {
		if v, ok := url[k]; ok && !check.MatchString(v) {
			return "", false
		}
	}
	for k, forbid := range c.forbid {
		if strings.ContainsAny(url[k], forbid) {
			return "", false
		}
	}
	if !scope.writable(pass, named, url[KeyController], url[KeyAction]) {
		return "", false
	}

	return r.write(c, env, url, defaults, pass, named), true
}

// bindPassKeys reconciles the keys listed by WithPass with the leading
// positional arguments: a missing key takes the next argument, and an
// argument repeating the key's value is consumed.
func (r *Route) bindPassKeys(url Params, pass []string) []string {
	pass = slices.Clone(pass)
	for _, k := range r.set.pass {
		if len(pass) == 0 {
			break
		}
		switch v := url[k]; {
		case v == "":
			url[k] = pass[0]
			pass = pass[1:]
		case v == pass[0]:
			pass = pass[1:]
		}
	}
	return pass
}

// skipPassDefaults removes the positional defaults from the front of pass.
// It reports false when pass does not reproduce them.
func (r *Route) skipPassDefaults(pass []string) ([]string, bool) {
	for i, v := range r.set.passDefaults {
		if i >= len(pass) {
			return nil, v == "" && allEmpty(r.set.passDefaults[i:])
		}
		if pass[i] != v {
			return nil, false
		}
	}
	return pass[min(len(r.set.passDefaults), len(pass)):], true
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// write renders the template with the values of url.
func (r *Route) write(c *compiled, env Env, url, defaults Params, pass []string, named []NamedPair) string {
	if prefix := url[KeyPrefix]; prefix != "" {
		url[KeyAction] = strings.TrimPrefix(url[KeyAction], prefix+"_")
	}

	var (
		b         strings.Builder
		dropSlash bool
	)
	for _, n := range c.nodes {
		switch n.Kind {
		case NodeLiteral:
			text := n.Value
			if dropSlash {
				text = strings.TrimPrefix(text, "/")
				dropSlash = false
			}
			b.WriteString(text)
		case NodePlaceholder:
			v := url[n.Value]
			if v == "" {
				v = defaults[n.Value]
			}
			if v == "" && n.Slashed {
				dropSlash = true
			}
			b.WriteString(v)
		case NodeWildcard:
			b.WriteByte('/')
			b.WriteString(strings.Join(pass, "/"))
			sep := env.Named.separator()
			for _, p := range named {
				b.WriteByte('/')
				b.WriteString(p.Key + sep + p.Value)
			}
		}
	}

	out := b.String()
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	if len(out) > 1 {
		out = strings.TrimSuffix(out, "/")
	}
	if out == "" {
		out = "/"
	}
	return out
}
