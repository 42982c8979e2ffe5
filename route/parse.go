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

import "strings"

// ParseWith parses path. It reports false when the route does not apply.
//
// Captured keys are merged over the defaults, the wildcard region is split
// into positional and named arguments, keys listed by WithPass are moved to
// the front of the positional arguments, and a prefix turns the action into
// <prefix>_<action>.
func (r *Route) ParseWith(env Env, method, path string) (*Parsed, bool) {
	c, err := r.load()
	if err != nil {
		return nil, false
	}
	m := c.re.FindStringSubmatchIndex(path)
	if m == nil || !r.allowsMethod(method) {
		return nil, false
	}

	params := make(Params, len(c.keys)+len(r.defaults)+1)
	for i, key := range c.keys {
		if v := group(path, m, i+1); v != "" {
			params[key] = v
		} else {
			params[key] = r.defaults[key]
		}
	}
	for k, v := range r.defaults {
		if _, ok := params[k]; !ok {
			params[k] = v
		}
	}
	if len(r.set.methods) > 0 {
		params[KeyMethod] = strings.ToUpper(method)
	}

	out := &Parsed{
		Params: params,
		Pass:   append([]string{}, r.set.passDefaults...),
		Named:  make(map[string]string),
		Route:  r.template,
	}

	if c.greedy {
		if args := group(path, m, len(c.keys)+1); args != "" {
			pass, named := r.scope(env.Named).split(args, params[KeyController], params[KeyAction])
			out.Pass = append(out.Pass, pass...)
			out.Named = named
		}
	}

	if len(r.set.pass) > 0 {
		lead := make([]string, 0, len(r.set.pass)+len(out.Pass))
		for _, k := range r.set.pass {
			if v := params[k]; v != "" {
				lead = append(lead, v)
			}
		}
		out.Pass = append(lead, out.Pass...)
	}

	if r.kind == KindPluginShort {
		params[KeyController] = params[KeyPlugin]
	}
	if prefix := params[KeyPrefix]; prefix != "" {
		params[KeyAction] = prefix + "_" + params[KeyAction]
	}
	return out, true
}
