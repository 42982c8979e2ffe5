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
	"strings"
)

// Reserved parameter names.
const (
	KeyPlugin     = "plugin"
	KeyController = "controller"
	KeyAction     = "action"
	KeyPrefix     = "prefix"
	KeyMethod     = "[method]"
)

// True is the canonical value of a set flag parameter, such as a prefix flag.
const True = "1"

// Params maps parameter names to values.
//
// A key present with an empty value is an explicit null: it overrides
// inherited and persisted values. An absent key inherits.
type Params map[string]string

// Clone returns a copy of p. Cloning a nil Params returns an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Has reports whether key is present, including with an empty value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Truthy reports whether s sets a flag.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// Parsed is the result of parsing a path.
type Parsed struct {
	Params Params            // captured keys merged over defaults
	Pass   []string          // positional arguments, in path order
	Named  map[string]string // key:value arguments
	Ext    string            // extension stripped from the path, if any
	Route  string            // template of the route that produced the result
}

// Controller returns the parsed controller.
func (p *Parsed) Controller() string { return p.Params[KeyController] }

// Action returns the parsed action.
func (p *Parsed) Action() string { return p.Params[KeyAction] }

// Plugin returns the parsed plugin.
func (p *Parsed) Plugin() string { return p.Params[KeyPlugin] }

// Clone returns a deep copy of p.
func (p *Parsed) Clone() *Parsed {
	if p == nil {
		return nil
	}
	return &Parsed{
		Params: p.Params.Clone(),
		Pass:   slices.Clone(p.Pass),
		Named:  maps.Clone(p.Named),
		Ext:    p.Ext,
		Route:  p.Route,
	}
}

// Target is the input of reverse matching.
type Target struct {
	Params Params
	Pass   []string
}

// NamedPair is a named argument in emission order.
type NamedPair struct {
	Key   string
	Value string
}
