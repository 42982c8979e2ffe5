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

package config

import (
	"context"
	"slices"
)

// RoutingSchema validates the routing keys of an application config.
const RoutingSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "routing": {
      "type": "object",
      "properties": {
        "admin": {"type": "string", "pattern": "^[^/?#]*$"},
        "prefixes": {
          "oneOf": [
            {"type": "string"},
            {"type": "array", "items": {"type": "string", "pattern": "^[^/?#]+$"}}
          ]
        },
        "extensions": {
          "oneOf": [
            {"type": "string"},
            {"type": "array", "items": {"type": "string", "pattern": "^[0-9A-Za-z]+$"}}
          ]
        }
      }
    },
    "app": {
      "type": "object",
      "properties": {
        "plugins": {"oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}]},
        "base": {"type": "string"},
        "fullbaseurl": {"type": "string"}
      }
    }
  }
}`

// Routing holds the routing settings of an application:
//
//	routing:
//	  admin: admin
//	  prefixes: [api]
//	  extensions: [json, xml]
//	app:
//	  plugins: [blog]
//	  base: /shop
//	  fullbaseurl: https://example.com
//
// It serves as the router's prefix settings and plugin registry.
type Routing struct {
	Routing struct {
		Admin      string   `config:"admin"`
		Prefixes   []string `config:"prefixes"`
		Extensions []string `config:"extensions"`
	} `config:"routing"`
	App struct {
		Plugins     []string `config:"plugins"`
		Base        string   `config:"base"`
		FullBaseURL string   `config:"fullbaseurl"`
	} `config:"app"`
}

// LoadRouting loads the routing settings from the sources of opts,
// validated against RoutingSchema.
func LoadRouting(ctx context.Context, opts ...Option) (*Routing, error) {
	c, err := New(append(slices.Clone(opts), WithJSONSchema([]byte(RoutingSchema)))...)
	if err != nil {
		return nil, err
	}
	if err = c.Load(ctx); err != nil {
		return nil, err
	}
	return RoutingFrom(c)
}

// RoutingFrom binds the routing settings of a loaded Config.
func RoutingFrom(c *Config) (*Routing, error) {
	var r Routing
	if err := c.Decode("", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Admin returns the admin prefix.
func (r *Routing) Admin() string { return r.Routing.Admin }

// Prefixes returns the additional prefixes.
func (r *Routing) Prefixes() []string { return slices.Clone(r.Routing.Prefixes) }

// Plugins returns the installed plugins.
func (r *Routing) Plugins() []string { return slices.Clone(r.App.Plugins) }

// Extensions returns the extensions to parse.
func (r *Routing) Extensions() []string { return slices.Clone(r.Routing.Extensions) }

// Base returns the base path the application is mounted under.
func (r *Routing) Base() string { return r.App.Base }

// FullBaseURL returns the scheme and host prepended to full URLs.
func (r *Routing) FullBaseURL() string { return r.App.FullBaseURL }
