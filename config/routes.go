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
	"errors"
	"fmt"

	"rivaas.dev/routing/route"
)

// ErrMissingTemplate is returned for a route entry without a template.
var ErrMissingTemplate = errors.New("route template is required")

// RouteTable is a declarative route table:
//
//	extensions: [json]
//	named:
//	  defaults: true
//	  rules:
//	    - name: page
//	      match: "[0-9]+"
//	resources:
//	  names: [posts, comments]
//	routes:
//	  - template: /
//	    defaults: {controller: pages, action: display}
//	    pass_defaults: [home]
//	  - template: /blog/:year/*
//	    defaults: {controller: posts, action: archive}
//	    constraints: {year: "[12][0-9]{3}"}
type RouteTable struct {
	Extensions      []string      `config:"extensions"`
	ParseExtensions bool          `config:"parse_extensions"`
	Defaults        *bool         `config:"defaults"`
	Named           NamedTable    `config:"named"`
	Resources       ResourceTable `config:"resources"`
	Routes          []RouteEntry  `config:"routes"`
}

// NamedTable configures named parameters.
type NamedTable struct {
	Rules     []route.NamedRule `config:"rules"`
	Defaults  bool              `config:"defaults"`
	Reset     bool              `config:"reset"`
	Greedy    *bool             `config:"greedy"`
	Separator string            `config:"separator"`
	Disabled  bool              `config:"disabled"`
}

// Configured reports whether the table changes the named configuration.
func (n NamedTable) Configured() bool {
	return len(n.Rules) > 0 || n.Defaults || n.Reset || n.Greedy != nil || n.Separator != "" || n.Disabled
}

// ResourceTable lists REST resources.
type ResourceTable struct {
	Names  []string `config:"names"`
	Prefix string   `config:"prefix"`
	ID     string   `config:"id"`
}

// RouteEntry describes one route.
type RouteEntry struct {
	Template     string            `config:"template"`
	Defaults     map[string]string `config:"defaults"`
	Constraints  map[string]string `config:"constraints"`
	Pass         []string          `config:"pass"`
	PassDefaults []string          `config:"pass_defaults"`
	Persist      []string          `config:"persist"`
	Methods      []string          `config:"methods"`
	Class        string            `config:"class"`
	Greedy       *bool             `config:"greedy"`
	Named        []route.NamedRule `config:"named"`
}

// Params returns the defaults as route parameters.
func (e RouteEntry) Params() route.Params {
	p := make(route.Params, len(e.Defaults))
	for k, v := range e.Defaults {
		p[k] = v
	}
	return p
}

// Options returns the route options of the entry.
func (e RouteEntry) Options() []route.Option {
	var opts []route.Option
	for k, v := range e.Constraints {
		opts = append(opts, route.WithConstraint(k, v))
	}
	if len(e.Pass) > 0 {
		opts = append(opts, route.WithPass(e.Pass...))
	}
	if len(e.PassDefaults) > 0 {
		opts = append(opts, route.WithPassDefaults(e.PassDefaults...))
	}
	if len(e.Persist) > 0 {
		opts = append(opts, route.WithPersist(e.Persist...))
	}
	if len(e.Methods) > 0 {
		opts = append(opts, route.WithMethods(e.Methods...))
	}
	if e.Class != "" {
		opts = append(opts, route.WithClass(e.Class))
	}
	if e.Greedy != nil {
		opts = append(opts, route.WithGreedy(*e.Greedy))
	}
	if len(e.Named) > 0 {
		opts = append(opts, route.WithNamed(e.Named...))
	}
	return opts
}

// Validate checks templates, classes and named rules.
func (t *RouteTable) Validate() error {
	var errs []error
	for i, e := range t.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if e.Template == "" {
			errs = append(errs, NewFieldError("routes", field, "validate", ErrMissingTemplate))
			continue
		}
		if _, err := route.ParseTemplate(e.Template); err != nil {
			errs = append(errs, NewFieldError("routes", field, "validate", err))
		}
		if e.Class != "" {
			if _, err := route.Lookup(e.Class); err != nil {
				errs = append(errs, NewFieldError("routes", field, "validate", err))
			}
		}
		for _, rule := range e.Named {
			if err := rule.Validate(); err != nil {
				errs = append(errs, NewFieldError("routes", field+".named", "validate", err))
			}
		}
	}
	for i, rule := range t.Named.Rules {
		if err := rule.Validate(); err != nil {
			errs = append(errs, NewFieldError("routes", fmt.Sprintf("named.rules[%d]", i), "validate", err))
		}
	}
	return errors.Join(errs...)
}

// LoadRouteTable loads and validates a route table from the sources of
// opts.
func LoadRouteTable(ctx context.Context, opts ...Option) (*RouteTable, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err = c.Load(ctx); err != nil {
		return nil, err
	}

	var t RouteTable
	if err = c.Decode("", &t); err != nil {
		return nil, err
	}
	if err = t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
