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
	"context"
	"fmt"
	"slices"

	"rivaas.dev/routing/config"
	"rivaas.dev/routing/route"
)

// LoadRoutes loads a route table from the sources of opts and applies it
// to r: extensions, named-parameter rules, resources, then routes in file
// order.
//
// Example:
//
//	err := routing.LoadRoutes(ctx, r, config.WithFile("routes.yaml"))
func LoadRoutes(ctx context.Context, r *Router, opts ...config.Option) error {
	t, err := config.LoadRouteTable(ctx, opts...)
	if err != nil {
		return err
	}
	return ApplyRoutes(r, t)
}

// ApplyRoutes applies a route table to r. The whole table is checked
// first: when any part of it is invalid, r is left unchanged.
func ApplyRoutes(r *Router, t *config.RouteTable) error {
	named := namedOptions(t.Named)
	if err := checkRoutes(r, t, named); err != nil {
		return err
	}

	if t.Defaults != nil {
		r.Defaults(*t.Defaults)
	}
	if t.ParseExtensions || len(t.Extensions) > 0 {
		r.ParseExtensions(t.Extensions...)
	}

	if n := t.Named; n.Disabled {
		r.ConnectNamedDefaults(false)
	} else if n.Configured() {
		if err := r.ConnectNamed(n.Rules, named...); err != nil {
			return config.NewFieldError("routes", "named", "connect", err)
		}
	}

	if len(t.Resources.Names) > 0 {
		var opts []ResourceOption
		if t.Resources.Prefix != "" {
			opts = append(opts, WithResourcePrefix(t.Resources.Prefix))
		}
		if t.Resources.ID != "" {
			opts = append(opts, WithResourceID(t.Resources.ID))
		}
		if _, err := r.MapResources(t.Resources.Names, opts...); err != nil {
			return config.NewFieldError("routes", "resources", "connect", err)
		}
	}

	for i, e := range t.Routes {
		if _, err := r.Connect(e.Template, e.Params(), e.Options()...); err != nil {
			return config.NewFieldError("routes", fmt.Sprintf("routes[%d]", i), "connect", err)
		}
	}

	r.logger.Debug("route table applied", "routes", len(t.Routes), "resources", len(t.Resources.Names))
	return nil
}

func namedOptions(n config.NamedTable) []NamedOption {
	opts := []NamedOption{NamedSeparator(n.Separator)}
	if n.Reset {
		opts = append(opts, NamedReset())
	}
	if n.Defaults {
		opts = append(opts, NamedWithDefaults())
	}
	if n.Greedy != nil {
		opts = append(opts, NamedGreedy(*n.Greedy))
	}
	return opts
}

// checkRoutes builds everything t would add to r without adding it.
func checkRoutes(r *Router, t *config.RouteTable, named []NamedOption) error {
	if n := t.Named; !n.Disabled && n.Configured() {
		o := route.ConnectOptions{Greedy: true}
		for _, opt := range named {
			opt(&o)
		}
		if _, err := r.NamedConfig().Connect(n.Rules, o); err != nil {
			return config.NewFieldError("routes", "named", "connect", err)
		}
	}

	if slices.Contains(t.Resources.Names, "") {
		return config.NewFieldError("routes", "resources", "connect", ErrEmptyResource)
	}

	for i, e := range t.Routes {
		opts := e.Options()
		factory, err := route.Lookup(route.Class(opts...))
		if err == nil {
			_, err = factory(e.Template, e.Params(), opts...)
		}
		if err != nil {
			return config.NewFieldError("routes", fmt.Sprintf("routes[%d]", i), "connect", err)
		}
	}
	return nil
}
