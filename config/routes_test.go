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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routing/config/codec"
	"rivaas.dev/routing/route"
)

const routeTableYAML = `
extensions: [json]
named:
  defaults: true
  rules:
    - name: page
      match: "[0-9]+"
      controller: posts
resources:
  names: [Posts]
  prefix: /api
routes:
  - template: /
    defaults: {controller: pages, action: display}
    pass_defaults: [home]
  - template: /blog/:year/*
    defaults: {controller: posts, action: archive}
    constraints: {year: "[12][0-9]{3}"}
    greedy: false
  - template: /posts/:id
    defaults: {controller: posts, action: view}
    methods: [GET]
    pass: [id]
    persist: [lang]
    class: resource
`

func TestLoadRouteTable(t *testing.T) {
	t.Parallel()

	table, err := LoadRouteTable(context.Background(), WithContent([]byte(routeTableYAML), codec.TypeYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"json"}, table.Extensions)
	assert.True(t, table.Named.Defaults)
	assert.True(t, table.Named.Configured())
	require.Len(t, table.Named.Rules, 1)
	assert.Equal(t, route.NamedRule{Name: "page", Match: "[0-9]+", Controller: []string{"posts"}}, table.Named.Rules[0])
	assert.Equal(t, ResourceTable{Names: []string{"Posts"}, Prefix: "/api"}, table.Resources)

	require.Len(t, table.Routes, 3)
	home := table.Routes[0]
	assert.Equal(t, "/", home.Template)
	assert.Equal(t, route.Params{"controller": "pages", "action": "display"}, home.Params())
	assert.Equal(t, []string{"home"}, home.PassDefaults)

	blog := table.Routes[1]
	assert.Equal(t, map[string]string{"year": "[12][0-9]{3}"}, blog.Constraints)
	require.NotNil(t, blog.Greedy)
	assert.False(t, *blog.Greedy)

	view := table.Routes[2]
	assert.Equal(t, []string{"GET"}, view.Methods)
	assert.Equal(t, []string{"id"}, view.Pass)
	assert.Equal(t, []string{"lang"}, view.Persist)
	assert.Equal(t, route.ClassResource, route.Class(view.Options()...))
}

func TestRouteEntry_Options(t *testing.T) {
	t.Parallel()

	greedy := false
	e := RouteEntry{
		Template:    "/blog/:year/*",
		Defaults:    map[string]string{"controller": "posts", "action": "archive"},
		Constraints: map[string]string{"year": "[0-9]{4}"},
		Greedy:      &greedy,
	}

	r, err := route.New(e.Template, e.Params(), e.Options()...)
	require.NoError(t, err)
	assert.True(t, r.Greedy(), "template ends with a wildcard")

	p, ok := r.Parse("", "/blog/2024/a")
	require.True(t, ok)
	assert.Equal(t, "2024", p.Params["year"])

	_, ok = r.Parse("", "/blog/24")
	assert.False(t, ok)
}

func TestLoadRouteTable_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routes.toml")
	doc := `
[[routes]]
template = "/pages/*"
defaults = { controller = "pages", action = "display" }
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	table, err := LoadRouteTable(context.Background(), WithFile(path))
	require.NoError(t, err)
	require.Len(t, table.Routes, 1)
	assert.Equal(t, "/pages/*", table.Routes[0].Template)
	assert.Equal(t, "display", table.Routes[0].Defaults["action"])
	assert.False(t, table.Named.Configured())
}

func TestRouteTable_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   RouteTable
		field   string
		wantErr error
	}{
		{
			name:    "missing template",
			table:   RouteTable{Routes: []RouteEntry{{Template: "/"}, {}}},
			field:   "routes[1]",
			wantErr: ErrMissingTemplate,
		},
		{
			name:    "duplicate placeholder",
			table:   RouteTable{Routes: []RouteEntry{{Template: "/:id/:id"}}},
			field:   "routes[0]",
			wantErr: route.ErrInvalidTemplate,
		},
		{
			name:    "unknown class",
			table:   RouteTable{Routes: []RouteEntry{{Template: "/", Class: "missing"}}},
			field:   "routes[0]",
			wantErr: route.ErrUnknownClass,
		},
		{
			name:    "route named rule without name",
			table:   RouteTable{Routes: []RouteEntry{{Template: "/", Named: []route.NamedRule{{Match: "x"}}}}},
			field:   "routes[0].named",
			wantErr: route.ErrInvalidNamedRule,
		},
		{
			name:    "global named rule with bad pattern",
			table:   RouteTable{Named: NamedTable{Rules: []route.NamedRule{{Name: "page", Match: "("}}}},
			field:   "named.rules[0]",
			wantErr: route.ErrInvalidNamedRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.table.Validate()
			require.ErrorIs(t, err, tt.wantErr)
			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
