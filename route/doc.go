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

// Package route provides the per-route types of the routing engine: template
// parsing, regex compilation, parsing of request paths into parameters and
// reverse matching of parameters into paths.
//
// This package contains:
//   - Route: a compiled template with defaults, constraints and options
//   - Node: the template AST produced by ParseTemplate
//   - NamedConfig: rules deciding which key:value segments are named
//   - Factories: the registry of route classes (route, plugin_short, resource)
//
// # Templates
//
// A template is made of literal text, placeholders and an optional trailing
// greedy wildcard:
//
//	/posts/:id/:slug
//	/:year-:month-:day/*
//	/archive/:year/:month
//
// Placeholders may be constrained with a regular expression. A constrained
// placeholder that also has a default becomes optional:
//
//	r, err := route.New("/:lang/pages/:action", route.Params{"lang": "en", "controller": "pages"},
//		route.WithConstraint("lang", "en|fr|de"))
//
// # Parsing and matching
//
// Parse turns a path into a Parsed value. Match is its inverse and turns a
// Target back into a path, or reports false when the route cannot produce
// one:
//
//	p, ok := r.Parse("GET", "/fr/pages/view/intro")
//	path, ok := r.Match(route.Target{Params: p.Params, Pass: p.Pass})
//
// Neither operation returns an error: a route that does not apply is the
// normal case and the caller tries the next route.
package route
