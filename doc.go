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

// Package routing provides a bidirectional router that maps request paths to
// controller/action parameters and generates URLs back from parameters.
//
// Routes are tried in the order they were connected. The first route that
// parses a path wins, and the first route that matches a set of parameters
// produces the URL. When no user route applies, implicit default routes are
// tried: plugin shortcuts, prefix routes and the /:controller/:action/*
// catch-all.
//
// # Quick Start
//
//	r := routing.MustNew(routing.WithSettings(routing.StaticSettings{AdminPrefix: "admin"}))
//	r.MustConnect("/", route.Params{"controller": "pages", "action": "display"},
//		route.WithPassDefaults("home"))
//	r.MustConnect("/blog/:year/:slug", route.Params{"controller": "posts", "action": "view"},
//		route.WithConstraintKind("year", route.ConstraintYear),
//		route.WithPass("slug"))
//
//	p, err := r.Parse("/blog/2024/hello")
//	// p.Params: controller=posts action=view year=2024 slug=hello; p.Pass: [hello]
//
//	link := r.URL(routing.URL{Params: route.Params{"controller": "posts", "action": "view", "year": "2024"},
//		Pass: []string{"hello"}})
//	// link: /blog/2024/hello
//
// # Request context
//
// URL generation resolves missing controller, action, plugin and prefix from
// the current request. A server handling concurrent requests creates one
// Request per request with ForRequest; SetRequestInfo stores a single
// request context on the router itself.
//
// # Prefixes
//
// A prefix such as admin maps /admin/users/edit to controller users with
// action admin_edit. While a prefixed request is active, generated URLs keep
// the prefix unless the parameters name a prefix flag:
//
//	rq.URL(routing.URL{Params: route.Params{"admin": ""}}) // leaves admin
//
// # Named parameters
//
// Segments of the form key:value become named parameters when the
// named-parameter configuration accepts the key. See ConnectNamed.
package routing
