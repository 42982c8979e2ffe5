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

// Package config loads the routing configuration of an application and its
// declarative route tables.
//
// Configuration sources are merged in order, later sources overriding
// earlier ones. Keys are case-insensitive and addressed with dots.
//
// # Sources
//
//	config.WithFile("app.yaml")                    // format from extension
//	config.WithFileAs("routes", codec.TypeTOML)    // explicit format
//	config.WithContent(data, codec.TypeJSON)       // raw content
//	config.WithEnv("APP_")                         // APP_ROUTING_ADMIN is routing.admin
//	config.WithConsul("shop/routing.yaml")         // skipped without CONSUL_HTTP_ADDR
//
// # Routing settings
//
// LoadRouting binds the routing and app keys into a Routing value, which
// the router accepts as its prefix settings and plugin registry:
//
//	settings, err := config.LoadRouting(ctx, config.WithFile("app.yaml"), config.WithEnv("APP_"))
//	if err != nil {
//	    return err
//	}
//	r, err := routing.New(routing.WithSettings(settings))
//
// # Route tables
//
// LoadRouteTable decodes routes, resources, named-parameter rules and
// extensions. The routing package applies a table with LoadRoutes.
//
// # Errors
//
// Failures are reported as *Error values naming the source, the field when
// known, and the operation.
package config
