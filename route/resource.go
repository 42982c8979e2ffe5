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
	"net/http"
	"strings"
)

// ResourceOptions configures a resource route family.
type ResourceOptions struct {
	// Prefix is prepended to the resource name. Defaults to "/".
	Prefix string
	// ID constrains the :id placeholder. Defaults to PatternID.
	ID string
}

// ResourceSpec describes one route of a resource family.
type ResourceSpec struct {
	Template string
	Defaults Params
	Options  []Option
}

// resourceMap maps HTTP verbs and path shapes to actions, in priority order.
var resourceMap = []struct {
	action string
	method string
	id     bool
}{
	{action: "index", method: http.MethodGet},
	{action: "view", method: http.MethodGet, id: true},
	{action: "add", method: http.MethodPost},
	{action: "edit", method: http.MethodPut, id: true},
	{action: "delete", method: http.MethodDelete, id: true},
	{action: "edit", method: http.MethodPost, id: true},
}

// Resource returns the six routes of the REST resource name, which is used
// as both path segment and controller:
//
//	GET    /posts      index
//	GET    /posts/:id  view
//	POST   /posts      add
//	PUT    /posts/:id  edit
//	DELETE /posts/:id  delete
//	POST   /posts/:id  edit
func Resource(name string, o ResourceOptions) []ResourceSpec {
	prefix := o.Prefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	id := o.ID
	if id == "" {
		id = PatternID
	}

	specs := make([]ResourceSpec, 0, len(resourceMap))
	for _, m := range resourceMap {
		template := prefix + name
		if m.id {
			template += "/:id"
		}
		specs = append(specs, ResourceSpec{
			Template: template,
			Defaults: Params{KeyController: name, KeyAction: m.action},
			Options: []Option{
				WithClass(ClassResource),
				WithMethods(m.method),
				WithConstraint("id", id),
				WithPass("id"),
			},
		})
	}
	return specs
}

// NewResource creates a route of the resource class. It behaves like a
// plain route bound to the verbs given with WithMethods.
func NewResource(template string, defaults Params, opts ...Option) (*Route, error) {
	return build(KindResource, template, defaults, opts)
}
