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

// NewPluginShort creates a plugin shortcut route. Its template is expected
// to hold a :plugin placeholder constrained to the known plugin names:
//
//	route.NewPluginShort("/:plugin", route.Params{"action": "index"},
//		route.WithConstraint("plugin", "forums|blog"))
//
// Parsing sets the controller to the plugin. Matching refuses a target whose
// controller differs from its plugin.
func NewPluginShort(template string, defaults Params, opts ...Option) (*Route, error) {
	return build(KindPluginShort, template, defaults, opts)
}
