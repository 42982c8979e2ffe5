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
	"fmt"
	"slices"

	"github.com/iancoleman/strcase"

	"rivaas.dev/routing/route"
)

// ResourceOption configures MapResources.
type ResourceOption func(*route.ResourceOptions)

// WithResourcePrefix mounts the resources under prefix instead of "/".
func WithResourcePrefix(prefix string) ResourceOption {
	return func(o *route.ResourceOptions) {
		o.Prefix = prefix
	}
}

// WithResourceID replaces the pattern of the :id placeholder.
func WithResourceID(pattern string) ResourceOption {
	return func(o *route.ResourceOptions) {
		o.ID = pattern
	}
}

// MapResources connects a REST route family for each controller name. Names
// are underscored ("BlogPosts" maps /blog_posts). It returns every name
// mapped so far.
func (r *Router) MapResources(names []string, opts ...ResourceOption) ([]string, error) {
	var o route.ResourceOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if name == "" {
			return slices.Clone(r.resources), ErrEmptyResource
		}
		underscored := strcase.ToSnake(name)
		for _, spec := range route.Resource(underscored, o) {
			if _, err := r.connect(r.routes, spec.Template, spec.Defaults, spec.Options); err != nil {
				return slices.Clone(r.resources), fmt.Errorf("mapping resource %q: %w", name, err)
			}
		}
		r.resources = append(r.resources, underscored)
		r.logger.Debug("resource mapped", "name", underscored, "prefix", o.Prefix)
	}
	return slices.Clone(r.resources), nil
}
