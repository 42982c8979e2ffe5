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
	"fmt"
	"sync"
)

// Built-in route classes.
const (
	ClassDefault     = "route"
	ClassPluginShort = "plugin_short"
	ClassResource    = "resource"
)

// Factory creates a route of a class.
type Factory func(template string, defaults Params, opts ...Option) (Matcher, error)

var factories = struct {
	sync.RWMutex
	m map[string]Factory
}{m: make(map[string]Factory)}

// init registers the built-in route classes.
func init() {
	Register(ClassDefault, func(template string, defaults Params, opts ...Option) (Matcher, error) {
		return matcher(New(template, defaults, opts...))
	})
	Register(ClassPluginShort, func(template string, defaults Params, opts ...Option) (Matcher, error) {
		return matcher(NewPluginShort(template, defaults, opts...))
	})
	Register(ClassResource, func(template string, defaults Params, opts ...Option) (Matcher, error) {
		return matcher(NewResource(template, defaults, opts...))
	})
}

func matcher(r *Route, err error) (Matcher, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Register registers a factory for class, replacing any previous one.
func Register(class string, factory Factory) {
	factories.Lock()
	defer factories.Unlock()
	factories.m[class] = factory
}

// Lookup returns the factory registered for class.
func Lookup(class string) (Factory, error) {
	factories.RLock()
	defer factories.RUnlock()
	f, ok := factories.m[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return f, nil
}
