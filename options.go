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

import "log/slog"

// WithLogger sets the logger. Connects, reloads, unmatched paths and URL
// fallbacks are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSettings sets the source of the admin prefix and the prefixes. When
// settings also implements PluginRegistry it is used for the plugins unless
// WithPlugins is given.
func WithSettings(settings Settings) Option {
	return func(r *Router) {
		r.settings = settings
		if reg, ok := settings.(PluginRegistry); ok && r.plugins == nil {
			r.plugins = reg
		}
	}
}

// WithPlugins sets the registry of plugins for which shortcut routes are
// derived.
func WithPlugins(registry PluginRegistry) Option {
	return func(r *Router) {
		r.plugins = registry
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Example with logging:
//
//	handler := routing.DiagnosticHandlerFunc(func(e routing.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := routing.MustNew(routing.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithObserver sets the observer notified of every parse and URL generation.
func WithObserver(observer Observer) Option {
	return func(r *Router) {
		r.observer = observer
	}
}

// WithFullBaseURL sets the scheme and host prepended to URLs generated
// with Full, such as "https://example.com".
func WithFullBaseURL(base string) Option {
	return func(r *Router) {
		r.fullBaseURL = base
	}
}
