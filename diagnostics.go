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

// DiagnosticEvent represents a routing diagnostic.
// These are informational events that may indicate configuration issues.
//
// Diagnostic events are optional - the router functions correctly whether
// they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteConnected is emitted for every connected route.
	DiagRouteConnected DiagnosticKind = "route_connected"
	// DiagAmbiguousExtension is emitted when the last path segment has a
	// dotted suffix that is not a configured extension. The suffix is kept
	// as part of the path.
	DiagAmbiguousExtension DiagnosticKind = "ambiguous_extension"
	// DiagURLFallback is emitted when no route matches the parameters of a
	// URL and the URL is composed from them directly.
	DiagURLFallback DiagnosticKind = "url_fallback"
	// DiagDefaultsMapped is emitted when the implicit default routes are derived.
	DiagDefaultsMapped DiagnosticKind = "defaults_mapped"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, or ignore them.
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// OnDiagnostic implements DiagnosticHandler.
func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
