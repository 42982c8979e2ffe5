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
	"errors"
	"fmt"
)

var (
	// ErrInvalidTemplate is returned when a template cannot be parsed.
	ErrInvalidTemplate = errors.New("invalid route template")
	// ErrInvalidConstraint is returned when a constraint is not a valid regular expression.
	ErrInvalidConstraint = errors.New("invalid route constraint")
	// ErrInvalidNamedRule is returned when a named rule has an invalid pattern or an empty name.
	ErrInvalidNamedRule = errors.New("invalid named parameter rule")
	// ErrUnknownClass is returned when no factory is registered for a route class.
	ErrUnknownClass = errors.New("unknown route class")
)

// ConfigError describes a route that cannot be built from its configuration.
type ConfigError struct {
	Template string // template of the offending route
	Param    string // parameter or rule name, if any
	Pattern  string // offending pattern, if any
	Err      error  // underlying error
}

// Error implements error.
func (e *ConfigError) Error() string {
	switch {
	case e.Param != "" && e.Pattern != "":
		return fmt.Sprintf("route %q: %q: pattern %q: %v", e.Template, e.Param, e.Pattern, e.Err)
	case e.Param != "":
		return fmt.Sprintf("route %q: %q: %v", e.Template, e.Param, e.Err)
	default:
		return fmt.Sprintf("route %q: %v", e.Template, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
