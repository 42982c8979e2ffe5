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

import "errors"

var (
	// ErrNoMatch indicates that no route parses a path.
	ErrNoMatch = errors.New("no route matches")

	// ErrInvalidFullBaseURL indicates that the full base URL is not an absolute URL.
	ErrInvalidFullBaseURL = errors.New("full base URL must be absolute")

	// ErrInvalidPrefix indicates that a prefix name contains a path, query or fragment separator.
	ErrInvalidPrefix = errors.New("invalid prefix name")

	// ErrEmptyResource indicates that a resource name is empty.
	ErrEmptyResource = errors.New("resource name is empty")
)
