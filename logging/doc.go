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

// Package logging builds the structured loggers used by the router and the
// routes CLI on top of log/slog.
//
// # Basic Usage
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithComponent("routing"),
//	    logging.WithDebugLevel(),
//	)
//	r := routing.MustNew(routing.WithLogger(logger.Logger()))
//
// # Dynamic Log Levels
//
// SetLevel affects every *slog.Logger derived from the Logger:
//
//	logger.SetLevel(logging.LevelWarn)
//
// # Testing
//
// NewTestLogger captures records in memory:
//
//	log, captured := logging.NewTestLogger()
//	r := routing.MustNew(routing.WithLogger(log))
//	...
//	entry, ok := captured.Find("route connected")
package logging
