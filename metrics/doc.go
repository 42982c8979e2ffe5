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

// Package metrics records routing metrics with OpenTelemetry.
//
// A Recorder implements the router's Observer hooks and counts parses,
// their duration and generated URLs:
//
//	recorder := metrics.MustNew(metrics.WithPrometheus(), metrics.WithServiceName("shop"))
//	defer recorder.Shutdown(context.Background())
//
//	r := routing.MustNew(routing.WithObserver(recorder))
//	handler, _ := recorder.Handler() // serve on /metrics
//
// Instruments:
//
//	routing.parse.total     counter, attributes route.template and matched
//	routing.parse.duration  histogram in seconds, attribute matched
//	routing.url.total       counter, attributes route.template and fallback
//
// Providers are Prometheus (pull, through Handler), OTLP over HTTP, stdout
// for development, or a caller-supplied MeterProvider.
package metrics
