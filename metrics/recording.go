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

package metrics

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatched is the template attribute of paths no route parsed.
const unmatched = "none"

// OnParse records a parse attempt.
func (r *Recorder) OnParse(template string, matched bool, elapsed time.Duration) {
	if template == "" {
		template = unmatched
	}
	ctx := context.Background()
	r.parseTotal.Add(ctx, 1, r.attributes(
		attribute.String("route.template", template),
		attribute.Bool("matched", matched),
	))
	r.parseDuration.Record(ctx, elapsed.Seconds(), r.attributes(attribute.Bool("matched", matched)))
}

// OnURL records a generated URL. Fallback URLs have no template.
func (r *Recorder) OnURL(template string, fallback bool) {
	if template == "" {
		template = unmatched
	}
	r.urlTotal.Add(context.Background(), 1, r.attributes(
		attribute.String("route.template", template),
		attribute.Bool("fallback", fallback),
	))
}

func (r *Recorder) attributes(kv ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(slices.Concat(r.common, kv)...)
}
