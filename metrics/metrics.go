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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "rivaas.dev/routing"

// Provider selects where metrics are exported.
type Provider string

const (
	// PrometheusProvider exposes metrics through Handler.
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP/HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints metrics, for development.
	StdoutProvider Provider = "stdout"
	// CustomProvider uses a MeterProvider supplied with WithMeterProvider.
	CustomProvider Provider = "custom"
)

// ErrNoHandler is returned by Handler for providers other than Prometheus.
var ErrNoHandler = errors.New("metrics handler is only available with the prometheus provider")

// DefaultDurationBuckets are the parse duration buckets in seconds.
var DefaultDurationBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

// Recorder records routing metrics. It is safe for concurrent use.
type Recorder struct {
	provider         Provider
	providerSetCount int
	meterProvider    metric.MeterProvider
	sdkProvider      *sdkmetric.MeterProvider // nil for custom providers
	registry         *promclient.Registry
	handler          http.Handler
	logger           *slog.Logger

	parseTotal    metric.Int64Counter
	parseDuration metric.Float64Histogram
	urlTotal      metric.Int64Counter

	serviceName     string
	serviceVersion  string
	otlpEndpoint    string
	stdout          io.Writer
	exportInterval  time.Duration
	durationBuckets []float64
	registerGlobal  bool
	common          []attribute.KeyValue
}

// New returns a Recorder. The default provider is Prometheus.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:        PrometheusProvider,
		serviceName:     "routing",
		serviceVersion:  "unknown",
		exportInterval:  30 * time.Second,
		durationBuckets: DefaultDurationBuckets,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := r.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	r.common = []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	}
	return r, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize metrics: %v", err))
	}
	return r
}

func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return errors.New("conflicting provider options: only one of WithPrometheus, WithOTLP, WithStdout or WithMeterProvider can be used")
	}
	if r.serviceName == "" {
		return errors.New("service name cannot be empty")
	}
	if r.exportInterval <= 0 {
		return errors.New("export interval must be positive")
	}
	switch r.provider {
	case PrometheusProvider, StdoutProvider, CustomProvider:
	case OTLPProvider:
		if r.otlpEndpoint == "" {
			r.otlpEndpoint = "http://localhost:4318"
		}
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
	return nil
}

func (r *Recorder) initializeProvider() error {
	switch r.provider {
	case CustomProvider:
		if r.meterProvider == nil {
			return errors.New("custom meter provider is nil")
		}
		return nil
	case PrometheusProvider:
		r.registry = promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	case OTLPProvider:
		endpoint, insecure := splitEndpoint(r.otlpEndpoint)
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(context.Background(), opts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)),
		))
	case StdoutProvider:
		var opts []stdoutmetric.Option
		if r.stdout != nil {
			opts = append(opts, stdoutmetric.WithWriter(r.stdout))
		}
		exporter, err := stdoutmetric.New(opts...)
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)),
		))
	}

	r.meterProvider = r.sdkProvider
	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}
	r.logger.Debug("metrics provider initialized", "provider", r.provider)
	return nil
}

// splitEndpoint strips the scheme and path of an OTLP endpoint URL and
// reports whether it used plain HTTP.
func splitEndpoint(endpoint string) (string, bool) {
	insecure := strings.HasPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
	if i := strings.IndexByte(endpoint, '/'); i >= 0 {
		endpoint = endpoint[:i]
	}
	return endpoint, insecure
}

func (r *Recorder) initializeMetrics() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	r.parseTotal, err = meter.Int64Counter(
		"routing.parse.total",
		metric.WithDescription("Number of parsed paths"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse counter: %w", err)
	}

	r.parseDuration, err = meter.Float64Histogram(
		"routing.parse.duration",
		metric.WithDescription("Duration of path parsing"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse duration histogram: %w", err)
	}

	r.urlTotal, err = meter.Int64Counter(
		"routing.url.total",
		metric.WithDescription("Number of generated URLs"),
	)
	if err != nil {
		return fmt.Errorf("failed to create url counter: %w", err)
	}
	return nil
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.handler == nil {
		return nil, ErrNoHandler
	}
	return r.handler, nil
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ServiceName returns the service name attached to every measurement.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// ForceFlush exports pending measurements.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	return r.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the provider owned by the recorder. A
// caller-supplied MeterProvider is left running.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	return nil
}
