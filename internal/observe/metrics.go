// Package observe provides observability primitives for the investor data
// server: OpenTelemetry metric instruments and the Prometheus exporter bridge
// that makes them scrapeable via the admin listener's /metrics endpoint.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is provided
// for convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/iamfaham/investor-data-mcp"

// Metrics holds all OpenTelemetry metric instruments for the server.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// ToolDuration tracks end-to-end tool handler latency. Use with
	// attribute.String("tool", ...).
	ToolDuration metric.Float64Histogram

	// FetchDuration tracks remote table fetch latency. Use with
	// attribute.String("backend", ...).
	FetchDuration metric.Float64Histogram

	// ToolCalls counts tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// FetchErrors counts failed table fetches by backend.
	FetchErrors metric.Int64Counter

	// RowsFetched counts rows returned by the table store.
	RowsFetched metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote-fetch-bound request latencies.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ToolDuration, err = m.Float64Histogram("investormcp.tool.duration",
		metric.WithDescription("Latency of MCP tool handlers."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.FetchDuration, err = m.Float64Histogram("investormcp.fetch.duration",
		metric.WithDescription("Latency of remote table fetches."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ToolCalls, err = m.Int64Counter("investormcp.tool.calls",
		metric.WithDescription("Total tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.FetchErrors, err = m.Int64Counter("investormcp.fetch.errors",
		metric.WithDescription("Total failed table fetches by backend."),
	); err != nil {
		return nil, err
	}
	if met.RowsFetched, err = m.Int64Counter("investormcp.fetch.rows",
		metric.WithDescription("Total rows returned by the table store."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordToolCall records one completed tool call: a counter increment and
// its wall-clock duration.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolDuration.Record(ctx, seconds, attrs)
}

// RecordFetch records one table fetch: its latency, its row count, and on
// failure an error increment.
func (m *Metrics) RecordFetch(ctx context.Context, backend string, seconds float64, rows int, failed bool) {
	attrs := metric.WithAttributes(attribute.String("backend", backend))
	m.FetchDuration.Record(ctx, seconds, attrs)
	if failed {
		m.FetchErrors.Add(ctx, 1, attrs)
		return
	}
	m.RowsFetched.Add(ctx, int64(rows), attrs)
}
