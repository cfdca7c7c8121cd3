package youtube

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "lingo-services-library.youtube"

type metrics struct {
	callCounter     metric.Int64Counter
	latency         metric.Float64Histogram
	cacheHitCounter metric.Int64Counter
}

func newMetrics() *metrics {
	m := otel.GetMeterProvider().Meter(meterName)
	callCounter, _ := m.Int64Counter("library_youtube_calls_total",
		metric.WithDescription("YouTube Data API calls by operation and result"))
	latency, _ := m.Float64Histogram("library_youtube_call_latency_ms",
		metric.WithDescription("YouTube Data API call latency"),
		metric.WithUnit("ms"))
	cacheHit, _ := m.Int64Counter("library_youtube_cache_hits_total")
	return &metrics{callCounter: callCounter, latency: latency, cacheHitCounter: cacheHit}
}

func (m *metrics) record(ctx context.Context, op string, started time.Time, err error) {
	if m == nil || m.callCounter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", errorKind(err)),
	)
	m.callCounter.Add(ctx, 1, attrs)
	if m.latency != nil {
		m.latency.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)
	}
}

func (m *metrics) recordCacheHit(ctx context.Context) {
	if m == nil || m.cacheHitCounter == nil {
		return
	}
	m.cacheHitCounter.Add(ctx, 1)
}
