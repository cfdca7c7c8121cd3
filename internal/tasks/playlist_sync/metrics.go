package playlistsync

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "lingo-services-library.playlist_sync"

type metrics struct {
	playlistCounter metric.Int64Counter
	passDuration    metric.Int64Histogram
}

func newMetrics(m metric.Meter) *metrics {
	if m == nil {
		m = otel.GetMeterProvider().Meter(meterName)
	}
	playlistCounter, _ := m.Int64Counter("library_playlist_sync_task_playlists_total")
	passDuration, _ := m.Int64Histogram("library_playlist_sync_task_pass_ms", metric.WithUnit("ms"))
	return &metrics{playlistCounter: playlistCounter, passDuration: passDuration}
}

func (m *metrics) recordPass(ctx context.Context, summary Summary, elapsed time.Duration) {
	if m == nil || m.playlistCounter == nil {
		return
	}
	m.playlistCounter.Add(ctx, int64(summary.Synced), metric.WithAttributes(attribute.String("outcome", "synced")))
	m.playlistCounter.Add(ctx, int64(summary.NothingToSync), metric.WithAttributes(attribute.String("outcome", "nothing_to_sync")))
	m.playlistCounter.Add(ctx, int64(summary.Failed), metric.WithAttributes(attribute.String("outcome", "failed")))
	if m.passDuration != nil {
		m.passDuration.Record(ctx, elapsed.Milliseconds())
	}
}
