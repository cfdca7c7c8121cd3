package services

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

var (
	catalogMetricsMu      sync.Mutex
	catalogMetricsEnabled bool
	membershipCounter     metric.Int64Counter
	syncOutcomeCounter    metric.Int64Counter
	propagationCounter    metric.Int64Counter
)

const (
	membershipMetricName  = "library_membership_actions_total"
	syncOutcomeMetricName = "library_playlist_sync_total"
	propagationMetricName = "library_projection_updates_total"
)

var (
	attrAction  = attribute.Key("action")
	attrOutcome = attribute.Key("outcome")
	attrTarget  = attribute.Key("target")
)

type catalogMetrics struct{}

func newCatalogMetrics() *catalogMetrics {
	catalogMetricsMu.Lock()
	defer catalogMetricsMu.Unlock()
	if !catalogMetricsEnabled {
		initCatalogMetricsLocked()
	}
	return &catalogMetrics{}
}

func initCatalogMetricsLocked() {
	provider := otel.GetMeterProvider()
	if provider == nil {
		provider = noopmetric.NewMeterProvider()
	}
	meter := provider.Meter("lingo-services-library.services.catalog")

	var err error
	membershipCounter, err = meter.Int64Counter(membershipMetricName,
		metric.WithDescription("Videos applied to folders by membership action"))
	if err != nil {
		return
	}
	syncOutcomeCounter, err = meter.Int64Counter(syncOutcomeMetricName,
		metric.WithDescription("Playlist sync runs by outcome"))
	if err != nil {
		return
	}
	propagationCounter, err = meter.Int64Counter(propagationMetricName,
		metric.WithDescription("Embedded copies refreshed after canonical video edits"))
	if err != nil {
		return
	}
	catalogMetricsEnabled = true
}

func (m *catalogMetrics) recordMembership(ctx context.Context, counts MembershipCounts) {
	if m == nil || !catalogMetricsEnabled || membershipCounter == nil {
		return
	}
	for action, n := range map[MembershipAction]int{
		ActionInsert:   counts.Inserted,
		ActionRelocate: counts.Relocated,
		ActionRetain:   counts.Retained,
	} {
		if n == 0 {
			continue
		}
		membershipCounter.Add(ctx, int64(n), metric.WithAttributes(attrAction.String(action.String())))
	}
}

func (m *catalogMetrics) recordSync(ctx context.Context, outcome string) {
	if m == nil || !catalogMetricsEnabled || syncOutcomeCounter == nil {
		return
	}
	syncOutcomeCounter.Add(ctx, 1, metric.WithAttributes(attrOutcome.String(outcome)))
}

func (m *catalogMetrics) recordPropagation(ctx context.Context, target string, n int) {
	if m == nil || !catalogMetricsEnabled || propagationCounter == nil || n == 0 {
		return
	}
	propagationCounter.Add(ctx, int64(n), metric.WithAttributes(attrTarget.String(target)))
}
