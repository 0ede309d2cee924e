// Package metrics provides Prometheus counters for the preference sync pipeline.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels.
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeError   = "error"
	OutcomeOK      = "ok"
	OutcomeSkipped = "skipped"
)

// Metrics groups the pipeline counters on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	remoteFetches      *prometheus.CounterVec
	remoteUpserts      *prometheus.CounterVec
	remoteDuration     *prometheus.HistogramVec
	navigations        *prometheus.CounterVec
	debounceCoalesced  prometheus.Counter
	cacheErrors        *prometheus.CounterVec
	syncPolicyResolved *prometheus.CounterVec
}

// New creates the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		remoteFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewsync_remote_fetches_total",
				Help: "Remote view preference fetches by outcome",
			},
			[]string{"outcome"},
		),
		remoteUpserts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewsync_remote_upserts_total",
				Help: "Remote view preference upserts by outcome",
			},
			[]string{"outcome"},
		),
		remoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "viewsync_remote_request_duration_seconds",
				Help:    "Duration of remote preference requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewsync_navigations_total",
				Help: "Navigation resolutions by result",
			},
			[]string{"result"},
		),
		debounceCoalesced: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "viewsync_debounce_coalesced_total",
				Help: "Scheduled writes superseded before their quiet period elapsed",
			},
		),
		cacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewsync_cache_errors_total",
				Help: "Swallowed local cache errors by operation",
			},
			[]string{"op"},
		),
		syncPolicyResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewsync_sync_policy_resolutions_total",
				Help: "Sync policy resolutions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remoteFetches.WithLabelValues(outcome).Inc()
	m.remoteDuration.WithLabelValues("fetch").Observe(elapsed.Seconds())
}

func (m *Metrics) RecordUpsert(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remoteUpserts.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped {
		m.remoteDuration.WithLabelValues("upsert").Observe(elapsed.Seconds())
	}
}

// NavigationCommitted counts a resolution that reached the store.
func (m *Metrics) NavigationCommitted() {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues("committed").Inc()
}

// NavigationDiscarded counts a resolution superseded by a newer one.
func (m *Metrics) NavigationDiscarded() {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues("discarded").Inc()
}

func (m *Metrics) DebounceCoalesced() {
	if m == nil {
		return
	}
	m.debounceCoalesced.Inc()
}

func (m *Metrics) CacheError(op string) {
	if m == nil {
		return
	}
	m.cacheErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) SyncPolicyResolved(outcome string) {
	if m == nil {
		return
	}
	m.syncPolicyResolved.WithLabelValues(outcome).Inc()
}

// WriteText writes every collected family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
