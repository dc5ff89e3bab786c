// Package metrics defines and registers all custom Prometheus metrics for
// the dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Geocoding metrics ─────────────────────────────────────────────────────────

// GeocodeLookupsTotal counts geocode lookups by outcome.
// Label:
//   - outcome: "cache_hit", "resolved", "not_found", "cancelled", or "error"
var GeocodeLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_lookups_total",
		Help:      "Total number of geocode lookups, by outcome.",
	},
	[]string{"outcome"},
)

// GeocodeInFlight tracks the number of external geocode calls currently
// outstanding. Non-zero means the orchestrator reports itself busy.
var GeocodeInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "geocode_in_flight",
		Help:      "Number of geocode lookups currently outstanding.",
	},
)

// GeocodeLookupDuration measures the latency of one lookup from cache check
// through external resolution.
var GeocodeLookupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geocode_lookup_duration_seconds",
		Help:      "Duration of geocode lookups, including the external call.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Sector read metrics ───────────────────────────────────────────────────────

// SectorReadFailuresTotal counts per-sector reads that degraded to empty.
// Labels:
//   - entity: "tickets" or "shipments"
//   - sector: the partition whose read failed
var SectorReadFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sector_read_failures_total",
		Help:      "Total number of per-sector reads that failed and were degraded to empty.",
	},
	[]string{"entity", "sector"},
)

// ── Snapshot metrics ──────────────────────────────────────────────────────────

// SnapshotsRecordedTotal counts successfully recorded aggregate snapshots.
var SnapshotsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_recorded_total",
		Help:      "Total number of daily aggregate snapshots recorded.",
	},
)
