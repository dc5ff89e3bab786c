package ports

import (
	"context"
	"time"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// Metric is one dashboard figure: the live count and its signed change
// against the latest snapshot baseline.
//
// Live is nil when the count could not be computed at all. Delta is nil
// exactly when Live is nil; with a live value but no baseline the delta is 0
// by convention ("no baseline" renders as "no change", not as unknown).
type Metric struct {
	Live  *int64 `json:"live"`
	Delta *int64 `json:"delta"`
}

// Overview is the dashboard headline: per-metric live counts and deltas,
// plus the timestamp of the baseline snapshot when one exists.
type Overview struct {
	Tickets    Metric     `json:"tickets"`
	Shipments  Metric     `json:"shipments"`
	Clients    Metric     `json:"clients"`
	SnapshotAt *time.Time `json:"snapshot_at,omitempty"`
}

// StatsService computes dashboard aggregates and records snapshot baselines.
type StatsService interface {
	Overview(ctx context.Context, sectors []string) (*Overview, error)
	// RecordSnapshot persists today's aggregate counts over the given
	// sectors as an immutable snapshot.
	RecordSnapshot(ctx context.Context, sectors []string) (*domain.StatsSnapshot, error)
}
