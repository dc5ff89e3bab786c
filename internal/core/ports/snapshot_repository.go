package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// SnapshotRepository persists periodic aggregate snapshots.
type SnapshotRepository interface {
	// Latest returns the most recent snapshot by timestamp, or (nil, nil)
	// when none has ever been recorded.
	Latest(ctx context.Context) (*domain.StatsSnapshot, error)

	// Insert writes a new immutable snapshot. Returns
	// domain.ErrSnapshotExists when the period key is already taken.
	Insert(ctx context.Context, snapshot *domain.StatsSnapshot) error
}
