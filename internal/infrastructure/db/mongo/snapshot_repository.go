package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

const snapshotCollection = "stats_snapshots"

// SnapshotRepository persists daily aggregate snapshots. The period key is
// the document _id, so a period can only ever be written once.
type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(snapshotCollection)}
}

// Latest returns the most recent snapshot by timestamp, or (nil, nil) when
// none has ever been recorded.
func (r *SnapshotRepository) Latest(ctx context.Context) (*domain.StatsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var snap domain.StatsSnapshot
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest snapshot: %w", err)
	}
	return &snap, nil
}

// Insert writes a new immutable snapshot.
func (r *SnapshotRepository) Insert(ctx context.Context, snap *domain.StatsSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, snap); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSnapshotExists
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}
