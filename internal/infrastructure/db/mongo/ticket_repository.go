package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

const ticketCollectionPrefix = "tickets_"

// TicketRepository reads ticket documents from per-sector collections
// (tickets_<sector>). Every method touches exactly one partition.
type TicketRepository struct {
	db *mongo.Database
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{db: db}
}

// RecentBySector returns up to limit tickets from one sector, ordered by
// created_at descending (ties by _id descending for a stable page).
func (r *TicketRepository) RecentBySector(ctx context.Context, sector string, limit int) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.collection(sector).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets sector=%q: %w", sector, err)
	}
	defer cur.Close(ctx)

	var tickets []domain.Ticket
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets sector=%q: %w", sector, err)
	}
	return tickets, nil
}

// CountBySector returns the server-side document count for one sector.
func (r *TicketRepository) CountBySector(ctx context.Context, sector string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.collection(sector).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tickets sector=%q: %w", sector, err)
	}
	return n, nil
}

func (r *TicketRepository) collection(sector string) *mongo.Collection {
	return r.db.Collection(ticketCollectionPrefix + sector)
}
