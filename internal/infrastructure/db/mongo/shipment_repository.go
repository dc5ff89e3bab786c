package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

const shipmentCollectionPrefix = "shipments_"

// fullFetchTimeout is wider than defaultTimeout: the board pulls whole
// sector collections, not bounded pages.
const fullFetchTimeout = 30 * time.Second

// ShipmentRepository reads shipment documents from per-sector collections
// (shipments_<sector>).
type ShipmentRepository struct {
	db *mongo.Database
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// AllBySector returns every shipment in one sector, ordered by _id ascending.
// Shipment documents carry no reliable creation timestamp, so the _id is the
// deterministic order.
func (r *ShipmentRepository) AllBySector(ctx context.Context, sector string) ([]domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, fullFetchTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.collection(sector).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find shipments sector=%q: %w", sector, err)
	}
	defer cur.Close(ctx)

	var shipments []domain.Shipment
	if err := cur.All(ctx, &shipments); err != nil {
		return nil, fmt.Errorf("decode shipments sector=%q: %w", sector, err)
	}
	return shipments, nil
}

// CountBySector returns the server-side document count for one sector.
func (r *ShipmentRepository) CountBySector(ctx context.Context, sector string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.collection(sector).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count shipments sector=%q: %w", sector, err)
	}
	return n, nil
}

func (r *ShipmentRepository) collection(sector string) *mongo.Collection {
	return r.db.Collection(shipmentCollectionPrefix + sector)
}
