package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// ShipmentRepository defines reads over one shipment sector partition.
type ShipmentRepository interface {
	// AllBySector returns every shipment in the given sector, ordered by ID
	// ascending. Shipment documents have no reliable creation timestamp, so
	// the ID is the deterministic order. Returned shipments are not yet
	// tagged with their sector.
	AllBySector(ctx context.Context, sector string) ([]domain.Shipment, error)

	// CountBySector returns the server-side document count for one sector.
	CountBySector(ctx context.Context, sector string) (int64, error)
}
