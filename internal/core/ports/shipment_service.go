package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// BoardFilter carries the optional display filters for the shipment board.
type BoardFilter struct {
	// Sector filters to exactly one sector when non-empty.
	Sector string
	// Search is a case-insensitive substring matched against client name OR
	// client code. Whitespace-only input is a no-op.
	Search string
}

// ClientGroup is one group of shipments sharing a client identity key.
// Members keep their first-seen order from the fetched collection.
type ClientGroup struct {
	Key       string            `json:"key"`
	Shipments []domain.Shipment `json:"shipments"`
}

// BoardResult is the grouped, filtered shipment view plus the distinct
// sector values of the unfiltered collection (for the filter control).
type BoardResult struct {
	Groups  []ClientGroup `json:"groups"`
	Sectors []string      `json:"sectors"`
	Total   int           `json:"total"`
}

// ShipmentService exposes the client-side filter/group engine over the full
// in-memory shipment collection of the caller's accessible sectors.
type ShipmentService interface {
	Board(ctx context.Context, sectors []string, filter BoardFilter) (*BoardResult, error)
}
