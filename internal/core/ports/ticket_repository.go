package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// TicketRepository defines bounded reads over one sector partition at a time.
// Cross-sector merging is the service's job; each call here touches exactly
// one collection and may observe a different snapshot in time than its
// siblings.
type TicketRepository interface {
	// RecentBySector returns up to limit tickets from the given sector,
	// ordered by created_at descending. Returned tickets are not yet tagged
	// with their sector.
	RecentBySector(ctx context.Context, sector string, limit int) ([]domain.Ticket, error)

	// CountBySector returns the server-side document count for one sector.
	CountBySector(ctx context.Context, sector string) (int64, error)
}
