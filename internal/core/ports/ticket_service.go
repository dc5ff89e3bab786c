package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// TicketService exposes cross-sector ticket reads.
type TicketService interface {
	// Recent merges one bounded read per accessible sector into a single
	// list, globally re-sorted by created_at descending and truncated to
	// limit. A failing sector contributes nothing instead of failing the
	// call; an empty sector list yields an empty result without any read.
	Recent(ctx context.Context, sectors []string, limit int) ([]domain.Ticket, error)
}
