package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// GeocodeResult is the outcome of one batch resolution.
//
// Coordinates maps each requested normalized address to its point, or to nil
// for a confirmed not-found or an unrecoverable lookup error. Addresses
// superseded by a newer batch before resolving are absent entirely.
//
// ErrorMessage concatenates the distinct human-readable failure messages of
// the batch; not-found and cancellation never contribute to it.
type GeocodeResult struct {
	Coordinates  map[string]*domain.Coordinates `json:"coordinates"`
	ErrorMessage string                         `json:"error_message,omitempty"`
}

// GeocodeService resolves batches of raw addresses to coordinates, with
// cache reads, concurrent external lookups, and per-key de-duplication.
type GeocodeService interface {
	// Resolve blocks until every lookup of this batch completes or the batch
	// is superseded. Duplicate and empty raw addresses are tolerated.
	Resolve(ctx context.Context, addresses []string) (*GeocodeResult, error)
	// Busy reports whether any lookup of the newest batch is outstanding.
	Busy() bool
}
