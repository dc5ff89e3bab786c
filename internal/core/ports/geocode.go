package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// GeocodeCache is a keyed coordinate cache. Keys are normalized addresses.
//
// Get fails soft: any backend or decoding problem is reported as a miss,
// never as an error, so a broken cache degrades to extra external lookups.
// Entries older than the configured expiry window also count as misses.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (domain.GeocodeEntry, bool)
	// Put overwrites any existing entry whole (last-write-wins). The cache
	// assigns the resolution timestamp.
	Put(ctx context.Context, key string, coords domain.Coordinates) error
}

// Geocoder resolves a free-text address via an external API. The raw,
// non-normalized address is passed through for best provider-side matching.
//
// Zero-result responses return domain.ErrGeocodeNoResults; transport and
// credential failures return domain.ErrGeocodeNoResponse,
// domain.ErrGeocodeInvalidKey or domain.ErrGeocodeQuotaExceeded (wrapped),
// so callers can classify without parsing provider payloads.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
