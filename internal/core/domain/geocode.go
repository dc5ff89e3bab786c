package domain

import (
	"strings"
	"time"
)

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// GeocodeEntry is one cached geocoding result. Entries are overwritten whole
// on refresh, never patched; staleness is judged from ResolvedAt on read.
type GeocodeEntry struct {
	Coordinates Coordinates `json:"coordinates"`
	ResolvedAt  time.Time   `json:"resolved_at"`
}

// Stale reports whether the entry is older than the expiry window at the
// given instant. A non-positive window disables expiry.
func (e GeocodeEntry) Stale(now time.Time, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	return now.Sub(e.ResolvedAt) > window
}

// NormalizeAddress maps a raw address string to its canonical cache key:
// trimmed, lowercased, internal whitespace collapsed to single spaces.
// Idempotent; empty or whitespace-only input yields "".
func NormalizeAddress(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	return strings.Join(fields, " ")
}
