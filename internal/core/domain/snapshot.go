package domain

import "time"

// StatsSnapshot is a periodic aggregate record, keyed by its period (one per
// day). Snapshots are immutable once written; the evolution calculator only
// ever reads the single most recent one as the delta baseline.
type StatsSnapshot struct {
	ID            string    `json:"id" bson:"_id"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	TicketCount   int64     `json:"ticket_count" bson:"ticket_count"`
	ShipmentCount int64     `json:"shipment_count" bson:"shipment_count"`
	ClientCount   int64     `json:"client_count" bson:"client_count"`
}

// PeriodKey formats a snapshot period key for the given instant (one key per
// UTC day).
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
