package domain

import "time"

// TicketStatus is an open enumeration. The dashboard renders the well-known
// values specially and falls back to the raw string for anything else, so
// unknown statuses coming from the store are preserved, not rejected.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// Ticket is a support ticket read from a single sector partition.
//
// A ticket ID is unique only within its sector collection. Sector is stamped
// on each ticket after fetch so that merged cross-sector views remain
// unambiguous; it is never stored in the document itself.
type Ticket struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	Subject    string       `json:"subject" bson:"subject"`
	Status     TicketStatus `json:"status" bson:"status"`
	ClientName string       `json:"client_name" bson:"client_name"`
	ClientCode string       `json:"client_code,omitempty" bson:"client_code,omitempty"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	Sector     string       `json:"sector" bson:"-"`
}
