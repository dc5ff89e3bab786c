package domain

// ShipmentStatus is a small open enumeration: delivered / pending / exception
// cover the tri-state the dashboard colours by, anything else is shown raw.
type ShipmentStatus string

const (
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentException ShipmentStatus = "exception"
)

// UnknownClientKey is the grouping bucket for shipments that carry neither a
// client name nor a client code.
const UnknownClientKey = "unknown"

// Shipment is a tracked delivery belonging to one sector partition.
//
// Shipment documents carry no reliable creation timestamp, so no recency
// ordering is assumed; deterministic ordering falls back to the ID.
type Shipment struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	ClientName  string         `json:"client_name" bson:"client_name"`
	ClientCode  string         `json:"client_code,omitempty" bson:"client_code,omitempty"`
	Article     string         `json:"article" bson:"article"`
	Status      ShipmentStatus `json:"status" bson:"status"`
	TrackingRef string         `json:"tracking_ref,omitempty" bson:"tracking_ref,omitempty"`
	Address     string         `json:"address,omitempty" bson:"address,omitempty"`
	Sector      string         `json:"sector" bson:"-"`
}

// ClientKey returns the identity a shipment is grouped under on the board:
// client name, falling back to client code, falling back to UnknownClientKey.
func (s Shipment) ClientKey() string {
	if s.ClientName != "" {
		return s.ClientName
	}
	if s.ClientCode != "" {
		return s.ClientCode
	}
	return UnknownClientKey
}
