package model

import "encoding/json"

type ShipmentStatus string

const (
	ShipmentStatusShipped        ShipmentStatus = "shipped"
	ShipmentStatusCarrierError   ShipmentStatus = "fedex_error"
	ShipmentStatusNotFoundInKERP ShipmentStatus = "not_found_in_kerp"
)

// Shipment is one ledger entry: a single processing attempt for a single carton.
// Entries are written once with their final status and never updated by the label flow.
type Shipment struct {
	ID             string         `json:"id"`
	CartonNumber   string         `json:"carton_number"`
	TrackingNumber string         `json:"tracking_number,omitempty"` // Set only when Status is shipped.
	Status         ShipmentStatus `json:"status"`

	// Verbatim documents exchanged with the carrier and the order-management system.
	// nil is stored as SQL NULL.
	LabelRequest     json.RawMessage `json:"fedex_create_label_request,omitempty"`
	LabelResponse    json.RawMessage `json:"fedex_create_label_response,omitempty"`
	TrackingResponse json.RawMessage `json:"kerp_tracking_upload_response,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
