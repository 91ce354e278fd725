package kerp

import "github.com/impressdesigns/kassistant/pkg/ship_server/model"

// Carton is a packed carton as known to K-ERP. All addresses are domestic (US).
type Carton struct {
	CartonNumber          string        `json:"carton_number"`
	Company               string        `json:"company"`
	Address1              string        `json:"address1"`
	Address2              string        `json:"address2"`
	City                  string        `json:"city"`
	State                 string        `json:"state"`
	PostalCode            string        `json:"postal_code"`
	Weight                model.Decimal `json:"weight"`                  // Pounds.
	ControlNumber         string        `json:"control_number"`          // Order control number.
	PSLine                string        `json:"ps_line"`                 // Packing-slip line number.
	CustomerPurchaseOrder string        `json:"customer_purchase_order"` // Customer PO number.
}

type cartonsResponse struct {
	Data []Carton `json:"data"`
}

// TrackingUpdate is one tracking number written back against a carton.
type TrackingUpdate struct {
	TrackingNumber string     `json:"tracking_number"`
	Reference      string     `json:"reference"`  // Air auth override or the carton number.
	Department     string     `json:"department"` // Carton number.
	ShipDate       model.Date `json:"ship_date"`
	Service        string     `json:"service"`      // Carrier service display name, e.g. "FedEx Ground Service".
	PaymentType    string     `json:"payment_type"` // Billing display name, e.g. "Third Party".
}
