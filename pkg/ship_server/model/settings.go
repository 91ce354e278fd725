package model

import "github.com/impressdesigns/kassistant/pkg/fedex"

// Settings is the ship-from identity and label stock used for every outbound label request.
// There is at most one row; it is created on first save and updated in place afterwards.
type Settings struct {
	ID              string               `json:"id"`
	ShipFromCompany string               `json:"ship_from_company"`
	Name            string               `json:"name"` // Contact person printed on the label.
	Phone           string               `json:"phone"`
	Address1        string               `json:"address_1"`
	Address2        string               `json:"address_2"` // Optional; omitted from the request when empty.
	City            string               `json:"city"`
	State           string               `json:"state"`
	PostalCode      string               `json:"postal_code"`
	CountryCode     string               `json:"country_code"`
	FedExLabelSize  fedex.LabelStockType `json:"fedex_label_size"`
	FedExLabelImage fedex.LabelImageType `json:"fedex_label_image,omitempty"` // ZPLII or EPL2. Empty means ZPLII.
	CreatedAt       int64                `json:"created_at"`
	UpdatedAt       int64                `json:"updated_at"`
}
