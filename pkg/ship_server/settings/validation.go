package settings

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
)

func ValidateSaveSettingsRequest(req SaveSettingsRequest) error {
	imageType := req.FedExLabelImage
	if imageType == "" {
		imageType = fedex.DefaultLabelImageType
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.ShipFromCompany, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Phone, validation.Required, is.Digit, validation.Length(10, 15)),
		validation.Field(&req.Address1, validation.Required),
		validation.Field(&req.City, validation.Required),
		validation.Field(&req.State, validation.Required, validation.Length(2, 2)),
		validation.Field(&req.PostalCode, validation.Required),
		validation.Field(&req.CountryCode, validation.Required, is.CountryCode2),
		validation.Field(&req.FedExLabelImage, validation.In(fedex.LabelImageZPLII, fedex.LabelImageEPL2)),
		validation.Field(&req.FedExLabelSize, validation.Required, validation.By(func(any) error {
			return fedex.LabelSpecification{ImageType: imageType, LabelStockType: req.FedExLabelSize}.Validate()
		})),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}
