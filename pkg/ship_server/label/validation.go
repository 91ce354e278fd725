package label

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/samber/lo"
)

func ValidateRunLabelsRequest(req RunLabelsRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.CartonNumbers, validation.Required),
		validation.Field(&req.Service, validation.Required, validation.In(lo.ToAnySlice(fedex.ServiceTypes())...)),
		validation.Field(&req.Billing, validation.Required, validation.In(lo.ToAnySlice(fedex.PaymentTypes())...)),
		validation.Field(&req.ThirdPartyAccountNumber,
			validation.When(req.Billing == fedex.PaymentThirdParty, validation.Required),
			is.Alphanumeric,
		),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}
