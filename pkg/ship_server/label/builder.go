package label

import (
	"fmt"

	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/kerp"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
)

// recipientPhonePlaceholder is sent for every recipient; K-ERP cartons carry no phone number.
const recipientPhonePlaceholder = "1234567890"

// BuildLabelRequest turns settings, one carton and the operator's choices into a carrier
// shipment request. form.ShipDate must already be resolved. A nil settings means nothing
// has been configured yet, which is model.ErrSettingsNotFound.
func BuildLabelRequest(settings *model.Settings, carton kerp.Carton, form RunLabelsRequest, accountNumber string) (fedex.ShipmentRequest, error) {
	if settings == nil {
		return fedex.ShipmentRequest{}, model.ErrSettingsNotFound
	}

	imageType := settings.FedExLabelImage
	if imageType == "" {
		imageType = fedex.DefaultLabelImageType
	}
	// Labels are joined into one printer document with ZPL error labels.
	if !imageType.IsThermal() {
		return fedex.ShipmentRequest{}, fmt.Errorf("label image %s cannot be sent to a thermal printer%w", imageType, model.ErrInvalidParameter)
	}
	labelSpec := fedex.LabelSpecification{
		ImageType:      imageType,
		LabelStockType: settings.FedExLabelSize,
	}
	if err := labelSpec.Validate(); err != nil {
		return fedex.ShipmentRequest{}, fmt.Errorf("%w%w", err, model.ErrInvalidParameter)
	}

	shipperLines := []string{settings.Address1}
	if settings.Address2 != "" {
		shipperLines = append(shipperLines, settings.Address2)
	}

	specialServices := []string{}
	if form.SaturdayDelivery {
		specialServices = append(specialServices, fedex.SpecialServiceSaturdayDelivery)
	}

	req := fedex.ShipmentRequest{
		LabelResponseOptions: fedex.LabelResponseOptionsLabel,
		AccountNumber:        fedex.AccountNumber{Value: accountNumber},
		RequestedShipment: fedex.RequestedShipment{
			ShipDatestamp: form.ShipDate.String(),
			Shipper: fedex.Party{
				Address: fedex.Address{
					StreetLines:         shipperLines,
					City:                settings.City,
					StateOrProvinceCode: settings.State,
					PostalCode:          settings.PostalCode,
					CountryCode:         settings.CountryCode,
				},
				Contact: fedex.Contact{
					PersonName:  settings.Name,
					PhoneNumber: settings.Phone,
					CompanyName: settings.ShipFromCompany,
				},
			},
			Recipients: []fedex.Party{{
				Address: fedex.Address{
					StreetLines:         []string{carton.Address1, carton.Address2},
					City:                carton.City,
					StateOrProvinceCode: carton.State,
					PostalCode:          carton.PostalCode,
					CountryCode:         "US",
				},
				Contact: fedex.Contact{
					PersonName:  carton.Company,
					PhoneNumber: recipientPhonePlaceholder,
					CompanyName: carton.Company,
				},
			}},
			PickupType:    fedex.PickupTypeUseScheduledPickup,
			ServiceType:   form.Service,
			PackagingType: fedex.PackagingTypeYourPackaging,
			ShippingChargesPayment: fedex.ShippingChargesPayment{
				PaymentType: form.Billing,
				// The payor always names the third-party account field, whatever the
				// billing type. Existing shipping accounts rely on this; see DESIGN.md.
				Payor: fedex.Payor{
					ResponsibleParty: fedex.ResponsibleParty{
						AccountNumber: fedex.AccountNumber{Value: form.ThirdPartyAccountNumber},
					},
				},
			},
			LabelSpecification:     labelSpec,
			BlockInsightVisibility: false,
			RequestedPackageLineItems: []fedex.RequestedPackageLineItem{{
				Weight: fedex.Weight{
					Units: fedex.WeightUnitsPound,
					Value: carton.Weight.InexactFloat64(),
				},
				CustomerReferences: []fedex.CustomerReference{
					{CustomerReferenceType: fedex.ReferenceCustomer, Value: customerReference(form, carton)},
					{CustomerReferenceType: fedex.ReferenceDepartment, Value: carton.CartonNumber},
					{CustomerReferenceType: fedex.ReferenceInvoice, Value: fmt.Sprintf("%s-LN %s", carton.ControlNumber, carton.PSLine)},
					{CustomerReferenceType: fedex.ReferencePO, Value: carton.CustomerPurchaseOrder},
				},
				ShipmentSpecialServices: fedex.ShipmentSpecialServices{
					SpecialServiceTypes: specialServices,
				},
			}},
		},
	}

	if err := req.Validate(); err != nil {
		return fedex.ShipmentRequest{}, fmt.Errorf("%w%w", err, model.ErrInvalidParameter)
	}
	return req, nil
}

// customerReference is the air authorization override when given, else the carton number.
// The same value is written back to K-ERP as the tracking reference.
func customerReference(form RunLabelsRequest, carton kerp.Carton) string {
	if form.AirAuth != "" {
		return form.AirAuth
	}
	return carton.CartonNumber
}
