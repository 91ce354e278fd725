package fedex

type ServiceType string

const (
	ServiceFedEx2Day         ServiceType = "FEDEX_2_DAY"
	ServiceFedExExpressSaver ServiceType = "FEDEX_EXPRESS_SAVER"
	ServiceFedExGround       ServiceType = "FEDEX_GROUND"
	ServicePriorityOvernight ServiceType = "PRIORITY_OVERNIGHT"
	ServiceStandardOvernight ServiceType = "STANDARD_OVERNIGHT"
)

var serviceDisplayNames = map[ServiceType]string{
	ServiceFedEx2Day:         "FedEx 2Day",
	ServiceFedExExpressSaver: "FedEx Express Saver",
	ServiceFedExGround:       "FedEx Ground Service",
	ServicePriorityOvernight: "FedEx Priority Overnight",
	ServiceStandardOvernight: "FedEx Standard Overnight",
}

// ServiceTypes lists every service level an operator may pick, in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceFedEx2Day,
		ServiceFedExExpressSaver,
		ServiceFedExGround,
		ServicePriorityOvernight,
		ServiceStandardOvernight,
	}
}

// DisplayName is the name the order-management system expects in tracking write-backs.
func (s ServiceType) DisplayName() string {
	if name, ok := serviceDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

type PaymentType string

const (
	PaymentCollect    PaymentType = "COLLECT"
	PaymentRecipient  PaymentType = "RECIPIENT"
	PaymentSender     PaymentType = "SENDER"
	PaymentThirdParty PaymentType = "THIRD_PARTY"
)

var paymentDisplayNames = map[PaymentType]string{
	PaymentCollect:    "Collect",
	PaymentRecipient:  "Recipient",
	PaymentSender:     "Sender",
	PaymentThirdParty: "Third Party",
}

func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentCollect, PaymentRecipient, PaymentSender, PaymentThirdParty}
}

func (p PaymentType) DisplayName() string {
	if name, ok := paymentDisplayNames[p]; ok {
		return name
	}
	return string(p)
}

type CustomerReferenceType string

const (
	ReferenceCustomer   CustomerReferenceType = "CUSTOMER_REFERENCE"
	ReferenceDepartment CustomerReferenceType = "DEPARTMENT_NUMBER"
	ReferenceInvoice    CustomerReferenceType = "INVOICE_NUMBER"
	ReferencePO         CustomerReferenceType = "P_O_NUMBER"
)

const (
	SpecialServiceSaturdayDelivery = "SATURDAY_DELIVERY"

	LabelResponseOptionsLabel    = "LABEL"
	PackagingTypeYourPackaging   = "YOUR_PACKAGING"
	PickupTypeUseScheduledPickup = "USE_SCHEDULED_PICKUP"
	WeightUnitsPound             = "LB"
)

// ShipmentRequest is the body of POST /ship/v1/shipments.
type ShipmentRequest struct {
	LabelResponseOptions string            `json:"labelResponseOptions"`
	RequestedShipment    RequestedShipment `json:"requestedShipment"`
	AccountNumber        AccountNumber     `json:"accountNumber"`
}

type RequestedShipment struct {
	ShipDatestamp             string                     `json:"shipDatestamp"`
	Shipper                   Party                      `json:"shipper"`
	Recipients                []Party                    `json:"recipients"`
	PickupType                string                     `json:"pickupType"`
	ServiceType               ServiceType                `json:"serviceType"`
	PackagingType             string                     `json:"packagingType"`
	ShippingChargesPayment    ShippingChargesPayment     `json:"shippingChargesPayment"`
	LabelSpecification        LabelSpecification         `json:"labelSpecification"`
	BlockInsightVisibility    bool                       `json:"blockInsightVisibility"`
	RequestedPackageLineItems []RequestedPackageLineItem `json:"requestedPackageLineItems"`
}

type Party struct {
	Address Address `json:"address"`
	Contact Contact `json:"contact"`
}

type Address struct {
	StreetLines         []string `json:"streetLines"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
}

type Contact struct {
	PersonName  string `json:"personName"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName"`
}

type ShippingChargesPayment struct {
	PaymentType PaymentType `json:"paymentType"`
	Payor       Payor       `json:"payor"`
}

type Payor struct {
	ResponsibleParty ResponsibleParty `json:"responsibleParty"`
}

type ResponsibleParty struct {
	AccountNumber AccountNumber `json:"accountNumber"`
}

type AccountNumber struct {
	Value string `json:"value"`
}

type ShipmentSpecialServices struct {
	SpecialServiceTypes []string `json:"specialServiceTypes"` // Always present; [] when nothing is requested.
}

// RequestedPackageLineItem carries the special services; the shipment level has none.
type RequestedPackageLineItem struct {
	Weight                  Weight                  `json:"weight"`
	CustomerReferences      []CustomerReference     `json:"customerReferences"`
	ShipmentSpecialServices ShipmentSpecialServices `json:"shipmentSpecialServices"`
}

type Weight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type CustomerReference struct {
	CustomerReferenceType CustomerReferenceType `json:"customerReferenceType"`
	Value                 string                `json:"value"`
}
