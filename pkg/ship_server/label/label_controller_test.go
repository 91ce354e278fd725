package label_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/kerp"
	"github.com/impressdesigns/kassistant/pkg/ship_server/label"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	mock_fedex "github.com/impressdesigns/kassistant/test/mock/fedex"
	mock_kerp "github.com/impressdesigns/kassistant/test/mock/kerp"
	mock_storage "github.com/impressdesigns/kassistant/test/mock/ship_server/storage"
	"github.com/stretchr/testify/suite"
)

const zplLabel = "^XA^FO50,50^FDA200^FS^XZ"

type LabelControllerTestSuite struct {
	suite.Suite

	ctx     context.Context
	ts      int64
	ctrl    *gomock.Controller
	storage *mock_storage.MockLabelStorage
	tx      *mock_storage.MockTx
	fedex   *mock_fedex.MockClient
	kerp    *mock_kerp.MockClient

	controller label.LabelController
}

func TestLabelController(t *testing.T) {
	suite.Run(t, new(LabelControllerTestSuite))
}

func (s *LabelControllerTestSuite) SetupTest() {
	s.ctx = context.Background()
	// 2024-03-02 03:00 UTC is still March 1st in Chicago.
	s.ts = time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC).Unix()
	s.ctrl = gomock.NewController(s.T())
	s.storage = mock_storage.NewMockLabelStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.fedex = mock_fedex.NewMockClient(s.ctrl)
	s.kerp = mock_kerp.NewMockClient(s.ctrl)

	chicago, err := time.LoadLocation("America/Chicago")
	s.Require().NoError(err)
	s.controller = label.NewLabelController(
		s.storage,
		s.fedex,
		s.kerp,
		label.WithAccountNumber("510087000"),
		label.WithLocation(chicago),
	)
}

func (s *LabelControllerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LabelControllerTestSuite) form(cartonNumbers string) label.RunLabelsRequest {
	return label.RunLabelsRequest{
		CartonNumbers: cartonNumbers,
		Service:       fedex.ServiceFedExGround,
		Billing:       fedex.PaymentSender,
	}
}

func successBody(trackingNumber, zpl string) []byte {
	return []byte(fmt.Sprintf(
		`{"transactionId":"t-1","output":{"transactionShipments":[{"pieceResponses":[{"trackingNumber":%q,"packageDocuments":[{"contentType":"LABEL","encodedLabel":%q}]}]}]}}`,
		trackingNumber, base64.StdEncoding.EncodeToString([]byte(zpl)),
	))
}

// expectCartonStart expects the guard to pass and settings to be read for cartonNumber.
func (s *LabelControllerTestSuite) expectCartonStart(cartonNumber string) []*gomock.Call {
	return []*gomock.Call{
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetLatestShipment(gomock.Any(), s.tx, cartonNumber, model.ShipmentStatusShipped).Return(model.Shipment{}, model.ErrShipmentNotFound),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(testSettings(), nil),
	}
}

func (s *LabelControllerTestSuite) TestRejectDuplicateCartons() {
	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A100\nA100\nA101"))
	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrDuplicateCarton))
	s.Empty(result)
}

func (s *LabelControllerTestSuite) TestRejectBlankBatch() {
	// Nothing is looked up or recorded.
	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form(" \n\n \n"))
	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrInvalidParameter))
	s.Equal(400, model.ErrToHttpStatus(err))
	s.Empty(result)
}

func (s *LabelControllerTestSuite) TestRejectInvalidForm() {
	form := s.form("A100")
	form.Billing = fedex.PaymentThirdParty
	_, err := s.controller.RunLabels(s.ctx, s.ts, form)
	s.True(errors.Is(err, model.ErrInvalidParameter))
}

func (s *LabelControllerTestSuite) TestShipCarton() {
	carton := testCarton("A200")
	body := successBody("790123456789", zplLabel)
	var sentRequest fedex.ShipmentRequest

	calls := s.expectCartonStart("A200")
	calls = append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A200"}).Return([]kerp.Carton{carton}, nil),
	}, calls...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req fedex.ShipmentRequest) (fedex.Response, error) {
				sentRequest = req
				return fedex.Response{StatusCode: http.StatusOK, Body: body}, nil
			},
		),
		s.kerp.EXPECT().PublishTracking(gomock.Any(), []kerp.TrackingUpdate{{
			TrackingNumber: "790123456789",
			Reference:      "A200",
			Department:     "A200",
			ShipDate:       model.NewDateFromStringNoError("2024-03-01"),
			Service:        "FedEx Ground Service",
			PaymentType:    "Sender",
		}}).Return([]byte(`{"updated":1}`), nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.NotEmpty(shipment.ID)
				s.Equal("A200", shipment.CartonNumber)
				s.Equal(model.ShipmentStatusShipped, shipment.Status)
				s.Equal("790123456789", shipment.TrackingNumber)
				s.Equal(s.ts, shipment.CreatedAt)

				expectedRequest, err := json.Marshal(sentRequest)
				s.Require().NoError(err)
				s.JSONEq(string(expectedRequest), string(shipment.LabelRequest))
				s.Equal(body, []byte(shipment.LabelResponse))
				s.JSONEq(`{"updated":1}`, string(shipment.TrackingResponse))
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A200"))
	s.Require().NoError(err)
	s.Equal(zplLabel, result)
	s.Equal("2024-03-01", sentRequest.RequestedShipment.ShipDatestamp)
	s.Equal("510087000", sentRequest.AccountNumber.Value)
}

func (s *LabelControllerTestSuite) TestRecordCartonNotFound() {
	gomock.InOrder(
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A300"}).Return(nil, nil),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal("A300", shipment.CartonNumber)
				s.Equal(model.ShipmentStatusNotFoundInKERP, shipment.Status)
				s.Empty(shipment.TrackingNumber)
				s.Nil(shipment.LabelRequest)
				s.Nil(shipment.LabelResponse)
				s.Nil(shipment.TrackingResponse)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A300"))
	s.Require().NoError(err)
	s.Empty(result)
}

func (s *LabelControllerTestSuite) TestAlreadyShipped() {
	prior := model.Shipment{
		ID:             "prior-id",
		CartonNumber:   "A400",
		TrackingNumber: "790000000001",
		Status:         model.ShipmentStatusShipped,
	}

	gomock.InOrder(
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A400"}).Return([]kerp.Carton{testCarton("A400")}, nil),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetLatestShipment(gomock.Any(), s.tx, "A400", model.ShipmentStatusShipped).Return(prior, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A400"))
	s.Require().NoError(err)
	s.Equal(label.ErrorLabel("A400", "Label already created for this carton: 790000000001"), result)
	s.Contains(result, "DO NOT SHIP")
}

func (s *LabelControllerTestSuite) TestCarrierBadRequestPrintsErrorLabel() {
	body := []byte(`{"transactionId":"t-2","errors":[{"code":"RECIPIENT.POSTALCODE.INVALID","message":"Postal code is invalid"}]}`)

	calls := append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A500"}).Return([]kerp.Carton{testCarton("A500")}, nil),
	}, s.expectCartonStart("A500")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusBadRequest, Body: body}, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal(model.ShipmentStatusCarrierError, shipment.Status)
				s.Empty(shipment.TrackingNumber)
				s.NotNil(shipment.LabelRequest)
				s.Equal(body, []byte(shipment.LabelResponse))
				s.Nil(shipment.TrackingResponse)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A500"))
	s.Require().NoError(err)
	s.Equal(label.ErrorLabel("A500", "RECIPIENT.POSTALCODE.INVALID: Postal code is invalid"), result)
}

func (s *LabelControllerTestSuite) TestCarrierBadRequestWithoutDetails() {
	body := []byte(`"<html>bad request</html>"`)

	calls := append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A501"}).Return([]kerp.Carton{testCarton("A501")}, nil),
	}, s.expectCartonStart("A501")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusBadRequest, Body: body}, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A501"))
	s.Require().NoError(err)
	s.Empty(result)
}

func (s *LabelControllerTestSuite) TestCarrierServerErrorPrintsNothing() {
	calls := append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A600"}).Return([]kerp.Carton{testCarton("A600")}, nil),
	}, s.expectCartonStart("A600")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusInternalServerError}, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal(model.ShipmentStatusCarrierError, shipment.Status)
				s.Nil(shipment.LabelResponse)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A600"))
	s.Require().NoError(err)
	s.Empty(result)
}

func (s *LabelControllerTestSuite) TestCarrierTransportErrorContinuesBatch() {
	body := successBody("790123456790", zplLabel)

	calls := []*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A700", "A701"}).Return([]kerp.Carton{testCarton("A701"), testCarton("A700")}, nil),
	}
	calls = append(calls, s.expectCartonStart("A700")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{}, errors.New("connection refused")),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal("A700", shipment.CartonNumber)
				s.Equal(model.ShipmentStatusCarrierError, shipment.Status)
				s.JSONEq(`{"error":"connection refused"}`, string(shipment.LabelResponse))
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	calls = append(calls, s.expectCartonStart("A701")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusOK, Body: body}, nil),
		s.kerp.EXPECT().PublishTracking(gomock.Any(), gomock.Any()).Return([]byte(`{"updated":1}`), nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A700\nA701"))
	s.Require().NoError(err)
	s.Equal(zplLabel, result)
}

func (s *LabelControllerTestSuite) TestWriteBackFailureKeepsLabel() {
	body := successBody("790123456791", zplLabel)
	form := s.form("A800")
	form.AirAuth = "AUTH-77"
	form.ShipDate = model.NewDateFromStringNoError("2024-03-04")

	calls := append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A800"}).Return([]kerp.Carton{testCarton("A800")}, nil),
	}, s.expectCartonStart("A800")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusCreated, Body: body}, nil),
		s.kerp.EXPECT().PublishTracking(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, updates []kerp.TrackingUpdate) ([]byte, error) {
				s.Require().Len(updates, 1)
				s.Equal("AUTH-77", updates[0].Reference)
				s.Equal("A800", updates[0].Department)
				s.Equal("2024-03-04", updates[0].ShipDate.String())
				return nil, errors.New("kerp unavailable")
			},
		),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal(model.ShipmentStatusShipped, shipment.Status)
				s.Equal("790123456791", shipment.TrackingNumber)
				s.JSONEq(`{"error":"kerp unavailable"}`, string(shipment.TrackingResponse))
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, form)
	s.Require().NoError(err)
	s.Equal(zplLabel, result)
}

func (s *LabelControllerTestSuite) TestUnreadableLabel() {
	body := []byte(`{"output":{"transactionShipments":[{"pieceResponses":[{"trackingNumber":"790123456792","packageDocuments":[{"encodedLabel":"%%%"}]}]}]}}`)

	calls := append([]*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A900"}).Return([]kerp.Carton{testCarton("A900")}, nil),
	}, s.expectCartonStart("A900")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusOK, Body: body}, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal(model.ShipmentStatusCarrierError, shipment.Status)
				s.Empty(shipment.TrackingNumber)
				s.Equal(body, []byte(shipment.LabelResponse))
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A900"))
	s.Require().NoError(err)
	s.True(strings.Contains(result, "could not be read"))
}

func (s *LabelControllerTestSuite) TestMissingSettingsAbortsBatch() {
	gomock.InOrder(
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A200"}).Return([]kerp.Carton{testCarton("A200")}, nil),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetLatestShipment(gomock.Any(), s.tx, "A200", model.ShipmentStatusShipped).Return(model.Shipment{}, model.ErrShipmentNotFound),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(model.Settings{}, model.ErrSettingsNotFound),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A200"))
	s.True(errors.Is(err, model.ErrSettingsNotFound))
}

func (s *LabelControllerTestSuite) TestLookupFailureAbortsBatch() {
	lookupErr := errors.New("kerp down")
	s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"A200"}).Return(nil, lookupErr)

	_, err := s.controller.RunLabels(s.ctx, s.ts, s.form("A200"))
	s.ErrorIs(err, lookupErr)
}

func (s *LabelControllerTestSuite) TestMixedBatchOutputOrder() {
	prior := model.Shipment{CartonNumber: "B1", TrackingNumber: "790000000009", Status: model.ShipmentStatusShipped}
	body := successBody("790123456793", zplLabel)

	calls := []*gomock.Call{
		s.kerp.EXPECT().GetCartons(gomock.Any(), []string{"B1", "B2", "B3"}).Return([]kerp.Carton{testCarton("B2"), testCarton("B1")}, nil),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
				s.Equal("B3", shipment.CartonNumber)
				s.Equal(model.ShipmentStatusNotFoundInKERP, shipment.Status)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetLatestShipment(gomock.Any(), s.tx, "B1", model.ShipmentStatusShipped).Return(prior, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	}
	calls = append(calls, s.expectCartonStart("B2")...)
	calls = append(calls,
		s.fedex.EXPECT().CreateLabel(gomock.Any(), gomock.Any()).Return(fedex.Response{StatusCode: http.StatusOK, Body: body}, nil),
		s.kerp.EXPECT().PublishTracking(gomock.Any(), gomock.Any()).Return([]byte(`{}`), nil),
		s.storage.EXPECT().AddShipment(gomock.Any(), s.tx, gomock.Any()).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	gomock.InOrder(calls...)

	result, err := s.controller.RunLabels(s.ctx, s.ts, s.form("B1\nB2\nB3"))
	s.Require().NoError(err)
	s.Equal(label.ErrorLabel("B1", "Label already created for this carton: 790000000009")+"\n"+zplLabel, result)
}
