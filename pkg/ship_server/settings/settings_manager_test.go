package settings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/settings"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/impressdesigns/kassistant/pkg/util"
	mock_storage "github.com/impressdesigns/kassistant/test/mock/ship_server/storage"
	"github.com/stretchr/testify/suite"
)

type SettingsManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	storage *mock_storage.MockSettingsStorage
	tx      *mock_storage.MockTx
	mgr     settings.SettingsManager
}

func TestSettingsManager(t *testing.T) {
	suite.Run(t, new(SettingsManagerTestSuite))
}

func (s *SettingsManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.storage = mock_storage.NewMockSettingsStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.mgr = settings.NewSettingsManager(s.storage)
}

func (s *SettingsManagerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validRequest() settings.SaveSettingsRequest {
	return settings.SaveSettingsRequest{
		ShipFromCompany: "Impress Designs",
		Name:            "Shipping Desk",
		Phone:           "2145550100",
		Address1:        "100 Commerce St",
		City:            "Dallas",
		State:           "TX",
		PostalCode:      "75201",
		CountryCode:     "US",
		FedExLabelSize:  fedex.Stock4X6,
	}
}

func (s *SettingsManagerTestSuite) TestGetSettings() {
	expected := model.Settings{ID: "settings-id", ShipFromCompany: "Impress Designs"}

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(expected, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.mgr.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(expected, result)
}

func (s *SettingsManagerTestSuite) TestSaveSettingsCreatesOnFirstUse() {
	ts := time.Now().Unix()
	req := validRequest()

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(model.Settings{}, model.ErrSettingsNotFound),
		s.storage.EXPECT().StoreSettings(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, saved model.Settings) error {
				s.True(util.IsUUID(saved.ID))
				s.Equal(ts, saved.CreatedAt)
				s.Equal(ts, saved.UpdatedAt)
				s.Equal("Impress Designs", saved.ShipFromCompany)
				s.Equal(fedex.Stock4X6, saved.FedExLabelSize)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.mgr.SaveSettings(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Equal("100 Commerce St", result.Address1)
}

func (s *SettingsManagerTestSuite) TestSaveSettingsUpdatesInPlace() {
	ts := time.Now().Unix()
	existing := model.Settings{
		ID:              "settings-id",
		ShipFromCompany: "Old Name",
		Address2:        "Dock 4",
		FedExLabelSize:  fedex.Stock4X8,
		CreatedAt:       ts - 1000,
		UpdatedAt:       ts - 1000,
	}
	req := validRequest()

	expected := model.Settings{
		ID:              "settings-id",
		ShipFromCompany: req.ShipFromCompany,
		Name:            req.Name,
		Phone:           req.Phone,
		Address1:        req.Address1,
		City:            req.City,
		State:           req.State,
		PostalCode:      req.PostalCode,
		CountryCode:     req.CountryCode,
		FedExLabelSize:  req.FedExLabelSize,
		CreatedAt:       ts - 1000,
		UpdatedAt:       ts,
	}

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(existing, nil),
		s.storage.EXPECT().StoreSettings(gomock.Any(), s.tx, expected).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	result, err := s.mgr.SaveSettings(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Equal(expected, result)
}

func (s *SettingsManagerTestSuite) TestSaveSettingsStorageError() {
	ts := time.Now().Unix()
	storeErr := errors.New("connection reset")

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().GetSettings(gomock.Any(), s.tx).Return(model.Settings{}, storeErr),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.mgr.SaveSettings(s.ctx, ts, validRequest())
	s.ErrorIs(err, storeErr)
}

func (s *SettingsManagerTestSuite) TestSaveSettingsValidation() {
	ts := time.Now().Unix()

	req := validRequest()
	req.ShipFromCompany = ""
	_, err := s.mgr.SaveSettings(s.ctx, ts, req)
	s.ErrorIs(err, model.ErrInvalidParameter)

	req = validRequest()
	req.FedExLabelSize = fedex.StockPaper4X6
	_, err = s.mgr.SaveSettings(s.ctx, ts, req)
	s.ErrorIs(err, model.ErrInvalidParameter)

	// Image formats cannot join the printer document, whatever the stock.
	req.FedExLabelImage = fedex.LabelImagePDF
	s.ErrorIs(settings.ValidateSaveSettingsRequest(req), model.ErrInvalidParameter)
	req.FedExLabelImage = fedex.LabelImagePNG
	s.ErrorIs(settings.ValidateSaveSettingsRequest(req), model.ErrInvalidParameter)

	req = validRequest()
	req.FedExLabelImage = fedex.LabelImageEPL2
	s.NoError(settings.ValidateSaveSettingsRequest(req))

	req = validRequest()
	req.Phone = "214-555-0100"
	s.ErrorIs(settings.ValidateSaveSettingsRequest(req), model.ErrInvalidParameter)

	req = validRequest()
	req.CountryCode = "USA"
	s.ErrorIs(settings.ValidateSaveSettingsRequest(req), model.ErrInvalidParameter)
}
