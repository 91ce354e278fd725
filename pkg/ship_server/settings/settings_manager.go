package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/impressdesigns/kassistant/pkg/util"
)

type SettingsManager interface {
	// GetSettings returns model.ErrSettingsNotFound before the first save.
	GetSettings(ctx context.Context) (model.Settings, error)
	// SaveSettings creates the settings row on first use and updates it in place afterwards.
	SaveSettings(ctx context.Context, ts int64, req SaveSettingsRequest) (model.Settings, error)
}

type SaveSettingsRequest struct {
	ShipFromCompany string               `json:"ship_from_company"`
	Name            string               `json:"name"`
	Phone           string               `json:"phone"`
	Address1        string               `json:"address_1"`
	Address2        string               `json:"address_2"`
	City            string               `json:"city"`
	State           string               `json:"state"`
	PostalCode      string               `json:"postal_code"`
	CountryCode     string               `json:"country_code"`
	FedExLabelSize  fedex.LabelStockType `json:"fedex_label_size"`
	FedExLabelImage fedex.LabelImageType `json:"fedex_label_image"`
}

type _SettingsManager struct {
	storage storage.SettingsStorage
}

func NewSettingsManager(storage storage.SettingsStorage) SettingsManager {
	return &_SettingsManager{
		storage: storage,
	}
}

func (m *_SettingsManager) GetSettings(ctx context.Context) (model.Settings, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.GetSettings(ctx, tx)
}

func (m *_SettingsManager) SaveSettings(ctx context.Context, ts int64, req SaveSettingsRequest) (model.Settings, error) {
	if err := ValidateSaveSettingsRequest(req); err != nil {
		return model.Settings{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Settings{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	settings, err := m.storage.GetSettings(ctx, tx)
	if errors.Is(err, model.ErrSettingsNotFound) {
		settings = model.Settings{
			ID:        util.NewLedgerID(),
			CreatedAt: ts,
		}
	} else if err != nil {
		return model.Settings{}, err
	}

	settings.ShipFromCompany = req.ShipFromCompany
	settings.Name = req.Name
	settings.Phone = req.Phone
	settings.Address1 = req.Address1
	settings.Address2 = req.Address2
	settings.City = req.City
	settings.State = req.State
	settings.PostalCode = req.PostalCode
	settings.CountryCode = req.CountryCode
	settings.FedExLabelSize = req.FedExLabelSize
	settings.FedExLabelImage = req.FedExLabelImage
	settings.UpdatedAt = ts

	if err := m.storage.StoreSettings(ctx, tx, settings); err != nil {
		return model.Settings{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}
