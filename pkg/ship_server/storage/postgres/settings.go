package postgres

import (
	"context"
	"errors"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/jackc/pgx/v5"
)

func (s *_Storage) GetSettings(ctx context.Context, tx storage.Tx) (model.Settings, error) {
	query := `SELECT settings FROM settings ORDER BY rec_id ASC LIMIT 1`

	var settings model.Settings
	if err := tx.QueryRow(ctx, query).Scan(&settings); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Settings{}, model.ErrSettingsNotFound
		}
		return model.Settings{}, err
	}
	return settings, nil
}

func (s *_Storage) StoreSettings(ctx context.Context, tx storage.Tx, settings model.Settings) error {
	query := `
INSERT INTO settings (id, settings, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	settings = excluded.settings,
	updated_at = excluded.updated_at
`
	_, err := tx.Exec(ctx, query, settings.ID, settings, settings.CreatedAt, settings.UpdatedAt)
	return err
}
