package postgres

import (
	"context"
	"errors"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

const shipmentColumns = `id, carton_number, tracking_number, status, fedex_create_label_request, fedex_create_label_response, kerp_tracking_upload_response, created_at, updated_at`

func (s *_Storage) AddShipment(ctx context.Context, tx storage.Tx, shipment model.Shipment) error {
	query := `
INSERT INTO shipment (` + shipmentColumns + `)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
`
	_, err := tx.Exec(
		ctx,
		query,
		shipment.ID,
		shipment.CartonNumber,
		shipment.TrackingNumber,
		string(shipment.Status),
		nullableJSON(shipment.LabelRequest),
		nullableJSON(shipment.LabelResponse),
		nullableJSON(shipment.TrackingResponse),
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)
	return err
}

func (s *_Storage) GetLatestShipment(ctx context.Context, tx storage.Tx, cartonNumber string, status model.ShipmentStatus) (model.Shipment, error) {
	query := `
SELECT ` + shipmentColumns + `
FROM shipment
WHERE carton_number = $1 AND status = $2
ORDER BY created_at DESC, rec_id DESC
LIMIT 1
`
	var row shipmentRow
	err := tx.QueryRow(ctx, query, cartonNumber, string(status)).Scan(row.dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Shipment{}, model.ErrShipmentNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return row.toModel(), nil
}

func (s *_Storage) ListShipments(ctx context.Context, tx storage.Tx, req storage.ListShipmentsRequest) (storage.ListShipmentsResult, error) {
	query := `
WITH filtered_record AS (
	SELECT rec_id, ` + shipmentColumns + `
	FROM shipment
	WHERE
		(COALESCE(array_length($3::TEXT[], 1), 0) = 0 OR id = ANY($3)) AND
		(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR carton_number = ANY($4)) AND
		(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR status = ANY($5)) AND
		($6::TEXT = '' OR (to_timestamp(created_at) AT TIME ZONE $7::TEXT)::DATE = CAST(NULLIF($6::TEXT, '') AS DATE))
)
SELECT
	total,
	` + shipmentColumns + `
FROM (SELECT COUNT(*) AS total FROM filtered_record) AS report
FULL OUTER JOIN (
	SELECT ` + shipmentColumns + ` FROM filtered_record ORDER BY created_at DESC, rec_id DESC OFFSET $1 LIMIT NULLIF($2, 0)
) AS record ON FALSE
`
	timeZone := req.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	statuses := lo.Map(req.Statuses, func(status model.ShipmentStatus, _ int) string { return string(status) })

	rows, err := tx.Query(ctx, query, req.Offset, req.Limit, req.IDs, req.CartonNumbers, statuses, req.Day, timeZone)
	if err != nil {
		return storage.ListShipmentsResult{}, err
	}
	defer rows.Close()

	var res storage.ListShipmentsResult
	for rows.Next() {
		var total *int
		var id *string
		var row shipmentRow
		dest := append([]any{&total, &id}, row.dest()[1:]...)
		if err := rows.Scan(dest...); err != nil {
			return storage.ListShipmentsResult{}, err
		}
		if total != nil {
			res.Total = *total
		}
		if id != nil {
			row.id = *id
			res.Records = append(res.Records, row.toModel())
		}
	}
	if err := rows.Err(); err != nil {
		return storage.ListShipmentsResult{}, err
	}

	return res, nil
}

// shipmentRow mirrors shipmentColumns with nullable columns as pointers.
type shipmentRow struct {
	id               string
	cartonNumber     *string
	trackingNumber   *string
	status           *string
	labelRequest     []byte
	labelResponse    []byte
	trackingResponse []byte
	createdAt        *int64
	updatedAt        *int64
}

func (r *shipmentRow) dest() []any {
	return []any{
		&r.id,
		&r.cartonNumber,
		&r.trackingNumber,
		&r.status,
		&r.labelRequest,
		&r.labelResponse,
		&r.trackingResponse,
		&r.createdAt,
		&r.updatedAt,
	}
}

func (r *shipmentRow) toModel() model.Shipment {
	return model.Shipment{
		ID:               r.id,
		CartonNumber:     lo.FromPtr(r.cartonNumber),
		TrackingNumber:   lo.FromPtr(r.trackingNumber),
		Status:           model.ShipmentStatus(lo.FromPtr(r.status)),
		LabelRequest:     r.labelRequest,
		LabelResponse:    r.labelResponse,
		TrackingResponse: r.trackingResponse,
		CreatedAt:        lo.FromPtr(r.createdAt),
		UpdatedAt:        lo.FromPtr(r.updatedAt),
	}
}

// nullableJSON turns an empty document into SQL NULL.
func nullableJSON(doc []byte) any {
	if len(doc) == 0 {
		return nil
	}
	return string(doc)
}
