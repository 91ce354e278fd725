package storage

import (
	"context"
	"database/sql"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
)

type StorageContextKey string

const (
	TRANSACTION StorageContextKey = "transaction"
)

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	// RowsAffected returns the number of rows affected by an
	// update, insert, or delete.
	RowsAffected() (int64, error)
}

type CreateTxOption func(*sql.TxOptions)

type TransactionInterface interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
}

func TxOptionWithWrite(write bool) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.ReadOnly = !write
	}
}

func TxOptionWithIsolationLevel(level sql.IsolationLevel) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.Isolation = level
	}
}

type SettingsStorage interface {
	TransactionInterface
	// GetSettings returns model.ErrSettingsNotFound when nothing has been saved yet.
	GetSettings(ctx context.Context, tx Tx) (model.Settings, error)
	StoreSettings(ctx context.Context, tx Tx, settings model.Settings) error
}

// ListShipmentsRequest is the request to list ledger entries.
type ListShipmentsRequest struct {
	Offset int `json:"offset"` // Offset of the shipments to be listed.
	Limit  int `json:"limit"`  // Limit of the shipments to be listed. 0 means no limit.

	// Filters
	IDs           []string               `json:"ids"`            // The IDs of the shipments.
	CartonNumbers []string               `json:"carton_numbers"` // Carton numbers.
	Statuses      []model.ShipmentStatus `json:"statuses"`       // Statuses.
	Day           string                 `json:"day"`            // Calendar day (YYYY-MM-DD) of created_at in TimeZone.
	TimeZone      string                 `json:"time_zone"`      // IANA time zone used with Day. Empty means UTC.
}

// ListShipmentsResult is the result of listing shipments, newest first.
type ListShipmentsResult struct {
	Total   int              `json:"total"`   // Total number of matching shipments.
	Records []model.Shipment `json:"records"` // Records of shipments.
}

type ShipmentStorage interface {
	TransactionInterface
	AddShipment(ctx context.Context, tx Tx, shipment model.Shipment) error
	// GetLatestShipment returns the most recently created entry for cartonNumber with the
	// given status, or model.ErrShipmentNotFound.
	GetLatestShipment(ctx context.Context, tx Tx, cartonNumber string, status model.ShipmentStatus) (model.Shipment, error)
	ListShipments(ctx context.Context, tx Tx, req ListShipmentsRequest) (ListShipmentsResult, error)
}

// LabelStorage is everything the label batch needs from the database.
type LabelStorage interface {
	TransactionInterface
	GetSettings(ctx context.Context, tx Tx) (model.Settings, error)
	AddShipment(ctx context.Context, tx Tx, shipment model.Shipment) error
	GetLatestShipment(ctx context.Context, tx Tx, cartonNumber string, status model.ShipmentStatus) (model.Shipment, error)
}
