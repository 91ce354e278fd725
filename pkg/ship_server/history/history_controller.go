package history

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/sirupsen/logrus"
)

type HistoryController interface {
	// ListShipments returns the shipments created on req.Day, newest first.
	ListShipments(ctx context.Context, req ListShipmentsRequest) (storage.ListShipmentsResult, error)
	GetShipment(ctx context.Context, id string) (model.Shipment, error)
	// DecodeLabel returns the printer document stored with a shipped entry.
	DecodeLabel(ctx context.Context, id string) (string, error)
	ExportExcel(ctx context.Context, day model.Date) ([]byte, error)
}

type ListShipmentsRequest struct {
	Day      model.Date `json:"day"`
	Detailed bool       `json:"detailed"` // Include the stored request and response documents.
}

type _HistoryController struct {
	storage  storage.ShipmentStorage
	location *time.Location
}

func NewHistoryController(storage storage.ShipmentStorage, options ...HistoryControllerOption) HistoryController {
	c := &_HistoryController{
		storage:  storage,
		location: time.UTC,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *_HistoryController) ListShipments(ctx context.Context, req ListShipmentsRequest) (storage.ListShipmentsResult, error) {
	if req.Day.IsZero() {
		return storage.ListShipmentsResult{}, fmt.Errorf("day is required%w", model.ErrInvalidParameter)
	}

	result, err := c.listByDay(ctx, req.Day)
	if err != nil {
		return storage.ListShipmentsResult{}, err
	}
	if !req.Detailed {
		for i := range result.Records {
			result.Records[i].LabelRequest = nil
			result.Records[i].LabelResponse = nil
			result.Records[i].TrackingResponse = nil
		}
	}
	return result, nil
}

func (c *_HistoryController) GetShipment(ctx context.Context, id string) (model.Shipment, error) {
	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return model.Shipment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := c.storage.ListShipments(ctx, tx, storage.ListShipmentsRequest{Limit: 1, IDs: []string{id}})
	if err != nil {
		return model.Shipment{}, err
	}
	if len(result.Records) == 0 {
		return model.Shipment{}, model.ErrShipmentNotFound
	}
	return result.Records[0], nil
}

func (c *_HistoryController) DecodeLabel(ctx context.Context, id string) (string, error) {
	shipment, err := c.GetShipment(ctx, id)
	if err != nil {
		return "", err
	}
	if shipment.Status != model.ShipmentStatusShipped || len(shipment.LabelResponse) == 0 {
		return "", model.ErrLabelNotCreated
	}

	result, err := fedex.ParseLabelResponse(shipment.LabelResponse)
	if err != nil {
		logrus.Warnf("shipment %s: stored label response is unreadable: %v", id, err)
		return "", model.ErrLabelNotCreated
	}
	decoded, err := base64.StdEncoding.DecodeString(result.EncodedLabel)
	if err != nil {
		logrus.Warnf("shipment %s: stored label is not base64: %v", id, err)
		return "", model.ErrLabelNotCreated
	}
	return string(decoded), nil
}

func (c *_HistoryController) ExportExcel(ctx context.Context, day model.Date) ([]byte, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("day is required%w", model.ErrInvalidParameter)
	}

	result, err := c.listByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return BuildExcelExport(result.Records)
}

func (c *_HistoryController) listByDay(ctx context.Context, day model.Date) (storage.ListShipmentsResult, error) {
	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListShipmentsResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return c.storage.ListShipments(ctx, tx, storage.ListShipmentsRequest{
		Day:      day.String(),
		TimeZone: c.location.String(),
	})
}
