package label

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/goccy/go-json"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/kerp"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage"
	"github.com/impressdesigns/kassistant/pkg/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const unreadableLabelMessage = "Label created but could not be read. Check shipment history."

type LabelController interface {
	// RunLabels processes one scanned batch and returns the printer document: every label
	// produced, in processing order, joined by newlines.
	//
	// Per-carton carrier failures never abort the batch. Invalid input, an order-system
	// lookup failure, a database failure or a request that cannot be built do.
	RunLabels(ctx context.Context, ts int64, req RunLabelsRequest) (string, error)
}

type RunLabelsRequest struct {
	CartonNumbers           string            `json:"carton_numbers"` // One carton number per line.
	ShipDate                model.Date        `json:"ship_date"`      // Zero means today.
	Service                 fedex.ServiceType `json:"service"`
	Billing                 fedex.PaymentType `json:"billing"`
	ThirdPartyAccountNumber string            `json:"third_party_account_number"`
	AirAuth                 string            `json:"air_auth"`
	SaturdayDelivery        bool              `json:"saturday_delivery"`
}

type _LabelController struct {
	storage       storage.LabelStorage
	fedex         fedex.Client
	kerp          kerp.Client
	accountNumber string
	location      *time.Location

	createdCount  metric.Int64Counter
	failedCount   metric.Int64Counter
	notFoundCount metric.Int64Counter
}

func NewLabelController(storage storage.LabelStorage, fedexClient fedex.Client, kerpClient kerp.Client, options ...LabelControllerOption) LabelController {
	c := &_LabelController{
		storage:       storage,
		fedex:         fedexClient,
		kerp:          kerpClient,
		location:      time.UTC,
		createdCount:  otlp_util.NewInt64Counter("kassistant.label.created.count", metric.WithDescription("The total number of shipping labels created")),
		failedCount:   otlp_util.NewInt64Counter("kassistant.label.failed.count", metric.WithDescription("The total number of label requests the carrier did not fulfil")),
		notFoundCount: otlp_util.NewInt64Counter("kassistant.carton.not_found.count", metric.WithDescription("The total number of scanned cartons unknown to K-ERP")),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *_LabelController) RunLabels(ctx context.Context, ts int64, req RunLabelsRequest) (string, error) {
	if err := ValidateRunLabelsRequest(req); err != nil {
		return "", err
	}
	cartonNumbers, err := ParseCartonNumbers(req.CartonNumbers)
	if err != nil {
		return "", err
	}
	if req.ShipDate.IsZero() {
		req.ShipDate = model.DateIn(time.Unix(ts, 0), c.location)
	}

	batchID := util.NewUUID()
	ctx, span := otlp_util.Start(ctx, "ship_server/label.RunLabels",
		trace.WithAttributes(attribute.String("batch_id", batchID), attribute.Int("cartons", len(cartonNumbers))),
	)
	defer span.End()

	cartons, err := c.kerp.GetCartons(ctx, cartonNumbers)
	if err != nil {
		logrus.Errorf("batch %s: failed to look up cartons: %v", batchID, err)
		return "", err
	}
	byNumber := lo.KeyBy(cartons, func(carton kerp.Carton) string { return carton.CartonNumber })

	notFound := lo.Filter(cartonNumbers, func(number string, _ int) bool {
		_, ok := byNumber[number]
		return !ok
	})
	if err := c.recordNotFound(ctx, ts, batchID, notFound); err != nil {
		return "", err
	}

	found := lo.FilterMap(cartonNumbers, func(number string, _ int) (kerp.Carton, bool) {
		carton, ok := byNumber[number]
		return carton, ok
	})

	labels := make([]string, 0, len(found))
	for _, carton := range found {
		label, err := c.processCarton(ctx, ts, batchID, carton, req)
		if err != nil {
			logrus.Errorf("batch %s: aborted at carton %s: %v", batchID, carton.CartonNumber, err)
			return "", err
		}
		if label != "" {
			labels = append(labels, label)
		}
	}

	logrus.Infof("batch %s: %d cartons scanned, %d not found in K-ERP, %d labels printed", batchID, len(cartonNumbers), len(notFound), len(labels))
	return strings.Join(labels, "\n"), nil
}

func (c *_LabelController) recordNotFound(ctx context.Context, ts int64, batchID string, cartonNumbers []string) error {
	if len(cartonNumbers) == 0 {
		return nil
	}

	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, number := range cartonNumbers {
		shipment := model.Shipment{
			ID:           util.NewLedgerID(),
			CartonNumber: number,
			Status:       model.ShipmentStatusNotFoundInKERP,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		if err := c.storage.AddShipment(ctx, tx, shipment); err != nil {
			return err
		}
		logrus.Warnf("batch %s: carton %s not found in K-ERP", batchID, number)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	c.notFoundCount.Add(ctx, int64(len(cartonNumbers)), metric.WithAttributes(attribute.String("batch_id", batchID)))
	return nil
}

// processCarton returns the label to print for carton, which is empty when the carrier
// failed without a readable error.
func (c *_LabelController) processCarton(ctx context.Context, ts int64, batchID string, carton kerp.Carton, req RunLabelsRequest) (string, error) {
	ctx, span := otlp_util.Start(ctx, "ship_server/label.processCarton",
		trace.WithAttributes(attribute.String("batch_id", batchID), attribute.String("carton_number", carton.CartonNumber)),
	)
	defer span.End()

	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prior, err := c.storage.GetLatestShipment(ctx, tx, carton.CartonNumber, model.ShipmentStatusShipped)
	if err == nil {
		logrus.Warnf("batch %s: carton %s already shipped as %s", batchID, carton.CartonNumber, prior.TrackingNumber)
		return ErrorLabel(carton.CartonNumber, alreadyShippedMessage(prior.TrackingNumber)), nil
	} else if !errors.Is(err, model.ErrShipmentNotFound) {
		return "", err
	}

	var settings *model.Settings
	current, err := c.storage.GetSettings(ctx, tx)
	if err == nil {
		settings = &current
	} else if !errors.Is(err, model.ErrSettingsNotFound) {
		return "", err
	}

	labelReq, err := BuildLabelRequest(settings, carton, req, c.accountNumber)
	if err != nil {
		return "", err
	}
	requestDoc, err := json.Marshal(labelReq)
	if err != nil {
		return "", err
	}

	shipment := model.Shipment{
		ID:           util.NewLedgerID(),
		CartonNumber: carton.CartonNumber,
		Status:       model.ShipmentStatusCarrierError,
		LabelRequest: requestDoc,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	label := ""
	resp, err := c.fedex.CreateLabel(ctx, labelReq)
	switch {
	case err != nil:
		logrus.Errorf("batch %s: carton %s: carrier request failed: %v", batchID, carton.CartonNumber, err)
		shipment.LabelResponse = errorDocument(err)
	case resp.IsSuccess():
		shipment.LabelResponse = resp.Body
		trackingNumber, decoded, err := decodeLabelResponse(resp.Body)
		if err != nil {
			logrus.Errorf("batch %s: carton %s: unreadable label response: %v", batchID, carton.CartonNumber, err)
			label = ErrorLabel(carton.CartonNumber, unreadableLabelMessage)
			break
		}
		shipment.Status = model.ShipmentStatusShipped
		shipment.TrackingNumber = trackingNumber
		shipment.TrackingResponse = c.publishTracking(ctx, batchID, carton, trackingNumber, req)
		label = decoded
	case resp.StatusCode == http.StatusBadRequest:
		shipment.LabelResponse = resp.Body
		apiErr, err := fedex.ParseErrorResponse(resp.Body)
		if err != nil {
			logrus.Warnf("batch %s: carton %s: cannot format carrier error: %v", batchID, carton.CartonNumber, err)
			break
		}
		label = ErrorLabel(carton.CartonNumber, apiErr.String())
	default:
		// Only a bad request carries an error worth printing.
		logrus.Errorf("batch %s: carton %s: carrier returned status %d", batchID, carton.CartonNumber, resp.StatusCode)
		shipment.LabelResponse = resp.Body
	}

	if err := c.storage.AddShipment(ctx, tx, shipment); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	attrs := metric.WithAttributes(attribute.String("batch_id", batchID), attribute.String("service", string(req.Service)))
	if shipment.Status == model.ShipmentStatusShipped {
		c.createdCount.Add(ctx, 1, attrs)
		span.SetAttributes(attribute.String("tracking_number", shipment.TrackingNumber))
	} else {
		c.failedCount.Add(ctx, 1, attrs)
	}
	return label, nil
}

// publishTracking writes the tracking number back to K-ERP and returns the document to keep
// on the ledger. A failed write-back leaves the carton shipped.
func (c *_LabelController) publishTracking(ctx context.Context, batchID string, carton kerp.Carton, trackingNumber string, req RunLabelsRequest) []byte {
	update := kerp.TrackingUpdate{
		TrackingNumber: trackingNumber,
		Reference:      customerReference(req, carton),
		Department:     carton.CartonNumber,
		ShipDate:       req.ShipDate,
		Service:        req.Service.DisplayName(),
		PaymentType:    req.Billing.DisplayName(),
	}

	body, err := c.kerp.PublishTracking(ctx, []kerp.TrackingUpdate{update})
	if err != nil {
		logrus.Warnf("batch %s: carton %s: tracking write-back failed: %v", batchID, carton.CartonNumber, err)
		if body == nil {
			return errorDocument(err)
		}
	}
	return body
}

func decodeLabelResponse(body []byte) (string, string, error) {
	result, err := fedex.ParseLabelResponse(body)
	if err != nil {
		return "", "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(result.EncodedLabel)
	if err != nil {
		return "", "", err
	}
	return result.TrackingNumber, string(decoded), nil
}

func errorDocument(err error) []byte {
	doc, _ := json.Marshal(map[string]string{"error": err.Error()})
	return doc
}
