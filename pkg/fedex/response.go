package fedex

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Response is the raw outcome of a label call. Body is kept verbatim so it can be
// persisted; it is always a valid JSON document or nil.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// LabelResult is what a successful response carries for the first (and only) package.
type LabelResult struct {
	TrackingNumber string
	EncodedLabel   string
}

// APIError is one entry of the carrier's errors list.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e APIError) String() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type shipmentResponse struct {
	TransactionID string `json:"transactionId"`
	Output        struct {
		TransactionShipments []struct {
			MasterTrackingNumber string `json:"masterTrackingNumber"`
			PieceResponses       []struct {
				TrackingNumber   string `json:"trackingNumber"`
				PackageDocuments []struct {
					ContentType  string `json:"contentType"`
					DocType      string `json:"docType"`
					EncodedLabel string `json:"encodedLabel"`
				} `json:"packageDocuments"`
			} `json:"pieceResponses"`
		} `json:"transactionShipments"`
	} `json:"output"`
}

type errorResponse struct {
	TransactionID string     `json:"transactionId"`
	Errors        []APIError `json:"errors"`
}

var ErrMalformedResponse = errors.New("malformed carrier response")

// ParseLabelResponse extracts the tracking number and encoded label from the first
// piece of the first shipment.
func ParseLabelResponse(body []byte) (LabelResult, error) {
	var resp shipmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return LabelResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Output.TransactionShipments) == 0 {
		return LabelResult{}, fmt.Errorf("%w: no transaction shipments", ErrMalformedResponse)
	}
	shipment := resp.Output.TransactionShipments[0]
	if len(shipment.PieceResponses) == 0 {
		return LabelResult{}, fmt.Errorf("%w: no piece responses", ErrMalformedResponse)
	}
	piece := shipment.PieceResponses[0]
	if piece.TrackingNumber == "" {
		return LabelResult{}, fmt.Errorf("%w: missing tracking number", ErrMalformedResponse)
	}
	if len(piece.PackageDocuments) == 0 || piece.PackageDocuments[0].EncodedLabel == "" {
		return LabelResult{}, fmt.Errorf("%w: missing encoded label", ErrMalformedResponse)
	}

	return LabelResult{
		TrackingNumber: piece.TrackingNumber,
		EncodedLabel:   piece.PackageDocuments[0].EncodedLabel,
	}, nil
}

// ParseErrorResponse returns the first error of a failed call.
func ParseErrorResponse(body []byte) (APIError, error) {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return APIError{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Errors) == 0 {
		return APIError{}, fmt.Errorf("%w: empty errors list", ErrMalformedResponse)
	}
	return resp.Errors[0], nil
}

// normalizeBody makes a response body safe to store as a JSON document.
// Non-JSON bodies (an HTML gateway error page, for instance) are kept as a JSON string.
func normalizeBody(raw []byte) []byte {
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return raw
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}
