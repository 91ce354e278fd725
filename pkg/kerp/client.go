package kerp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const (
	API_KEY_HEADER = "X-API-Key"

	cartonsPath  = "/shipping/cartons"
	trackingPath = "/shipping/tracking"
)

var ErrUnexpectedStatus = errors.New("unexpected status from K-ERP")

// Client is the order-management system (K-ERP) API.
type Client interface {
	// GetCartons resolves carton numbers in a single call. Unknown numbers are simply
	// absent from the result; the order of the result is not significant.
	GetCartons(ctx context.Context, cartonNumbers []string) ([]Carton, error)
	// PublishTracking writes tracking numbers back. The returned document is the raw
	// response body, kept for the shipment ledger. On a non-2xx status both the body
	// and an error are returned.
	PublishTracking(ctx context.Context, updates []TrackingUpdate) ([]byte, error)
}

type _Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(options ...ClientOption) Client {
	c := &_Client{
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

func (c *_Client) GetCartons(ctx context.Context, cartonNumbers []string) ([]Carton, error) {
	if len(cartonNumbers) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, cartonNumber := range cartonNumbers {
		query.Add("carton_number", cartonNumber)
	}

	status, raw, err := c.execute(ctx, http.MethodGet, cartonsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status/100 != 2 {
		return nil, fmt.Errorf("%w: get cartons returned %d: %s", ErrUnexpectedStatus, status, string(raw))
	}

	var resp cartonsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode cartons: %w", err)
	}
	return resp.Data, nil
}

func (c *_Client) PublishTracking(ctx context.Context, updates []TrackingUpdate) ([]byte, error) {
	body, err := json.Marshal(updates)
	if err != nil {
		return nil, err
	}

	status, raw, err := c.execute(ctx, http.MethodPost, trackingPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		raw, _ = json.Marshal(string(raw))
	}
	if status/100 != 2 {
		return raw, fmt.Errorf("%w: publish tracking returned %d", ErrUnexpectedStatus, status)
	}
	return raw, nil
}

func (c *_Client) execute(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set(API_KEY_HEADER, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("kerp %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("kerp %s %s: read body: %w", method, path, err)
	}
	logrus.Debugf("kerp: %s %s returned %d", method, path, resp.StatusCode)
	return resp.StatusCode, raw, nil
}
