package fedex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://apis.fedex.com"

	tokenPath     = "/oauth/token"
	shipmentsPath = "/ship/v1/shipments"
)

// Client talks to the FedEx REST API.
//
// Neither call retries. A transport failure is returned as an error; any HTTP status,
// including 4xx and 5xx, is returned as a Response for the caller to classify.
type Client interface {
	// Authenticate returns a bearer token, fetching a new one only when there is no
	// cached token or the cached one has reached its expiry time.
	Authenticate(ctx context.Context) (string, error)
	CreateLabel(ctx context.Context, req ShipmentRequest) (Response, error)
}

type _Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
	now          func() time.Time

	mtx       sync.Mutex
	token     string
	expiresAt time.Time
}

func NewClient(options ...ClientOption) Client {
	c := &_Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, option := range options {
		option(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

func (c *_Client) Authenticate(ctx context.Context) (string, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	cfg := clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	issuedAt := c.now()
	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("fedex authenticate: %w", err)
	}

	expiresAt := tok.Expiry
	if seconds := expiresIn(tok); seconds > 0 {
		expiresAt = issuedAt.Add(time.Duration(seconds) * time.Second)
	}
	c.token = tok.AccessToken
	c.expiresAt = expiresAt
	logrus.Debugf("fedex: obtained access token valid until %s", expiresAt.Format(time.RFC3339))
	return c.token, nil
}

// expiresIn reads the token lifetime in seconds as sent by the server so the expiry is
// anchored to this client's clock rather than the oauth2 package's.
func expiresIn(tok *oauth2.Token) int64 {
	if tok.ExpiresIn > 0 {
		return tok.ExpiresIn
	}
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		seconds, _ := strconv.ParseInt(v, 10, 64)
		return seconds
	}
	return 0
}

func (c *_Client) CreateLabel(ctx context.Context, req ShipmentRequest) (Response, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return Response{}, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{}, fmt.Errorf("fedex rate limit: %w", err)
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+shipmentsPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-locale", "en_US")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("fedex create label: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("fedex create label: read body: %w", err)
	}

	logrus.Debugf("fedex: create label returned %d", resp.StatusCode)
	return Response{
		StatusCode: resp.StatusCode,
		Body:       normalizeBody(raw),
	}, nil
}
