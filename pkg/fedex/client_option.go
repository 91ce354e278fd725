package fedex

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type ClientOption func(c *_Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *_Client) {
		c.baseURL = baseURL
	}
}

func WithCredentials(clientID, clientSecret string) ClientOption {
	return func(c *_Client) {
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *_Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit paces label calls to perSecond requests with the given burst.
// A non-positive perSecond leaves calls unpaced.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *_Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *_Client) {
		c.now = now
	}
}

// Config is the carrier section of the application config file.
type Config struct {
	BaseURL       string  `yaml:"base_url"`
	ClientID      string  `yaml:"client_id"`
	ClientSecret  string  `yaml:"client_secret"`
	AccountNumber string  `yaml:"account_number"` // Shipping account billed by default.
	RateLimit     float64 `yaml:"rate_limit"`     // Label requests per second. 0 disables pacing.
	RateBurst     int     `yaml:"rate_burst"`
}

func NewClientWithConfig(cfg Config, options ...ClientOption) Client {
	opts := []ClientOption{WithCredentials(cfg.ClientID, cfg.ClientSecret)}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	return NewClient(append(opts, options...)...)
}
