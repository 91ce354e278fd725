package kerp

import "net/http"

type ClientOption func(c *_Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *_Client) {
		c.baseURL = baseURL
	}
}

func WithAPIKey(apiKey string) ClientOption {
	return func(c *_Client) {
		c.apiKey = apiKey
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *_Client) {
		c.httpClient = httpClient
	}
}

type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

func NewClientWithConfig(cfg Config, options ...ClientOption) Client {
	opts := []ClientOption{WithBaseURL(cfg.BaseURL), WithAPIKey(cfg.APIKey)}
	return NewClient(append(opts, options...)...)
}
