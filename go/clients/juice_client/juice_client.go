package juice_client

import (
	"time"

	"github.com/vivekstills/boat/go/clients"
)

// Config holds what the partner client needs to reach the leaderboard feed
type Config struct {
	BaseURL    string
	APIKey     string
	AuthScheme clients.AuthScheme
	Code       string // optional board code, appended as /leaderboard/{code}
	Timeout    time.Duration
}

type Client struct {
	*clients.BaseClient
	code string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	client := &Client{
		BaseClient: clients.NewBaseClient(baseURL),
		code:       cfg.Code,
	}

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	client.SetHeader(ContentTypeHeader, ContentTypeJSON)
	clients.ApplyAuth(client.BaseClient, cfg.AuthScheme, cfg.APIKey)

	return client
}
