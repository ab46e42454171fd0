// Package client implements the HTTP transport for the remote claims
// query service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppiankov/claimsight/internal/chat"
	"github.com/ppiankov/claimsight/internal/model"
	"github.com/ppiankov/claimsight/internal/util"
)

// Client talks to the claims query service. It owns the transport timeout;
// callers do not enforce one on top.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a client for the service at baseURL.
func New(baseURL string, cfg model.HTTPConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// queryRequest is the wire request for the query endpoint.
type queryRequest struct {
	Query string `json:"query"`
}

// queryResponse is the wire response. Answer is a pointer so a missing
// field is distinguishable from an empty string.
type queryResponse struct {
	Answer  *string                  `json:"answer"`
	Context []map[string]interface{} `json:"context"`
}

// Query posts one query and returns the answer with raw context records.
// A non-2xx status or a malformed body is an error; record normalization
// is the caller's concern.
func (c *Client) Query(ctx context.Context, query string) (*chat.Answer, error) {
	payload, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if body.Answer == nil {
		return nil, fmt.Errorf("malformed response: missing answer")
	}

	records := body.Context
	if records == nil {
		records = []map[string]interface{}{}
	}

	return &chat.Answer{Text: *body.Answer, Records: records}, nil
}

// Health probes the service's health endpoint. Any 2xx response is healthy;
// other statuses wrap chat.ErrServiceUnhealthy so callers can distinguish a
// reachable-but-broken service from an unreachable one.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %w", resp.StatusCode, chat.ErrServiceUnhealthy)
	}
	return nil
}

// BaseURL returns the configured service endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}
