package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Serper.dev Google search endpoint.
	DefaultBaseURL    = "https://google.serper.dev/search"
	defaultMaxResults = 10
	defaultTimeout    = 60 * time.Second
)

// Config configures the Serper client.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxResults int
}

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client queries the Serper.dev API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Serper client.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	client := &Client{cfg: cfg, httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
	Message string   `json:"message"`
}

// Search runs one query and returns the organic results in ranking order.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("serper search: query required")
	}
	if c.cfg.APIKey == "" {
		return nil, errors.New("serper search: api key required")
	}
	body, err := json.Marshal(searchRequest{Q: query, Num: c.cfg.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("serper search: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper search: new request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper search: http error: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serper search: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("serper search: http %d: %s", resp.StatusCode, snippet(payload))
	}
	var decoded searchResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("serper search: decode response: %w", err)
	}
	if decoded.Organic == nil && decoded.Message != "" {
		return nil, fmt.Errorf("serper search: api error: %s", decoded.Message)
	}
	results := make([]Result, 0, len(decoded.Organic))
	for _, r := range decoded.Organic {
		results = append(results, Result{
			Title:   strings.TrimSpace(r.Title),
			Link:    strings.TrimSpace(r.Link),
			Snippet: strings.TrimSpace(r.Snippet),
		})
	}
	return results, nil
}

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > 160 {
		return text[:160] + "..."
	}
	if text == "" {
		return "<empty>"
	}
	return text
}
