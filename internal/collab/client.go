package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/megambeast/fincompare/internal/models"
)

// Option configures a collaborator client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *httpClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		c.httpClient.Timeout = timeout
	}
}

// httpClient is the shared transport for collaborator clients.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

func newHTTPClient(baseURL string, opts ...Option) httpClient {
	c := httpClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// doRequest performs an HTTP request and returns the response body.
func (c *httpClient) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// RecommendationClient talks to the external recommendation collaborator.
type RecommendationClient struct {
	httpClient
}

// NewRecommendationClient creates a recommendation collaborator client.
func NewRecommendationClient(baseURL string, opts ...Option) *RecommendationClient {
	return &RecommendationClient{newHTTPClient(baseURL, opts...)}
}

// Recommend fetches the ranked recommendation list for a user and category.
func (c *RecommendationClient) Recommend(ctx context.Context, userID string, category models.Category) ([]models.RecommendedItem, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("category", string(category))

	resp, err := c.doRequest(ctx, "GET", "/recommendations?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []models.RecommendedItem `json:"items"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Items, nil
}

// Type identifies the collaborator.
func (c *RecommendationClient) Type() string {
	return "recommender"
}

// HealthCheck probes the collaborator's health endpoint.
func (c *RecommendationClient) HealthCheck(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

// TrackingClient posts interaction events to the external tracking
// collaborator. Callers only care about success or failure, never the body.
type TrackingClient struct {
	httpClient
}

// NewTrackingClient creates a tracking collaborator client.
func NewTrackingClient(baseURL string, opts ...Option) *TrackingClient {
	return &TrackingClient{newHTTPClient(baseURL, opts...)}
}

// Track sends one interaction event.
func (c *TrackingClient) Track(ctx context.Context, ev *models.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := c.doRequest(ctx, "POST", "/events", bytes.NewReader(body)); err != nil {
		return err
	}
	return nil
}

// Type identifies the collaborator.
func (c *TrackingClient) Type() string {
	return "tracking"
}

// HealthCheck probes the collaborator's health endpoint.
func (c *TrackingClient) HealthCheck(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}
