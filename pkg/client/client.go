package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/megambeast/fincompare/internal/models"
)

// Client is a Go SDK for the fincompare API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new fincompare client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Identity is a visitor identity with its assigned layout variant
type Identity struct {
	UserID  string `json:"user_id"`
	Variant string `json:"variant"`
}

// CategoryInfo describes one product category
type CategoryInfo struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	ProductCount int    `json:"product_count"`
	BalanceFacet bool   `json:"balance_facet"`
}

// ProductQuery holds the filter and sort parameters for a stateless
// product listing
type ProductQuery struct {
	Search      string
	FeeTier     string
	BalanceTier string
	Features    []string
	Sort        string
	Direction   string
}

// CreateIdentity creates a new visitor identity
func (c *Client) CreateIdentity(ctx context.Context) (*Identity, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/v1/identity", nil)
	if err != nil {
		return nil, err
	}

	var identity Identity
	if err := decodeEnvelope(resp, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// ListCategories retrieves all product categories
func (c *Client) ListCategories(ctx context.Context) ([]*CategoryInfo, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/v1/categories", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Categories []*CategoryInfo `json:"categories"`
		Total      int             `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// ListProducts retrieves a filtered, sorted view of one category
func (c *Client) ListProducts(ctx context.Context, category string, query ProductQuery) ([]*models.Product, error) {
	q := url.Values{}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.FeeTier != "" {
		q.Set("fee_tier", query.FeeTier)
	}
	if query.BalanceTier != "" {
		q.Set("balance_tier", query.BalanceTier)
	}
	if len(query.Features) > 0 {
		q.Set("features", strings.Join(query.Features, ","))
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Direction != "" {
		q.Set("dir", query.Direction)
	}

	path := fmt.Sprintf("/api/v1/categories/%s/products", category)
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Products []*models.Product `json:"products"`
		Total    int               `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

// ListFeatures retrieves the feature facet values of one category
func (c *Client) ListFeatures(ctx context.Context, category string) ([]string, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/categories/%s/features", category), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Features []string `json:"features"`
		Total    int      `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Features, nil
}

// GetProduct retrieves a product by ID
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/products/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := decodeEnvelope(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateSession creates a new comparison session
func (c *Client) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/api/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// GetSession retrieves a session by ID
func (c *Client) GetSession(ctx context.Context, id string) (*models.Session, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sessions/%s", id), nil)
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// DeleteSession removes a session
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/sessions/%s", id), nil)
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

// SetCategory switches the session's category, resetting filters, sort and
// selection
func (c *Client) SetCategory(ctx context.Context, id, category string) (*models.Session, error) {
	body, err := json.Marshal(models.SetCategoryRequest{Category: models.Category(category)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/sessions/%s/category", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// SetFilters replaces the session's filter state
func (c *Client) SetFilters(ctx context.Context, id string, filters models.FilterState) (*models.Session, error) {
	body, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/sessions/%s/filters", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// ResetFilters restores the session's filters to defaults
func (c *Client) ResetFilters(ctx context.Context, id string) (*models.Session, error) {
	resp, err := c.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/sessions/%s/filters/reset", id), nil)
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// Sort sorts the session's product list by the given field. Repeating the
// same field flips the direction.
func (c *Client) Sort(ctx context.Context, id, field string) (*models.Session, error) {
	body, err := json.Marshal(models.SortRequest{Field: models.SortField(field)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/sessions/%s/sort", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// ToggleSelection adds or removes a product from the comparison selection
func (c *Client) ToggleSelection(ctx context.Context, id, productID string) (*models.Session, error) {
	resp, err := c.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/sessions/%s/selection/%s", id, productID), nil)
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// ClearSelection empties the comparison selection
func (c *Client) ClearSelection(ctx context.Context, id string) (*models.Session, error) {
	resp, err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/sessions/%s/selection", id), nil)
	if err != nil {
		return nil, err
	}

	return decodeSession(resp)
}

// SessionProducts retrieves the filtered, sorted product list for the
// session's current state
func (c *Client) SessionProducts(ctx context.Context, id string) ([]*models.Product, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sessions/%s/products", id), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Products []*models.Product `json:"products"`
		Total    int               `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

// Comparison retrieves the side-by-side comparison table for the session's
// selected products
func (c *Client) Comparison(ctx context.Context, id string) (*models.Comparison, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sessions/%s/comparison", id), nil)
	if err != nil {
		return nil, err
	}

	var comparison models.Comparison
	if err := decodeEnvelope(resp, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}

// Recommendations retrieves recommended products for a user and category
func (c *Client) Recommendations(ctx context.Context, userID, category string) ([]*models.Recommendation, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("category", category)

	resp, err := c.doRequest(ctx, "GET", "/api/v1/recommendations?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Recommendations []*models.Recommendation `json:"recommendations"`
		Total           int                      `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Recommendations, nil
}

// RecordEvent submits an interaction event
func (c *Client) RecordEvent(ctx context.Context, ev models.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/api/v1/events", bytes.NewReader(body))
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

// RecentEvents retrieves the most recent interaction events
func (c *Client) RecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	path := "/api/v1/events/recent"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Events []*models.Event `json:"events"`
		Total  int             `json:"total"`
	}
	if err := decodeEnvelope(resp, &data); err != nil {
		return nil, err
	}
	return data.Events, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

// decodeSession unwraps a session from the response envelope
func decodeSession(resp []byte) (*models.Session, error) {
	var session models.Session
	if err := decodeEnvelope(resp, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// decodeEnvelope unwraps the API response envelope into dest. A nil dest
// only checks for success.
func decodeEnvelope(resp []byte, dest interface{}) error {
	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		if result.Error != nil {
			return fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
		}
		return fmt.Errorf("API error: request failed")
	}

	if dest != nil {
		if err := json.Unmarshal(result.Data, dest); err != nil {
			return fmt.Errorf("failed to unmarshal response data: %w", err)
		}
	}

	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

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
