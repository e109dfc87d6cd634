// Package shopify implements the commerce fetcher against the Shopify
// Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/parley-labs/parley-core/internal/core/domain"
	"github.com/parley-labs/parley-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CommerceFetcher = (*Client)(nil)

const apiVersion = "2024-01"

// Config holds Shopify connection configuration
type Config struct {
	// ShopDomain is the myshopify domain (acme.myshopify.com)
	ShopDomain string

	// AccessToken is the Admin API access token
	AccessToken string

	// Timeout bounds each API call; defaults to 10s
	Timeout time.Duration
}

// Client provides read access to Shopify customers and orders.
type Client struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Shopify API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    fmt.Sprintf("https://%s/admin/api/%s", cfg.ShopDomain, apiVersion),
	}
}

// NewClientWithBaseURL creates a client against an explicit base URL.
// Used by tests to point at a local server.
func NewClientWithBaseURL(cfg Config, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type customerSearchResponse struct {
	Customers []domain.CommerceCustomer `json:"customers"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// FetchCustomer looks up a customer by email and loads their recent orders.
// Returns (nil, nil) when Shopify has no customer for the email.
func (c *Client) FetchCustomer(ctx context.Context, email string) (*domain.CommerceData, error) {
	var search customerSearchResponse
	query := url.Values{"query": {"email:" + email}}
	if err := c.get(ctx, "/customers/search.json?"+query.Encode(), &search); err != nil {
		return nil, fmt.Errorf("search customer: %w", err)
	}
	if len(search.Customers) == 0 {
		return nil, nil
	}

	customer := search.Customers[0]

	var orders ordersResponse
	path := fmt.Sprintf("/orders.json?customer_id=%d&status=any&limit=10", customer.ID)
	if err := c.get(ctx, path, &orders); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	return &domain.CommerceData{
		Customer: &customer,
		Orders:   orders.Orders,
	}, nil
}

// get performs an authenticated GET and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
