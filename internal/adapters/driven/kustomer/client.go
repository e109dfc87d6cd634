// Package kustomer implements the helpdesk fetcher against the Kustomer
// REST API.
package kustomer

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
var _ driven.HelpdeskFetcher = (*Client)(nil)

const defaultBaseURL = "https://api.kustomerapp.com"

// Config holds Kustomer connection configuration
type Config struct {
	// APIKey is the Kustomer API bearer token
	APIKey string

	// BaseURL overrides the API endpoint; tests point it at a local server
	BaseURL string

	// Timeout bounds each API call; defaults to 10s
	Timeout time.Duration
}

// Client provides read access to Kustomer customers and conversations.
type Client struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Kustomer API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Kustomer wraps resources JSON-API style: {"data": {...}} for single
// objects and {"data": [...]} for collections.
type customerResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

type customerResponse struct {
	Data customerResource `json:"data"`
}

type conversationResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Channels      []string   `json:"channels"`
		LastMessageAt *time.Time `json:"lastMessageAt"`
		Satisfaction  *float64   `json:"satisfaction"`
	} `json:"attributes"`
}

type conversationsResponse struct {
	Data []conversationResource `json:"data"`
}

// FetchCustomer looks up a customer by email and aggregates their
// conversation history into helpdesk insights.
// Returns (nil, nil) when Kustomer has no customer for the email.
func (c *Client) FetchCustomer(ctx context.Context, email, conversationID string) (*domain.HelpdeskData, error) {
	if email == "" {
		// Conversation-only sessions carry no customer identity yet.
		return nil, nil
	}

	var customer customerResponse
	found, err := c.get(ctx, "/v1/customers/email="+url.PathEscape(email), &customer)
	if err != nil {
		return nil, fmt.Errorf("fetch customer: %w", err)
	}
	if !found {
		return nil, nil
	}

	var conversations conversationsResponse
	path := fmt.Sprintf("/v1/customers/%s/conversations?pageSize=25", customer.Data.ID)
	if _, err := c.get(ctx, path, &conversations); err != nil {
		return nil, fmt.Errorf("fetch conversations: %w", err)
	}

	return &domain.HelpdeskData{
		Customer: &domain.HelpdeskCustomer{
			ID:   customer.Data.ID,
			Name: customer.Data.Attributes.Name,
		},
		Insights: deriveInsights(conversations.Data),
	}, nil
}

// deriveInsights aggregates per-conversation attributes into the
// customer-level insight fields.
func deriveInsights(conversations []conversationResource) domain.HelpdeskInsights {
	insights := domain.HelpdeskInsights{
		TotalConversations: len(conversations),
	}

	channelCounts := make(map[string]int)
	var satSum float64
	var satCount int

	for _, conv := range conversations {
		for _, ch := range conv.Attributes.Channels {
			channelCounts[ch]++
		}
		if last := conv.Attributes.LastMessageAt; last != nil {
			if insights.LastContact == nil || last.After(*insights.LastContact) {
				insights.LastContact = last
			}
		}
		if conv.Attributes.Satisfaction != nil {
			satSum += *conv.Attributes.Satisfaction
			satCount++
		}
	}

	if satCount > 0 {
		avg := satSum / float64(satCount)
		insights.SatisfactionScore = &avg
	}

	best := 0
	for ch, count := range channelCounts {
		if count > best || (count == best && ch < insights.PreferredChannel) {
			insights.PreferredChannel = ch
			best = count
		}
	}

	return insights
}

// get performs an authenticated GET. Returns found=false on 404.
func (c *Client) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("kustomer returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}
