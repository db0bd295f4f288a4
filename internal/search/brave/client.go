// Package brave implements the web search provider against the Brave Search
// API.
package brave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/provider/resilience"
	"github.com/awardpilot/awardpilot/internal/search"
)

const (
	// ProviderName identifies this search provider.
	ProviderName = "brave"

	// DefaultBaseURL is the Brave Search API base URL.
	DefaultBaseURL = "https://api.search.brave.com"

	// resultCount is how many hits each query requests.
	resultCount = 8
)

// ErrNoAPIKey is returned when the client has no subscription token. The
// estimate service treats it like any other degraded query.
var ErrNoAPIKey = errors.New("brave search API key not configured")

// ClientConfig holds configuration for the Brave client.
type ClientConfig struct {
	// APIKey is the Brave subscription token. May be empty; searches then
	// fail with ErrNoAPIKey.
	APIKey string

	// BaseURL overrides the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient resilience.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Brave web search client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient resilience.Doer
	logger     zerolog.Logger
}

// NewClient creates a new Brave client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search runs one web search and returns the result snippets. Freshness is
// restricted to the past year; stale award data charts are worse than none.
func (c *Client) Search(ctx context.Context, query string) ([]search.Result, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(resultCount))
	q.Set("freshness", "py")

	reqURL := c.baseURL + "/res/v1/web/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var braveResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&braveResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]search.Result, 0, len(braveResp.Web.Results))
	for _, r := range braveResp.Web.Results {
		results = append(results, search.Result{
			Title:       r.Title,
			Description: r.Description,
		})
	}
	return results, nil
}

// Brave API response structure.

type searchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}
