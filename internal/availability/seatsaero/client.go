// Package seatsaero implements the availability provider against the
// seats.aero partner API.
package seatsaero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/provider/resilience"
)

const (
	// ProviderName identifies this availability provider.
	ProviderName = "seats.aero"

	// DefaultBaseURL is the seats.aero partner API base URL.
	DefaultBaseURL = "https://seats.aero"
)

// ClientConfig holds configuration for the seats.aero client.
type ClientConfig struct {
	// APIKey is the partner API key. May be empty; searches then fail with
	// availability.ErrKeyRequired.
	APIKey string

	// BaseURL overrides the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient resilience.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a seats.aero partner API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient resilience.Doer
	logger     zerolog.Logger
}

// NewClient creates a new seats.aero client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig("seatsaero"))
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

// Search fetches award availability for a route and date, filtered to
// entries with economy seats actually available.
func (c *Client) Search(ctx context.Context, origin, destination, date string) ([]availability.Entry, error) {
	if c.apiKey == "" {
		return nil, availability.ErrKeyRequired
	}

	q := url.Values{}
	q.Set("origin_airport", strings.ToUpper(origin))
	q.Set("destination_airport", strings.ToUpper(destination))
	q.Set("start_date", date)
	q.Set("end_date", date)

	reqURL := c.baseURL + "/partnerapi/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Partner-Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, availability.ErrKeyRequired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var saResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&saResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	entries := make([]availability.Entry, 0, len(saResp.Data))
	for _, d := range saResp.Data {
		if !d.YAvailable {
			continue
		}
		miles, parseErr := strconv.Atoi(d.YMileageCost)
		if parseErr != nil || miles <= 0 {
			continue
		}
		entries = append(entries, availability.Entry{
			Program:        d.Source,
			Miles:          miles,
			SeatsRemaining: d.YRemainingSeats,
			Stops:          stops(d.YDirect),
			Carriers:       d.YAirlines,
		})
	}
	return entries, nil
}

func stops(direct bool) int {
	if direct {
		return 0
	}
	return 1
}

// seats.aero API response structure.

type searchResponse struct {
	Data []struct {
		Source          string `json:"Source"`
		YAvailable      bool   `json:"YAvailable"`
		YMileageCost    string `json:"YMileageCost"`
		YRemainingSeats int    `json:"YRemainingSeats"`
		YDirect         bool   `json:"YDirect"`
		YAirlines       string `json:"YAirlines"`
	} `json:"data"`
}
