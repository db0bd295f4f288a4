// Package amadeus implements the pricing provider against the Amadeus
// flight-offers search API.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/provider/resilience"
)

const (
	// ProviderName identifies this fare provider.
	ProviderName = "amadeus"

	// DefaultBaseURL is the Amadeus self-service API base URL.
	DefaultBaseURL = "https://test.api.amadeus.com"

	// maxOffers caps how many offers one search returns.
	maxOffers = 25
)

// ClientConfig holds configuration for the Amadeus client.
type ClientConfig struct {
	// ClientID and ClientSecret are the Amadeus API credentials (required).
	ClientID     string
	ClientSecret string

	// BaseURL overrides the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient resilience.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Amadeus flight-offers search client. It manages its own
// OAuth2 client-credentials token, refreshing it shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   resilience.Doer
	logger       zerolog.Logger

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new Amadeus client.
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
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		httpClient:   httpClient,
		logger:       cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// LowestFare returns the lowest one-way economy fare among the offers found
// for the route and departure date. Upstream failures are classified into
// pricing.UpstreamError kinds by status code.
func (c *Client) LowestFare(ctx context.Context, origin, destination, date string) (float64, error) {
	token, err := c.token(ctx)
	if err != nil {
		return 0, err
	}

	q := url.Values{}
	q.Set("originLocationCode", strings.ToUpper(origin))
	q.Set("destinationLocationCode", strings.ToUpper(destination))
	q.Set("departureDate", date)
	q.Set("adults", "1")
	q.Set("max", strconv.Itoa(maxOffers))

	reqURL := c.baseURL + "/v2/shopping/flight-offers?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &pricing.UpstreamError{Kind: pricing.KindUnknown}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, classifyStatus(resp.StatusCode)
	}

	var offers offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return 0, &pricing.UpstreamError{Kind: pricing.KindUnknown, Status: resp.StatusCode}
	}

	lowest := 0.0
	found := false
	for _, o := range offers.Data {
		p, parseErr := strconv.ParseFloat(o.Price.Total, 64)
		if parseErr != nil || p <= 0 {
			continue
		}
		if !found || p < lowest {
			lowest = p
			found = true
		}
	}

	if !found {
		return 0, &pricing.UpstreamError{Kind: pricing.KindNoResults, Status: resp.StatusCode}
	}
	return lowest, nil
}

// token returns a valid access token, fetching a new one when the cached
// token is missing or within a minute of expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Add(time.Minute).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &pricing.UpstreamError{Kind: pricing.KindUnknown}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
			return "", &pricing.UpstreamError{Kind: pricing.KindAuthFailed, Status: resp.StatusCode}
		}
		return "", classifyStatus(resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", &pricing.UpstreamError{Kind: pricing.KindUnknown, Status: resp.StatusCode}
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	c.logger.Debug().Int("expires_in", tok.ExpiresIn).Msg("refreshed amadeus token")
	return c.accessToken, nil
}

func classifyStatus(status int) *pricing.UpstreamError {
	switch {
	case status == http.StatusTooManyRequests:
		return &pricing.UpstreamError{Kind: pricing.KindRateLimited, Status: status}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &pricing.UpstreamError{Kind: pricing.KindAuthFailed, Status: status}
	case status == http.StatusBadRequest:
		return &pricing.UpstreamError{Kind: pricing.KindNoResults, Status: status}
	case status >= 500:
		return &pricing.UpstreamError{Kind: pricing.KindServerError, Status: status}
	default:
		return &pricing.UpstreamError{Kind: pricing.KindUnknown, Status: status}
	}
}

// Amadeus API response structures.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type offersResponse struct {
	Data []struct {
		Price struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}
