// README: Amadeus Self-Service client (OAuth2 client credentials + flight-offers search).
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const (
	DefaultBaseURL = "https://test.api.amadeus.com"
	tokenPath      = "/v1/security/oauth2/token"
	offersPath     = "/v2/shopping/flight-offers"
	// Tokens are refreshed this long before the server-side expiry.
	tokenSkew = 30 * time.Second
)

var ErrMissingCredentials = errors.New("amadeus: missing api key or secret")

// APIError is returned for any non-200 reply.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: %s failed (%d): %s", e.Op, e.Status, e.Body)
}

type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client is safe for concurrent use; the access token is shared.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// SearchFlights queries one-way offers for a single adult. Location codes are
// upper-cased because extracted codes arrive title-cased ("Jfk").
func (c *Client) SearchFlights(ctx context.Context, origin, destination, departureDate string) (types.FlightSearchResult, error) {
	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(strings.TrimSpace(origin)))
	params.Set("destinationLocationCode", strings.ToUpper(strings.TrimSpace(destination)))
	params.Set("departureDate", departureDate)
	params.Set("adults", "1")

	body, err := c.get(ctx, offersPath, params)
	if err != nil {
		return types.FlightSearchResult{}, err
	}

	var result types.FlightSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return types.FlightSearchResult{}, fmt.Errorf("amadeus: decode flight offers: %w", err)
	}
	c.logger.Debug("amadeus flight search",
		zap.String("origin", params.Get("originLocationCode")),
		zap.String("destination", params.Get("destinationLocationCode")),
		zap.Int("offers", len(result.Data)))
	return result, nil
}

// get performs an authenticated GET, refreshing the token once on 401.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		token, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("amadeus: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("amadeus: do request: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("amadeus: read response: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			c.logger.Info("amadeus token rejected, re-authenticating")
			c.invalidate()
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{Op: "search", Status: resp.StatusCode, Body: string(body)}
		}
		return body, nil
	}
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus: token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("amadeus: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: "authenticate", Status: resp.StatusCode, Body: string(body)}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("amadeus: decode token: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSkew)
	return c.accessToken, nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}
