// README: Booking.com (RapidAPI) hotel search client.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const (
	DefaultBaseURL = "https://booking-com15.p.rapidapi.com"
	searchPath     = "/api/v1/hotels/searchHotels"
)

var (
	ErrMissingAPIKey = errors.New("booking: missing rapidapi key")
	ErrMissingDestID = errors.New("booking: missing destination id")
)

type Config struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Host == "" {
		if u, err := url.Parse(cfg.BaseURL); err == nil {
			cfg.Host = u.Host
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		host:       cfg.Host,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// searchResponse is the provider envelope; status=false carries the reason in
// message.
type searchResponse struct {
	Status  bool            `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    types.HotelData `json:"data"`
}

// SearchHotels runs one page of a hotel search. Transport failures and non-200
// replies are errors; a provider-level rejection is reported in Error.
func (c *Client) SearchHotels(ctx context.Context, q types.HotelQuery) (types.HotelSearchResult, error) {
	if c.apiKey == "" {
		return types.HotelSearchResult{}, ErrMissingAPIKey
	}
	if q.DestID == "" {
		return types.HotelSearchResult{}, ErrMissingDestID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+queryParams(q).Encode(), nil)
	if err != nil {
		return types.HotelSearchResult{}, fmt.Errorf("booking: build request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.HotelSearchResult{}, fmt.Errorf("booking: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.HotelSearchResult{}, fmt.Errorf("booking: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.HotelSearchResult{}, fmt.Errorf("booking: search failed (%d): %s", resp.StatusCode, body)
	}

	var env searchResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return types.HotelSearchResult{}, fmt.Errorf("booking: decode response: %w", err)
	}

	result := types.HotelSearchResult{Data: env.Data}
	if !env.Status {
		result.Error = messageText(env.Message)
	}
	c.logger.Debug("booking hotel search",
		zap.String("dest_id", q.DestID),
		zap.Int("hotels", len(result.Data.Hotels)),
		zap.Bool("status", env.Status))
	return result, nil
}

func queryParams(q types.HotelQuery) url.Values {
	searchType := q.SearchType
	if searchType == "" {
		searchType = "CITY"
	}
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	rooms := q.RoomQty
	if rooms <= 0 {
		rooms = 1
	}
	currency := q.Currency
	if currency == "" {
		currency = "USD"
	}

	v := url.Values{}
	v.Set("dest_id", q.DestID)
	v.Set("search_type", searchType)
	v.Set("arrival_date", q.ArrivalDate)
	v.Set("departure_date", q.DepartureDate)
	v.Set("adults", strconv.Itoa(adults))
	v.Set("room_qty", strconv.Itoa(rooms))
	v.Set("page_number", "1")
	if q.PriceMin > 0 {
		v.Set("price_min", strconv.Itoa(q.PriceMin))
	}
	if q.PriceMax > 0 {
		v.Set("price_max", strconv.Itoa(q.PriceMax))
	}
	v.Set("units", "metric")
	v.Set("temperature_unit", "c")
	v.Set("languagecode", "en-us")
	v.Set("currency_code", currency)
	return v
}

// messageText flattens the provider's message, which is either a string or a
// list of {field: reason} objects.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "hotel search rejected"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
