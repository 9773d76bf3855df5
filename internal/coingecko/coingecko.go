// Package coingecko provides a client for the CoinGecko market-data API, the
// external price oracle of the tracker. The client only fetches and decodes;
// freshness policy lives in the price cache and its callers.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
)

// Range is a fixed chart time-range selector.
type Range string

const (
	Range24h Range = "24h"
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
	Range1y  Range = "1y"
	RangeMax Range = "max"
)

// days maps each range to the CoinGecko days parameter.
var days = map[Range]string{
	Range24h: "1",
	Range7d:  "7",
	Range30d: "30",
	Range90d: "90",
	Range1y:  "365",
	RangeMax: "max",
}

// ParseRange validates a range selector from user input.
func ParseRange(s string) (Range, error) {
	r := Range(s)
	if _, ok := days[r]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidRange, s)
	}
	return r, nil
}

// Client provides methods for fetching market data from the CoinGecko API.
// It wraps an HTTP client and attaches the optional API key to every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a CoinGecko client for the given base URL. apiKey may be
// empty for the public, unauthenticated tier.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// SetAPIKey replaces the API key attached to subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

// Markets fetches current USD prices and 24h/30d percentage changes for the
// given coingecko ids in one call.
func (c *Client) Markets(ctx context.Context, ids []string) ([]MarketCoin, error) {
	if len(ids) == 0 {
		return []MarketCoin{}, nil
	}

	query := url.Values{
		"vs_currency":             {"usd"},
		"ids":                     {strings.Join(ids, ",")},
		"price_change_percentage": {"24h,30d"},
	}
	endpoint := fmt.Sprintf("%s/api/v3/coins/markets?%s", c.baseURL, query.Encode())

	var coins []MarketCoin
	if err := c.get(ctx, endpoint, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// MarketChart fetches the ordered (timestamp, price) sequence for one coin
// over the selected window.
func (c *Client) MarketChart(ctx context.Context, id string, window Range) ([]PricePoint, error) {
	d, ok := days[window]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRange, window)
	}

	query := url.Values{
		"vs_currency": {"usd"},
		"days":        {d},
	}
	endpoint := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?%s",
		c.baseURL, url.PathEscape(id), query.Encode())

	var raw marketChartResponse
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	points := make([]PricePoint, len(raw.Prices))
	for i, pair := range raw.Prices {
		points[i] = PricePoint{
			Date:     time.UnixMilli(int64(pair[0])).UTC(),
			PriceUSD: pair[1],
		}
	}
	return points, nil
}

// get executes one request against the CoinGecko API and decodes the JSON
// body into out. A 429 answer surfaces as ErrOracleRateLimited so callers can
// fall back to the last cached price.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.ErrOracleRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		var envelope apiError
		if json.Unmarshal(data, &envelope) == nil && envelope.Status.ErrorMessage != "" {
			return fmt.Errorf("coingecko error %d: %s",
				envelope.Status.ErrorCode, envelope.Status.ErrorMessage)
		}
		return fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	return json.Unmarshal(data, out)
}
