package coingecko

import "time"

// MarketCoin is one row of the /coins/markets response, trimmed to the fields
// the tracker consumes: the current USD price and the oracle-provided
// percentage deltas.
type MarketCoin struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	PriceUSD   float64 `json:"current_price"`
	Change24h  float64 `json:"price_change_percentage_24h_in_currency"`
	Change30d  float64 `json:"price_change_percentage_30d_in_currency"`
	LastUpdate string  `json:"last_updated"`
}

// PricePoint is one (timestamp, price) pair of a historical market chart.
type PricePoint struct {
	Date     time.Time `json:"date"`
	PriceUSD float64   `json:"priceUsd"`
}

// marketChartResponse mirrors the raw /coins/{id}/market_chart payload:
// arrays of [unix_ms, value] pairs.
type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// apiError mirrors CoinGecko's error envelope.
type apiError struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}
