package model

import "time"

// Holding is the derived per-symbol aggregate. It is never stored as source of
// truth; it is recomputed from transactions and cached prices whenever either
// changes. Qty and Invested may legitimately go negative when recorded sells
// exceed recorded buys - that is a data-quality signal surfaced downstream,
// not an error to sanitize.
type Holding struct {
	Symbol       string  `json:"symbol"`
	Qty          float64 `json:"qty"`
	Invested     float64 `json:"invested"`
	PriceUSD     float64 `json:"priceUsd"`
	CurrentValue float64 `json:"currentValue"`
	PnL          float64 `json:"pnl"`
}

// PortfolioTotals aggregates holdings across all symbols. TotalValue sums the
// current value of symbols with positive quantity only; TotalPnL sums every
// symbol's unrealized profit and loss. The 24h/30d change figures apply the
// oracle-provided percentage deltas to current values.
type PortfolioTotals struct {
	TotalValue    float64 `json:"totalValue"`
	TotalInvested float64 `json:"totalInvested"`
	TotalPnL      float64 `json:"totalPnl"`
	Change24hUSD  float64 `json:"change24hUsd"`
	Change30dUSD  float64 `json:"change30dUsd"`
}

// HoldingsSnapshot is the contract surface read by renderers: per-symbol
// holdings plus portfolio totals, consistent with each other at the instant
// they were computed.
type HoldingsSnapshot struct {
	Holdings map[string]Holding `json:"holdings"`
	Totals   PortfolioTotals    `json:"totals"`
}

// SeriesPoint is one step of the cumulative-invested time series consumed by
// the historical trend chart.
type SeriesPoint struct {
	Date               time.Time `json:"date"`
	CumulativeInvested float64   `json:"cumulativeInvested"`
}
