package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/coingecko"
)

// MockOracle is a mock implementation of the price oracle for testing.
// It returns predefined data instead of making actual API calls.
//
// The price service fetches id pages from concurrent goroutines, so every
// method takes the mutex before touching state.
type MockOracle struct {
	mu sync.Mutex
	// MarketData is returned from Markets calls.
	MarketData []coingecko.MarketCoin
	// ChartData is returned from MarketChart calls.
	ChartData []coingecko.PricePoint
	// Err is returned from both query methods when set.
	Err error
	// RateLimited holds ids whose page answers with a rate-limit error.
	RateLimited map[string]bool
	// MarketsCalls records the id pages passed to Markets.
	MarketsCalls [][]string
}

// NewMockOracle creates a mock oracle with a single bitcoin quote.
func NewMockOracle() *MockOracle {
	return &MockOracle{
		MarketData: []coingecko.MarketCoin{
			{ID: "bitcoin", Symbol: "btc", PriceUSD: 45000, Change24h: 2.5, Change30d: 10},
		},
	}
}

// WithMarketData configures the quotes the mock returns.
func (m *MockOracle) WithMarketData(coins ...coingecko.MarketCoin) *MockOracle {
	m.MarketData = coins
	return m
}

// WithError configures the mock to fail both query methods.
func (m *MockOracle) WithError(err error) *MockOracle {
	m.Err = err
	return m
}

// WithRateLimitedIDs configures the mock to answer any Markets page that
// contains one of the given ids with a rate-limit error.
func (m *MockOracle) WithRateLimitedIDs(ids ...string) *MockOracle {
	if m.RateLimited == nil {
		m.RateLimited = make(map[string]bool, len(ids))
	}
	for _, id := range ids {
		m.RateLimited[id] = true
	}
	return m
}

// Markets returns the configured quotes filtered to the requested ids.
func (m *MockOracle) Markets(_ context.Context, ids []string) ([]coingecko.MarketCoin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarketsCalls = append(m.MarketsCalls, ids)
	if m.Err != nil {
		return nil, m.Err
	}
	for _, id := range ids {
		if m.RateLimited[id] {
			return nil, apperrors.ErrOracleRateLimited
		}
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var coins []coingecko.MarketCoin
	for _, c := range m.MarketData {
		if wanted[c.ID] {
			coins = append(coins, c)
		}
	}
	return coins, nil
}

// MarketChart returns the configured chart points.
func (m *MockOracle) MarketChart(_ context.Context, _ string, _ coingecko.Range) ([]coingecko.PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.ChartData != nil {
		return m.ChartData, nil
	}
	return []coingecko.PricePoint{
		{Date: time.Now().UTC().Add(-24 * time.Hour), PriceUSD: 44000},
		{Date: time.Now().UTC(), PriceUSD: 45000},
	}, nil
}
