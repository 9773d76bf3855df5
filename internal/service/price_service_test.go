package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/coingecko"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/testutil"
)

func TestPriceService_RefreshStale(t *testing.T) {
	t.Run("fetches prices and recomputes holdings", func(t *testing.T) {
		tracker, cache := testutil.NewTestTracker(t)
		tracker.LoadCoins([]model.Coin{{ID: testutil.MakeID(), Symbol: "BTC", CoingeckoID: "bitcoin"}})
		tracker.LoadTransactions([]model.Transaction{
			{ID: testutil.MakeID(), Type: model.TypeBuy, CoinSymbol: "BTC", Amount: 1, TotalCostUSD: 40000},
		})

		oracle := testutil.NewMockOracle()
		svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

		if err := svc.RefreshStale(context.Background()); err != nil {
			t.Fatalf("RefreshStale failed: %v", err)
		}

		entry, ok := cache.Get("bitcoin", time.Now().UTC())
		if !ok {
			t.Fatal("Expected bitcoin entry in cache after refresh")
		}
		if entry.PriceUSD != 45000 {
			t.Errorf("Expected cached price 45000, got %v", entry.PriceUSD)
		}

		snapshot := tracker.Holdings()
		if holding := snapshot.Holdings["BTC"]; holding.CurrentValue != 45000 {
			t.Errorf("Expected holdings recomputed at 45000, got %v", holding.CurrentValue)
		}
		if tracker.LastFetch().IsZero() {
			t.Error("Expected last fetch timestamp to be recorded")
		}
	})

	t.Run("fresh cache skips the oracle", func(t *testing.T) {
		tracker, cache := testutil.NewTestTracker(t)
		tracker.LoadCoins([]model.Coin{{ID: testutil.MakeID(), Symbol: "BTC", CoingeckoID: "bitcoin"}})

		oracle := testutil.NewMockOracle()
		svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

		if err := svc.RefreshStale(context.Background()); err != nil {
			t.Fatalf("First refresh failed: %v", err)
		}
		if err := svc.RefreshStale(context.Background()); err != nil {
			t.Fatalf("Second refresh failed: %v", err)
		}

		if len(oracle.MarketsCalls) != 1 {
			t.Errorf("Expected 1 oracle call for a fresh cache, got %d", len(oracle.MarketsCalls))
		}
	})

	t.Run("rate limit degrades without error", func(t *testing.T) {
		tracker, cache := testutil.NewTestTracker(t)
		tracker.LoadCoins([]model.Coin{{ID: testutil.MakeID(), Symbol: "BTC", CoingeckoID: "bitcoin"}})

		oracle := testutil.NewMockOracle().WithError(apperrors.ErrOracleRateLimited)
		svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

		if err := svc.RefreshStale(context.Background()); err != nil {
			t.Fatalf("Expected rate limit to degrade, got %v", err)
		}

		if _, ok := cache.Get("bitcoin", time.Now().UTC()); ok {
			t.Error("Expected no cache entry after rate-limited fetch")
		}
	})

	t.Run("hard oracle failure surfaces", func(t *testing.T) {
		tracker, cache := testutil.NewTestTracker(t)
		tracker.LoadCoins([]model.Coin{{ID: testutil.MakeID(), Symbol: "BTC", CoingeckoID: "bitcoin"}})

		oracle := testutil.NewMockOracle().WithError(apperrors.ErrOracleUnavailable)
		svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

		if err := svc.RefreshStale(context.Background()); err == nil {
			t.Error("Expected error for unreachable oracle, got nil")
		}
	})

	t.Run("empty directory makes no request", func(t *testing.T) {
		tracker, cache := testutil.NewTestTracker(t)

		oracle := testutil.NewMockOracle()
		svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

		if err := svc.RefreshStale(context.Background()); err != nil {
			t.Fatalf("RefreshStale failed: %v", err)
		}
		if len(oracle.MarketsCalls) != 0 {
			t.Errorf("Expected no oracle calls, got %d", len(oracle.MarketsCalls))
		}
	})
}

func TestPriceService_RefreshAll_Pagination(t *testing.T) {
	tracker, cache := testutil.NewTestTracker(t)

	coins := make([]model.Coin, 150)
	market := make([]coingecko.MarketCoin, 150)
	for i := range coins {
		id := fmt.Sprintf("coin-%03d", i)
		coins[i] = model.Coin{ID: testutil.MakeID(), Symbol: fmt.Sprintf("C%03d", i), CoingeckoID: id}
		market[i] = coingecko.MarketCoin{ID: id, PriceUSD: float64(i)}
	}
	tracker.LoadCoins(coins)

	oracle := testutil.NewMockOracle().WithMarketData(market...)
	svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

	if err := svc.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	if len(oracle.MarketsCalls) != 2 {
		t.Fatalf("Expected 2 paged oracle calls, got %d", len(oracle.MarketsCalls))
	}
	if got := len(oracle.MarketsCalls[0]) + len(oracle.MarketsCalls[1]); got != 150 {
		t.Errorf("Expected 150 ids across pages, got %d", got)
	}

	if _, ok := cache.Get("coin-149", time.Now().UTC()); !ok {
		t.Error("Expected entry for the last paged coin")
	}
}

func TestPriceService_RefreshAll_RateLimitedPage(t *testing.T) {
	tracker, cache := testutil.NewTestTracker(t)

	// Two pages: ids 0-99 and 100-149. Throttling an id in the first page
	// must not fail the refresh or discard the second page's prices.
	coins := make([]model.Coin, 150)
	market := make([]coingecko.MarketCoin, 150)
	for i := range coins {
		id := fmt.Sprintf("coin-%03d", i)
		coins[i] = model.Coin{ID: testutil.MakeID(), Symbol: fmt.Sprintf("C%03d", i), CoingeckoID: id}
		market[i] = coingecko.MarketCoin{ID: id, PriceUSD: float64(i)}
	}
	tracker.LoadCoins(coins)

	oracle := testutil.NewMockOracle().WithMarketData(market...).WithRateLimitedIDs("coin-000")
	svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

	if err := svc.RefreshAll(context.Background()); err != nil {
		t.Fatalf("Expected rate-limited page to degrade, got %v", err)
	}

	if _, ok := cache.Get("coin-149", time.Now().UTC()); !ok {
		t.Error("Expected the unthrottled page to be cached")
	}
	if _, ok := cache.Get("coin-000", time.Now().UTC()); ok {
		t.Error("Expected no entry for the throttled page")
	}
}

func TestPriceService_ResetAndRefresh(t *testing.T) {
	tracker, cache := testutil.NewTestTracker(t)
	tracker.LoadCoins([]model.Coin{{ID: testutil.MakeID(), Symbol: "BTC", CoingeckoID: "bitcoin"}})

	oracle := testutil.NewMockOracle()
	svc := testutil.NewTestPriceService(t, oracle, tracker, cache)

	if err := svc.RefreshStale(context.Background()); err != nil {
		t.Fatalf("Initial refresh failed: %v", err)
	}

	oracle.MarketData = []coingecko.MarketCoin{{ID: "bitcoin", PriceUSD: 50000}}
	if err := svc.ResetAndRefresh(context.Background()); err != nil {
		t.Fatalf("ResetAndRefresh failed: %v", err)
	}

	entry, ok := cache.Get("bitcoin", time.Now().UTC())
	if !ok {
		t.Fatal("Expected bitcoin entry after reset and refresh")
	}
	if entry.PriceUSD != 50000 {
		t.Errorf("Expected refetched price 50000, got %v", entry.PriceUSD)
	}

	if len(oracle.MarketsCalls) != 2 {
		t.Errorf("Expected 2 oracle calls, got %d", len(oracle.MarketsCalls))
	}
}
