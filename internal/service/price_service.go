package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/coingecko"
	"github.com/monkroe/crypto-tracker-sub000/internal/portfolio"
	"github.com/monkroe/crypto-tracker-sub000/internal/pricecache"
)

// Oracle defines the interface for the external price oracle.
// This interface enables dependency injection and testing with mock implementations.
type Oracle interface {
	Markets(ctx context.Context, ids []string) ([]coingecko.MarketCoin, error)
	MarketChart(ctx context.Context, id string, window coingecko.Range) ([]coingecko.PricePoint, error)
}

// oraclePageSize caps the number of ids per markets request; larger coin
// directories are fetched as concurrent pages.
const oraclePageSize = 100

// PriceService owns oracle-fetch policy: which ids need refreshing, batching,
// rate-limit degradation, and the last-request-wins write-back into the cache.
type PriceService struct {
	cache   *pricecache.Cache
	oracle  Oracle
	tracker *portfolio.Tracker
}

// NewPriceService creates a new PriceService with the provided dependencies.
func NewPriceService(cache *pricecache.Cache, oracle Oracle, tracker *portfolio.Tracker) *PriceService {
	return &PriceService{
		cache:   cache,
		oracle:  oracle,
		tracker: tracker,
	}
}

// RefreshStale fetches prices for every coin whose cache entry is absent or
// older than the freshness window. A rate-limited oracle is not an error:
// computation continues on the last cached prices.
func (s *PriceService) RefreshStale(ctx context.Context) error {
	ids := s.cache.Stale(s.tracker.OracleIDs(), time.Now().UTC())
	if len(ids) == 0 {
		return nil
	}
	return s.refresh(ctx, ids)
}

// RefreshAll fetches prices for the entire coin directory regardless of
// freshness.
func (s *PriceService) RefreshAll(ctx context.Context) error {
	ids := s.tracker.OracleIDs()
	if len(ids) == 0 {
		return nil
	}
	return s.refresh(ctx, ids)
}

// ResetAndRefresh clears the cache and refetches everything. Exposed as the
// manual "refresh prices" action.
func (s *PriceService) ResetAndRefresh(ctx context.Context) error {
	s.tracker.ResetPriceCache()
	return s.RefreshAll(ctx)
}

// Chart returns the oracle's (timestamp, price) sequence for one coin over a
// fixed window. Pure passthrough; the chart renderer is an external consumer.
func (s *PriceService) Chart(ctx context.Context, coingeckoID string, window coingecko.Range) ([]coingecko.PricePoint, error) {
	return s.oracle.MarketChart(ctx, coingeckoID, window)
}

func (s *PriceService) refresh(ctx context.Context, ids []string) error {
	gen := s.cache.Begin()

	var (
		mu          sync.Mutex
		entries     []pricecache.Entry
		rateLimited bool
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, page := range paginate(ids, oraclePageSize) {
		page := page
		g.Go(func() error {
			coins, err := s.oracle.Markets(ctx, page)
			if err != nil {
				// A throttled page must not cancel its siblings: record the
				// rate limit and let the remaining pages land.
				if errors.Is(err, apperrors.ErrOracleRateLimited) {
					mu.Lock()
					rateLimited = true
					mu.Unlock()
					return nil
				}
				return err
			}

			fetchedAt := time.Now().UTC()
			mu.Lock()
			for _, c := range coins {
				entries = append(entries, pricecache.Entry{
					CoingeckoID: c.ID,
					PriceUSD:    c.PriceUSD,
					Change24h:   c.Change24h,
					Change30d:   c.Change30d,
					FetchedAt:   fetchedAt,
				})
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if rateLimited {
		// Degrade rather than block: keep whatever the cache still holds for
		// the pages that never arrived.
		log.Printf("price refresh rate limited, keeping cached prices")
		if len(entries) == 0 {
			return nil
		}
	}

	// A fetch superseded by a newer one (or by a cache reset) is discarded.
	if s.cache.PutIfCurrent(gen, entries) {
		s.tracker.MarkFetched(time.Now().UTC())
		s.tracker.RefreshHoldings()
	}

	return nil
}

// paginate splits ids into pages of at most size elements.
func paginate(ids []string, size int) [][]string {
	var pages [][]string
	for len(ids) > size {
		pages = append(pages, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		pages = append(pages, ids)
	}
	return pages
}
