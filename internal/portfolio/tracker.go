package portfolio

import (
	"sync"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/pricecache"
)

// Tracker is the single owning container for the session's coins,
// transactions, goals, price cache, and derived holdings.
//
// Every mutation goes through a method that recomputes the derived holdings
// before releasing the lock, so readers never observe an intermediate state
// where the ledger and the holdings disagree.
type Tracker struct {
	mu sync.RWMutex

	coins        []model.Coin
	transactions []model.Transaction
	goals        []model.Goal
	prices       *pricecache.Cache

	snapshot  model.HoldingsSnapshot
	lastFetch time.Time
}

// NewTracker creates an empty tracker around the given price cache.
func NewTracker(prices *pricecache.Cache) *Tracker {
	t := &Tracker{prices: prices}
	t.snapshot = model.HoldingsSnapshot{Holdings: map[string]model.Holding{}}
	return t
}

// recompute rebuilds the derived holdings. Callers must hold t.mu.
func (t *Tracker) recompute() {
	t.snapshot = ComputeHoldings(t.transactions, t.coins, t.prices.Snapshot())
}

// LoadCoins replaces the coin directory. Coins are loaded once at session
// start and immutable afterwards.
func (t *Tracker) LoadCoins(coins []model.Coin) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.coins = coins
	t.recompute()
}

// LoadTransactions replaces the entire transaction list.
func (t *Tracker) LoadTransactions(transactions []model.Transaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactions = transactions
	t.recompute()
}

// LoadGoals replaces the goal list.
func (t *Tracker) LoadGoals(goals []model.Goal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = goals
}

// AddTransaction admits a transaction into the ledger.
func (t *Tracker) AddTransaction(tx model.Transaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactions = append(t.transactions, tx)
	t.recompute()
}

// AddTransactions admits a batch of transactions (CSV import).
func (t *Tracker) AddTransactions(txs []model.Transaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactions = append(t.transactions, txs...)
	t.recompute()
}

// UpdateTransaction replaces the transaction with the same ID in place.
// Returns false when no such transaction exists.
func (t *Tracker) UpdateTransaction(tx model.Transaction) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.transactions {
		if t.transactions[i].ID == tx.ID {
			t.transactions[i] = tx
			t.recompute()
			return true
		}
	}
	return false
}

// RemoveTransaction deletes a transaction by ID.
// Returns false when no such transaction exists.
func (t *Tracker) RemoveTransaction(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.transactions {
		if t.transactions[i].ID == id {
			t.transactions = append(t.transactions[:i], t.transactions[i+1:]...)
			t.recompute()
			return true
		}
	}
	return false
}

// AddGoal appends a goal.
func (t *Tracker) AddGoal(g model.Goal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.goals = append(t.goals, g)
}

// UpdateGoal replaces the goal with the same ID in place.
func (t *Tracker) UpdateGoal(g model.Goal) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.goals {
		if t.goals[i].ID == g.ID {
			t.goals[i] = g
			return true
		}
	}
	return false
}

// RemoveGoal deletes a goal by ID.
func (t *Tracker) RemoveGoal(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals = append(t.goals[:i], t.goals[i+1:]...)
			return true
		}
	}
	return false
}

// RefreshHoldings recomputes the derived holdings against the current price
// cache. Called after a price refresh lands so the next read observes prices
// and ledger consistent with each other.
func (t *Tracker) RefreshHoldings() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recompute()
}

// ResetPriceCache clears the price cache and recomputes, forcing the next
// price read to refetch from the oracle.
func (t *Tracker) ResetPriceCache() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prices.Reset()
	t.recompute()
}

// MarkFetched records the time of the last successful oracle fetch.
func (t *Tracker) MarkFetched(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastFetch = at
}

// LastFetch returns the time of the last successful oracle fetch.
func (t *Tracker) LastFetch() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastFetch
}

// Holdings returns the current derived snapshot. The copy is shallow but the
// map is cloned, so callers can range freely.
func (t *Tracker) Holdings() model.HoldingsSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	holdings := make(map[string]model.Holding, len(t.snapshot.Holdings))
	for k, v := range t.snapshot.Holdings {
		holdings[k] = v
	}
	return model.HoldingsSnapshot{Holdings: holdings, Totals: t.snapshot.Totals}
}

// Coins returns a copy of the coin directory.
func (t *Tracker) Coins() []model.Coin {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]model.Coin(nil), t.coins...)
}

// OracleIDs returns the coingecko ids of every coin in the directory.
func (t *Tracker) OracleIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.coins))
	for _, c := range t.coins {
		ids = append(ids, c.CoingeckoID)
	}
	return ids
}

// Transactions returns a copy of the transaction list.
func (t *Tracker) Transactions() []model.Transaction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]model.Transaction(nil), t.transactions...)
}

// Goals returns a copy of the goal list.
func (t *Tracker) Goals() []model.Goal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]model.Goal(nil), t.goals...)
}

// History folds the ledger into the cumulative-invested series, seeded at
// cutoff and closed at now.
func (t *Tracker) History(cutoff, now time.Time) []model.SeriesPoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return CumulativeInvestedSeries(t.transactions, cutoff, now)
}
