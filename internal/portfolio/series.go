package portfolio

import (
	"sort"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/money"
)

// CumulativeInvestedSeries reconstructs invested capital over time for the
// historical trend chart.
//
// The series is seeded at cutoff with the sum of all prior transactions, then
// emits one point per subsequent transaction up to now, plus a final point at
// now. Per transaction type:
//   - expanded buy class (Buy variants plus Gift/Airdrop and Staking Reward):
//     adds total + fee
//   - Transfer: adds fee only - a transfer fee is a sunk cost, not a basis change
//   - everything else subtracts total
//
// Transactions without a parseable date are excluded from the fold entirely.
func CumulativeInvestedSeries(transactions []model.Transaction, cutoff, now time.Time) []model.SeriesPoint {
	dated := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Date.IsZero() || tx.Date.After(now) {
			continue
		}
		dated = append(dated, tx)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.Before(dated[j].Date)
	})

	var running float64
	i := 0
	for ; i < len(dated) && dated[i].Date.Before(cutoff); i++ {
		running += investedDelta(dated[i])
	}

	points := []model.SeriesPoint{{Date: cutoff, CumulativeInvested: money.Round(running)}}

	for ; i < len(dated); i++ {
		running += investedDelta(dated[i])
		points = append(points, model.SeriesPoint{
			Date:               dated[i].Date,
			CumulativeInvested: money.Round(running),
		})
	}

	return append(points, model.SeriesPoint{Date: now, CumulativeInvested: money.Round(running)})
}

func investedDelta(tx model.Transaction) float64 {
	switch {
	case tx.Type.IsBuyForHistory():
		return tx.TotalCostUSD + tx.FeeUSD
	case tx.Type == model.TypeTransfer:
		return tx.FeeUSD
	default:
		return -tx.TotalCostUSD
	}
}
