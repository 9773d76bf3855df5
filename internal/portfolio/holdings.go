// Package portfolio holds the in-memory ledger and the calculation engine
// deriving holdings, profit and loss, and historical invested-capital series
// from transactions and cached prices.
package portfolio

import (
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/money"
	"github.com/monkroe/crypto-tracker-sub000/internal/pricecache"
)

// ComputeHoldings derives the per-symbol holdings and portfolio totals from a
// transaction list and the current price snapshot.
//
// The accumulator is commutative: any ordering of the same transaction set
// produces identical results. Per transaction type:
//   - buy class (the five Buy variants): qty += amount, invested += total + fee
//   - Transfer: informational only, no effect on qty or invested
//   - everything else is a sell: qty -= amount, invested -= total
//     (the fee is not added back)
//
// Quantity or invested going negative is allowed and never clamped; a sell
// exceeding recorded buys is a data-entry signal surfaced downstream.
//
// A symbol with no matching coin or no cached price values at zero - not an
// error, the position simply awaits the next oracle refresh.
func ComputeHoldings(
	transactions []model.Transaction,
	coins []model.Coin,
	prices map[string]pricecache.Entry,
) model.HoldingsSnapshot {

	oracleID := make(map[string]string, len(coins))
	for _, coin := range coins {
		oracleID[coin.Symbol] = coin.CoingeckoID
	}

	holdings := make(map[string]model.Holding)

	for _, tx := range transactions {
		h := holdings[tx.CoinSymbol]
		h.Symbol = tx.CoinSymbol

		switch {
		case tx.Type.IsBuy():
			h.Qty += tx.Amount
			h.Invested += tx.TotalCostUSD + tx.FeeUSD
		case tx.Type == model.TypeTransfer:
			// moves between wallets, not in or out of the position
		default:
			h.Qty -= tx.Amount
			h.Invested -= tx.TotalCostUSD
		}

		holdings[tx.CoinSymbol] = h
	}

	var totals model.PortfolioTotals

	for symbol, h := range holdings {
		h.Qty = money.Round(h.Qty)
		h.Invested = money.Round(h.Invested)

		if entry, found := prices[oracleID[symbol]]; found {
			h.PriceUSD = entry.PriceUSD
			h.CurrentValue = money.Round(h.Qty * entry.PriceUSD)
			totals.Change24hUSD += h.CurrentValue * entry.Change24h / 100
			totals.Change30dUSD += h.CurrentValue * entry.Change30d / 100
		}
		h.PnL = money.Round(h.CurrentValue - h.Invested)

		if h.Qty > 0 {
			totals.TotalValue += h.CurrentValue
		}
		totals.TotalInvested += h.Invested
		totals.TotalPnL += h.PnL

		holdings[symbol] = h
	}

	totals.TotalValue = money.Round(totals.TotalValue)
	totals.TotalInvested = money.Round(totals.TotalInvested)
	totals.TotalPnL = money.Round(totals.TotalPnL)
	totals.Change24hUSD = money.Round(totals.Change24hUSD)
	totals.Change30dUSD = money.Round(totals.Change30dUSD)

	return model.HoldingsSnapshot{Holdings: holdings, Totals: totals}
}
