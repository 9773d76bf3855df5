package model

import "time"

// TransactionType classifies a ledger event. The set is closed: classification
// drives sign and aggregation treatment in the holdings and history folds, and
// the helpers below must stay exhaustive over these constants.
type TransactionType string

const (
	TypeBuy           TransactionType = "Buy"
	TypeInstantBuy    TransactionType = "Instant Buy"
	TypeMarketBuy     TransactionType = "Market Buy"
	TypeLimitBuy      TransactionType = "Limit Buy"
	TypeRecurringBuy  TransactionType = "Recurring Buy"
	TypeSell          TransactionType = "Sell"
	TypeTransfer      TransactionType = "Transfer"
	TypeGiftAirdrop   TransactionType = "Gift/Airdrop"
	TypeStakingReward TransactionType = "Staking Reward"
)

// TransactionTypes lists every known transaction kind, in display order.
var TransactionTypes = []TransactionType{
	TypeBuy,
	TypeInstantBuy,
	TypeMarketBuy,
	TypeLimitBuy,
	TypeRecurringBuy,
	TypeSell,
	TypeTransfer,
	TypeGiftAirdrop,
	TypeStakingReward,
}

// IsBuy reports whether the type counts as capital deployed into a position
// for live holdings math. Gift/Airdrop and Staking Reward are deliberately
// excluded here: acquired quantity without a purchase does not raise the live
// cost basis.
func (t TransactionType) IsBuy() bool {
	switch t {
	case TypeBuy, TypeInstantBuy, TypeMarketBuy, TypeLimitBuy, TypeRecurringBuy:
		return true
	}
	return false
}

// IsBuyForHistory reports whether the type adds to cumulative invested capital
// in the historical trend fold. The expanded set includes Gift/Airdrop and
// Staking Reward, which contribute their recorded cost to the invested-capital
// narrative even though they leave the live cost basis untouched.
func (t TransactionType) IsBuyForHistory() bool {
	return t.IsBuy() || t == TypeGiftAirdrop || t == TypeStakingReward
}

// Transaction is an atomic ledger event.
//
// A zero Date marks a transaction whose date could not be parsed; such
// transactions still participate in holdings math (which is order-independent)
// but are excluded from chronological aggregations.
type Transaction struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	CoinSymbol   string          `json:"coinSymbol"`
	Amount       float64         `json:"amount"`
	PricePerCoin float64         `json:"pricePerCoin"`
	TotalCostUSD float64         `json:"totalCostUsd"`
	FeeUSD       float64         `json:"feeUsd"`
	Exchange     string          `json:"exchange,omitempty"`
	Method       string          `json:"method,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}
