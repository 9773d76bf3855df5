package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/model"
)

// CoinBuilder provides a fluent interface for creating test coins.
//
// Example usage:
//
//	// Simple creation with defaults
//	coin := testutil.NewCoin().Build(t, db)
//
//	// Customized coin
//	coin := testutil.NewCoin().
//	    WithSymbol("ETH").
//	    WithCoingeckoID("ethereum").
//	    Build(t, db)
type CoinBuilder struct {
	ID          string
	Symbol      string
	CoingeckoID string
	Name        string
}

// NewCoin creates a CoinBuilder with sensible defaults.
func NewCoin() *CoinBuilder {
	return &CoinBuilder{
		ID:          MakeID(),
		Symbol:      MakeSymbol("BTC"),
		CoingeckoID: "bitcoin",
		Name:        "Bitcoin",
	}
}

// WithID sets a custom ID.
func (b *CoinBuilder) WithID(id string) *CoinBuilder {
	b.ID = id
	return b
}

// WithSymbol sets a custom symbol.
func (b *CoinBuilder) WithSymbol(symbol string) *CoinBuilder {
	b.Symbol = symbol
	return b
}

// WithCoingeckoID sets the oracle identifier.
func (b *CoinBuilder) WithCoingeckoID(id string) *CoinBuilder {
	b.CoingeckoID = id
	return b
}

// WithName sets a custom name.
func (b *CoinBuilder) WithName(name string) *CoinBuilder {
	b.Name = name
	return b
}

// Build creates the coin in the database and returns it.
func (b *CoinBuilder) Build(t *testing.T, db *sql.DB) model.Coin {
	t.Helper()

	query := `
		INSERT INTO coin (id, symbol, coingecko_id, name)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.CoingeckoID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test coin: %v", err)
	}

	return model.Coin{
		ID:          b.ID,
		Symbol:      b.Symbol,
		CoingeckoID: b.CoingeckoID,
		Name:        b.Name,
	}
}

// CreateCoin creates a coin with the given symbol and oracle ID.
//
// Example usage:
//
//	coin := testutil.CreateCoin(t, db, "BTC", "bitcoin")
func CreateCoin(t *testing.T, db *sql.DB, symbol, coingeckoID string) model.Coin {
	t.Helper()
	return NewCoin().WithSymbol(symbol).WithCoingeckoID(coingeckoID).WithName(symbol).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction("BTC").
//	    WithType(model.TypeSell).
//	    WithAmount(0.2).
//	    Build(t, db)
type TransactionBuilder struct {
	ID           string
	Date         time.Time
	Type         model.TransactionType
	CoinSymbol   string
	Amount       float64
	PricePerCoin float64
	TotalCostUSD float64
	FeeUSD       float64
	Exchange     string
	Method       string
	Notes        string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(coinSymbol string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:         model.TypeBuy,
		CoinSymbol:   coinSymbol,
		Amount:       0.5,
		PricePerCoin: 40000,
		TotalCostUSD: 20000,
		FeeUSD:       10,
		Exchange:     "Coinbase",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithoutDate clears the date, marking it unparsable.
func (b *TransactionBuilder) WithoutDate() *TransactionBuilder {
	b.Date = time.Time{}
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType model.TransactionType) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithAmount sets the coin quantity.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithTotalCost sets the USD total.
func (b *TransactionBuilder) WithTotalCost(total float64) *TransactionBuilder {
	b.TotalCostUSD = total
	return b
}

// WithFee sets the USD fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.FeeUSD = fee
	return b
}

// WithNotes sets the notes field.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, type, coin_symbol, amount, price_per_coin,
		                           total_cost_usd, fee_usd, exchange, method, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var date interface{}
	if !b.Date.IsZero() {
		date = b.Date.Format("2006-01-02")
	}

	createdAt := time.Now().UTC()
	_, err := db.Exec(query,
		b.ID, date, string(b.Type), b.CoinSymbol, b.Amount, b.PricePerCoin,
		b.TotalCostUSD, b.FeeUSD, b.Exchange, b.Method, b.Notes,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		Date:         b.Date,
		Type:         b.Type,
		CoinSymbol:   b.CoinSymbol,
		Amount:       b.Amount,
		PricePerCoin: b.PricePerCoin,
		TotalCostUSD: b.TotalCostUSD,
		FeeUSD:       b.FeeUSD,
		Exchange:     b.Exchange,
		Method:       b.Method,
		Notes:        b.Notes,
		CreatedAt:    createdAt,
	}
}

// GoalBuilder provides a fluent interface for creating test goals.
type GoalBuilder struct {
	ID           string
	Description  string
	TargetAmount float64
	Achieved     bool
}

// NewGoal creates a GoalBuilder with sensible defaults.
func NewGoal() *GoalBuilder {
	return &GoalBuilder{
		ID:           MakeID(),
		Description:  "Test goal " + randomAlphanumeric(6),
		TargetAmount: 100000,
		Achieved:     false,
	}
}

// WithDescription sets a custom description.
func (b *GoalBuilder) WithDescription(desc string) *GoalBuilder {
	b.Description = desc
	return b
}

// WithTargetAmount sets the target amount.
func (b *GoalBuilder) WithTargetAmount(amount float64) *GoalBuilder {
	b.TargetAmount = amount
	return b
}

// AchievedGoal marks the goal as achieved.
func (b *GoalBuilder) AchievedGoal() *GoalBuilder {
	b.Achieved = true
	return b
}

// Build creates the goal in the database and returns it.
func (b *GoalBuilder) Build(t *testing.T, db *sql.DB) model.Goal {
	t.Helper()

	query := `
		INSERT INTO goal (id, description, target_amount, achieved, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.Description, b.TargetAmount, b.Achieved,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test goal: %v", err)
	}

	return model.Goal{
		ID:           b.ID,
		Description:  b.Description,
		TargetAmount: b.TargetAmount,
		Achieved:     b.Achieved,
		CreatedAt:    createdAt,
	}
}
