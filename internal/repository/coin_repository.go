package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
)

// CoinRepository provides data access methods for the coin table.
type CoinRepository struct {
	db *sql.DB
}

// NewCoinRepository creates a new CoinRepository with the provided database connection.
func NewCoinRepository(db *sql.DB) *CoinRepository {
	return &CoinRepository{db: db}
}

// GetCoins retrieves the full coin directory ordered by symbol.
func (r *CoinRepository) GetCoins() ([]model.Coin, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, coingecko_id, name
		FROM coin
		ORDER BY symbol ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin table: %w", err)
	}
	defer rows.Close()

	coins := []model.Coin{}
	for rows.Next() {
		var c model.Coin
		if err := rows.Scan(&c.ID, &c.Symbol, &c.CoingeckoID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan coin table results: %w", err)
		}
		coins = append(coins, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin table: %w", err)
	}

	return coins, nil
}

// GetCoinBySymbol retrieves a single coin by its ticker symbol.
func (r *CoinRepository) GetCoinBySymbol(symbol string) (model.Coin, error) {
	var c model.Coin
	err := r.db.QueryRow(`
		SELECT id, symbol, coingecko_id, name
		FROM coin
		WHERE symbol = ?
	`, symbol).Scan(&c.ID, &c.Symbol, &c.CoingeckoID, &c.Name)

	if err == sql.ErrNoRows {
		return model.Coin{}, apperrors.ErrCoinNotFound
	}
	if err != nil {
		return model.Coin{}, fmt.Errorf("failed to scan coin table results: %w", err)
	}

	return c, nil
}

// InsertCoin adds a coin to the directory.
func (r *CoinRepository) InsertCoin(ctx context.Context, c *model.Coin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coin (id, symbol, coingecko_id, name)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.Symbol, c.CoingeckoID, c.Name)
	if err != nil {
		return fmt.Errorf("failed to insert coin: %w", err)
	}
	return nil
}
