package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, date, type, coin_symbol, amount, price_per_coin,
	total_cost_usd, fee_usd, exchange, method, notes, created_at
`

// GetTransactions retrieves the full ledger ordered ascending by date, with
// undated transactions last.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	rows, err := r.db.Query(`
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY date IS NULL, date ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE id = ?
	`, id)

	tx, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// InsertTransaction adds a single transaction to the ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO "transaction" (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, insertArgs(tx)...)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// InsertTransactions adds a batch of transactions in one database
// transaction, so a partially failed import never reaches the ledger.
func (r *TransactionRepository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer dbTx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO "transaction" (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	for i := range txs {
		if _, err := stmt.ExecContext(ctx, insertArgs(&txs[i])...); err != nil {
			return fmt.Errorf("failed to insert imported transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// UpdateTransaction replaces every mutable field of the transaction with the
// given ID.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE "transaction"
		SET date = ?, type = ?, coin_symbol = ?, amount = ?, price_per_coin = ?,
		    total_cost_usd = ?, fee_usd = ?, exchange = ?, method = ?, notes = ?
		WHERE id = ?
	`, nullableDate(tx.Date), string(tx.Type), tx.CoinSymbol, tx.Amount, tx.PricePerCoin,
		tx.TotalCostUSD, tx.FeeUSD, tx.Exchange, tx.Method, tx.Notes, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// scanTransaction maps one row onto a Transaction. A NULL date becomes the
// zero time (the marker for "excluded from chronological aggregations").
func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var (
		tx           model.Transaction
		txType       string
		dateStr      sql.NullString
		createdAtStr sql.NullString
		exchange     sql.NullString
		method       sql.NullString
		notes        sql.NullString
	)

	err := scan(
		&tx.ID, &dateStr, &txType, &tx.CoinSymbol, &tx.Amount, &tx.PricePerCoin,
		&tx.TotalCostUSD, &tx.FeeUSD, &exchange, &method, &notes, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return tx, err
	}
	if err != nil {
		return tx, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	tx.Type = model.TransactionType(txType)
	tx.Exchange = exchange.String
	tx.Method = method.String
	tx.Notes = notes.String

	if dateStr.Valid {
		if tx.Date, err = ParseTime(dateStr.String); err != nil {
			return tx, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	if createdAtStr.Valid {
		if tx.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return tx, fmt.Errorf("failed to parse date: %w", err)
		}
	}

	return tx, nil
}

func insertArgs(tx *model.Transaction) []any {
	return []any{
		tx.ID, nullableDate(tx.Date), string(tx.Type), tx.CoinSymbol, tx.Amount,
		tx.PricePerCoin, tx.TotalCostUSD, tx.FeeUSD, tx.Exchange, tx.Method,
		tx.Notes, tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// nullableDate stores the zero time as NULL.
func nullableDate(d time.Time) any {
	if d.IsZero() {
		return nil
	}
	return d.UTC().Format(time.RFC3339)
}
