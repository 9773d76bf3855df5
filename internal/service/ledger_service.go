package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/csvimport"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/portfolio"
	"github.com/monkroe/crypto-tracker-sub000/internal/repository"
)

// LedgerService owns the write path of the ledger: every mutation goes
// through the store first and then through the in-memory tracker, which
// recomputes derived holdings before the call returns. Readers therefore
// never observe a ledger and holdings that disagree.
type LedgerService struct {
	tracker  *portfolio.Tracker
	coinRepo *repository.CoinRepository
	txRepo   *repository.TransactionRepository
	goalRepo *repository.GoalRepository
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	tracker *portfolio.Tracker,
	coinRepo *repository.CoinRepository,
	txRepo *repository.TransactionRepository,
	goalRepo *repository.GoalRepository,
) *LedgerService {
	return &LedgerService{
		tracker:  tracker,
		coinRepo: coinRepo,
		txRepo:   txRepo,
		goalRepo: goalRepo,
	}
}

// Bootstrap loads coins, transactions, and goals from the store into the
// tracker. Called once at session start.
func (s *LedgerService) Bootstrap() error {
	coins, err := s.coinRepo.GetCoins()
	if err != nil {
		return fmt.Errorf("failed to load coins: %w", err)
	}
	s.tracker.LoadCoins(coins)

	transactions, err := s.txRepo.GetTransactions()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	s.tracker.LoadTransactions(transactions)

	goals, err := s.goalRepo.GetGoals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	s.tracker.LoadGoals(goals)

	return nil
}

// Coins returns the session's coin directory.
func (s *LedgerService) Coins() []model.Coin {
	return s.tracker.Coins()
}

// Transactions returns the current ledger.
func (s *LedgerService) Transactions() []model.Transaction {
	return s.tracker.Transactions()
}

// GetTransaction retrieves a single transaction by ID from the store.
func (s *LedgerService) GetTransaction(id string) (model.Transaction, error) {
	return s.txRepo.GetTransaction(id)
}

// CreateTransaction admits a manually entered transaction into the ledger.
func (s *LedgerService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		ID:           uuid.New().String(),
		Date:         date.UTC(),
		Type:         model.TransactionType(req.Type),
		CoinSymbol:   req.CoinSymbol,
		Amount:       req.Amount,
		PricePerCoin: req.PricePerCoin,
		TotalCostUSD: req.TotalCostUSD,
		FeeUSD:       req.FeeUSD,
		Exchange:     req.Exchange,
		Method:       req.Method,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.txRepo.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.tracker.AddTransaction(*tx)

	return tx, nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	tx, err := s.txRepo.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		tx.Date = date.UTC()
	}
	if req.Type != nil {
		tx.Type = model.TransactionType(*req.Type)
	}
	if req.CoinSymbol != nil {
		tx.CoinSymbol = *req.CoinSymbol
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.PricePerCoin != nil {
		tx.PricePerCoin = *req.PricePerCoin
	}
	if req.TotalCostUSD != nil {
		tx.TotalCostUSD = *req.TotalCostUSD
	}
	if req.FeeUSD != nil {
		tx.FeeUSD = *req.FeeUSD
	}
	if req.Exchange != nil {
		tx.Exchange = *req.Exchange
	}
	if req.Method != nil {
		tx.Method = *req.Method
	}
	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	if err := s.txRepo.UpdateTransaction(ctx, &tx); err != nil {
		return nil, err
	}
	s.tracker.UpdateTransaction(tx)

	return &tx, nil
}

// DeleteTransaction removes a transaction from the store and the tracker.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.txRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.tracker.RemoveTransaction(id)
	return nil
}

// ImportSummary is the batch outcome of a CSV import: how many rows were
// admitted and every row that was dropped, with its reason.
type ImportSummary struct {
	Imported int                     `json:"imported"`
	Rejected []csvimport.RejectedRow `json:"rejected"`
}

// ImportCSV runs the CSV pipeline: parse leniently, persist the accepted rows
// in one store transaction, then admit them into the tracker. Row-level
// failures never abort the batch; they are returned in the summary.
func (s *LedgerService) ImportCSV(ctx context.Context, raw string) (ImportSummary, error) {
	result := csvimport.Parse(raw)

	now := time.Now().UTC()
	for i := range result.Accepted {
		result.Accepted[i].ID = uuid.New().String()
		result.Accepted[i].CreatedAt = now
	}

	if err := s.txRepo.InsertTransactions(ctx, result.Accepted); err != nil {
		return ImportSummary{}, err
	}
	s.tracker.AddTransactions(result.Accepted)

	return ImportSummary{
		Imported: len(result.Accepted),
		Rejected: result.Rejected,
	}, nil
}

// Goals returns the current goal list.
func (s *LedgerService) Goals() []model.Goal {
	return s.tracker.Goals()
}

// CreateGoal adds a user-defined target.
func (s *LedgerService) CreateGoal(ctx context.Context, req request.CreateGoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		ID:           uuid.New().String(),
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.goalRepo.InsertGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	s.tracker.AddGoal(*goal)

	return goal, nil
}

// UpdateGoal applies the provided fields to an existing goal.
func (s *LedgerService) UpdateGoal(ctx context.Context, id string, req request.UpdateGoalRequest) (*model.Goal, error) {
	var goal *model.Goal
	for _, g := range s.tracker.Goals() {
		if g.ID == id {
			goal = &g
			break
		}
	}
	if goal == nil {
		return nil, apperrors.ErrGoalNotFound
	}

	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Achieved != nil {
		goal.Achieved = *req.Achieved
	}

	if err := s.goalRepo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	s.tracker.UpdateGoal(*goal)

	return goal, nil
}

// DeleteGoal removes a goal.
func (s *LedgerService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.goalRepo.DeleteGoal(ctx, id); err != nil {
		return err
	}
	s.tracker.RemoveGoal(id)
	return nil
}

// Holdings returns the current derived snapshot.
func (s *LedgerService) Holdings() model.HoldingsSnapshot {
	return s.tracker.Holdings()
}

// History returns the cumulative-invested series seeded at cutoff.
func (s *LedgerService) History(cutoff, now time.Time) []model.SeriesPoint {
	return s.tracker.History(cutoff, now)
}

// ResetPriceCache forces the next price read to refetch from the oracle.
func (s *LedgerService) ResetPriceCache() {
	s.tracker.ResetPriceCache()
}
