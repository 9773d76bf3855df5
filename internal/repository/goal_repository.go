package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
)

// GoalRepository provides data access methods for the goal table.
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository with the provided database connection.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// GetGoals retrieves all goals ordered by creation time.
func (r *GoalRepository) GetGoals() ([]model.Goal, error) {
	rows, err := r.db.Query(`
		SELECT id, description, target_amount, achieved, created_at
		FROM goal
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal table: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		var (
			g            model.Goal
			createdAtStr sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Description, &g.TargetAmount, &g.Achieved, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan goal table results: %w", err)
		}
		if createdAtStr.Valid {
			if g.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
				return nil, fmt.Errorf("failed to parse date: %w", err)
			}
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal table: %w", err)
	}

	return goals, nil
}

// InsertGoal adds a goal.
func (r *GoalRepository) InsertGoal(ctx context.Context, g *model.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goal (id, description, target_amount, achieved, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.ID, g.Description, g.TargetAmount, g.Achieved, g.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// UpdateGoal replaces the mutable fields of the goal with the given ID.
func (r *GoalRepository) UpdateGoal(ctx context.Context, g *model.Goal) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE goal
		SET description = ?, target_amount = ?, achieved = ?
		WHERE id = ?
	`, g.Description, g.TargetAmount, g.Achieved, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes a goal by ID.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goal WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
