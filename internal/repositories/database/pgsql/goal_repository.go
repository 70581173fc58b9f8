package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/fintrackhq/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const goalColumns = `goal_id, user_id, name, target_amount, saved_amount, created_at, last_updated_at`

// PgxGoalRepository implements savings goal persistence using pgxpool.
type PgxGoalRepository struct {
	BaseRepository
}

// NewPgxGoalRepository creates a new PgxGoalRepository.
func NewPgxGoalRepository(pool *pgxpool.Pool) *PgxGoalRepository {
	return &PgxGoalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

// SaveGoal persists a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.SavedAmount,
		m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal %s: %w", m.GoalID, mapWriteError(err))
	}
	return nil
}

// FindGoalByID retrieves a goal by ID, regardless of owner.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	var m models.Goal
	err := r.Pool.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE goal_id = $1;`,
		goalID,
	).Scan(&m.GoalID, &m.UserID, &m.Name, &m.TargetAmount, &m.SavedAmount, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
		}
		return nil, fmt.Errorf("failed to find goal by ID: %w", err)
	}

	goal := mapping.ToDomainGoal(m)
	return &goal, nil
}

// ListGoals retrieves a user's goals, newest first.
func (r *PgxGoalRepository) ListGoals(ctx context.Context, userID, nameFilter string, limit, offset int) ([]domain.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1`
	args := []interface{}{userID}
	argNum := 2

	if nameFilter != "" {
		query += fmt.Sprintf(" AND name = $%d", argNum)
		args = append(args, nameFilter)
		argNum++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, goal_id DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var modelGoals []models.Goal
	for rows.Next() {
		var m models.Goal
		if err := rows.Scan(&m.GoalID, &m.UserID, &m.Name, &m.TargetAmount, &m.SavedAmount, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		modelGoals = append(modelGoals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return mapping.ToDomainGoalSlice(modelGoals), nil
}

// UpdateGoal persists changes to an existing goal.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE goals SET
			name = $1, target_amount = $2, saved_amount = $3, last_updated_at = $4
		WHERE goal_id = $5;`,
		m.Name, m.TargetAmount, m.SavedAmount, m.LastUpdatedAt, m.GoalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", m.GoalID, mapWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, m.GoalID)
	}
	return nil
}

// DeleteGoal removes a goal.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
	}
	return nil
}
