package repository

import (
	"context"
	"errors"

	"leadcrm_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
)

const goalColumns = `id, month, year, leads_goal, conversions_goal, revenue_goal, created_at, updated_at`

type UpsertSalesGoalParams struct {
	Month           int
	Year            int
	LeadsGoal       int
	ConversionsGoal int
	RevenueGoal     int64
}

// UpsertGoal creates or replaces the target for the given calendar month.
func (r *Repository) UpsertGoal(ctx context.Context, params UpsertSalesGoalParams) (domain.SalesGoal, error) {
	var goal domain.SalesGoal
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sales_goals (month, year, leads_goal, conversions_goal, revenue_goal)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (month, year) DO UPDATE
		SET leads_goal = EXCLUDED.leads_goal,
			conversions_goal = EXCLUDED.conversions_goal,
			revenue_goal = EXCLUDED.revenue_goal,
			updated_at = NOW()
		RETURNING `+goalColumns+`
	`,
		params.Month, params.Year, params.LeadsGoal, params.ConversionsGoal, params.RevenueGoal,
	).Scan(goalFields(&goal)...)
	if err != nil {
		return domain.SalesGoal{}, err
	}

	return goal, nil
}

func (r *Repository) GetGoal(ctx context.Context, month, year int) (domain.SalesGoal, error) {
	var goal domain.SalesGoal
	err := r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM sales_goals
		WHERE month = $1 AND year = $2
	`, month, year).Scan(goalFields(&goal)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SalesGoal{}, ErrNotFound
	}
	if err != nil {
		return domain.SalesGoal{}, err
	}

	return goal, nil
}

func (r *Repository) ListGoals(ctx context.Context, year int) ([]domain.SalesGoal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM sales_goals
		WHERE year = $1
		ORDER BY month ASC
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]domain.SalesGoal, 0)
	for rows.Next() {
		var goal domain.SalesGoal
		if err := rows.Scan(goalFields(&goal)...); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return goals, nil
}

func goalFields(goal *domain.SalesGoal) []interface{} {
	return []interface{}{
		&goal.ID, &goal.Month, &goal.Year, &goal.LeadsGoal,
		&goal.ConversionsGoal, &goal.RevenueGoal, &goal.CreatedAt, &goal.UpdatedAt,
	}
}
