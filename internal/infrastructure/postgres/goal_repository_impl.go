package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, status, created_at, updated_at`

type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

func scanGoal(row pgx.Row) (*entity.SavingsGoal, error) {
	g := &entity.SavingsGoal{}
	var status string
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &status, &g.CreatedAt, &g.UpdatedAt)
	g.Status = entity.GoalStatus(status)
	return g, err
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.SavingsGoal) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, string(g.Status)).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isBadReference(err) {
			return domain.ErrUnknownUser
		}
		return domain.Persistence("insert goal", err)
	}
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, goalID string) (*entity.SavingsGoal, error) {
	g, err := scanGoal(r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+` FROM savings_goals WHERE id = $1 AND user_id = $2
	`, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isBadReference(err) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, domain.Persistence("get goal", err)
	}
	return g, nil
}

func (r *GoalRepository) ListByStatus(ctx context.Context, userID string, status entity.GoalStatus) ([]entity.SavingsGoal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM savings_goals
		WHERE user_id = $1 AND status = $2
		ORDER BY deadline ASC NULLS LAST, created_at ASC
	`, userID, string(status))
	if err != nil {
		if isBadReference(err) {
			return []entity.SavingsGoal{}, nil
		}
		return nil, domain.Persistence("list goals", err)
	}
	defer rows.Close()

	goals := make([]entity.SavingsGoal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, domain.Persistence("scan goal", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list goals", err)
	}
	return goals, nil
}

// UpdateStatus is a compare-and-set on status so two racing changes cannot
// both leave ACTIVE.
func (r *GoalRepository) UpdateStatus(ctx context.Context, userID, goalID string, from, to entity.GoalStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE savings_goals
		SET status = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $3
	`, goalID, userID, string(from), string(to))
	if err != nil {
		if isBadReference(err) {
			return domain.ErrGoalNotFound
		}
		return domain.Persistence("update goal status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
