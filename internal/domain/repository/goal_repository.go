package repository

import (
	"context"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

type GoalRepository interface {
	Create(ctx context.Context, g *entity.SavingsGoal) error
	GetByID(ctx context.Context, userID, goalID string) (*entity.SavingsGoal, error)
	ListByStatus(ctx context.Context, userID string, status entity.GoalStatus) ([]entity.SavingsGoal, error)
	UpdateStatus(ctx context.Context, userID, goalID string, from, to entity.GoalStatus) error
}
