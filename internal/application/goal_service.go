package application

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

const maxGoalName = 100

type GoalService struct {
	Goals repository.GoalRepository
	Now   func() time.Time
}

func NewGoalService(goals repository.GoalRepository) *GoalService {
	return &GoalService{Goals: goals, Now: time.Now}
}

type GoalInput struct {
	Name     string
	Target   decimal.Decimal
	Deadline *time.Time
}

// CreateGoal opens an ACTIVE goal with nothing saved toward it yet. The
// deadline, when given, is a calendar date and may not be in the past.
func (s *GoalService) CreateGoal(ctx context.Context, userID string, in GoalInput) (*entity.SavingsGoal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxGoalName || !in.Target.IsPositive() {
		return nil, domain.ErrInvalidGoal
	}
	var deadline *time.Time
	if in.Deadline != nil {
		d := dateOf(*in.Deadline)
		if d.Before(dateOf(s.Now())) {
			return nil, domain.ErrInvalidGoal
		}
		deadline = &d
	}
	g := &entity.SavingsGoal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  in.Target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Status:        entity.GoalActive,
	}
	if err := s.Goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ChangeGoalStatus closes an ACTIVE goal. The store re-checks the current
// status so two racing changes cannot both win.
func (s *GoalService) ChangeGoalStatus(ctx context.Context, userID, goalID string, next entity.GoalStatus) (*entity.SavingsGoal, error) {
	if !next.Valid() {
		return nil, domain.ErrInvalidGoal
	}
	g, err := s.Goals.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if !g.CanTransitionTo(next) {
		return nil, domain.ErrInvalidGoal
	}
	if err := s.Goals.UpdateStatus(ctx, userID, goalID, g.Status, next); err != nil {
		return nil, err
	}
	g.Status = next
	return g, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
