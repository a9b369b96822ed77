package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalCancelled GoalStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

// SavingsGoal tracks progress toward a target amount.
type SavingsGoal struct {
	ID            string
	UserID        string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var hundred = decimal.NewFromInt(100)

// Progress returns completion as a percentage in [0, 100].
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() || g.CurrentAmount.IsNegative() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// CanTransitionTo only allows leaving ACTIVE; finished goals are final.
func (g SavingsGoal) CanTransitionTo(next GoalStatus) bool {
	return g.Status == GoalActive && (next == GoalCompleted || next == GoalCancelled)
}
