package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    string
	}{
		{name: "half way", current: "50", target: "100", want: "50"},
		{name: "capped at 100", current: "150", target: "100", want: "100"},
		{name: "zero target", current: "10", target: "0", want: "0"},
		{name: "nothing saved", current: "0", target: "300", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{
				CurrentAmount: decimal.RequireFromString(tt.current),
				TargetAmount:  decimal.RequireFromString(tt.target),
			}
			if got := g.Progress(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGoalTransitions(t *testing.T) {
	active := SavingsGoal{Status: GoalActive}
	if !active.CanTransitionTo(GoalCompleted) || !active.CanTransitionTo(GoalCancelled) {
		t.Fatalf("active goal must be completable and cancellable")
	}
	if active.CanTransitionTo(GoalActive) {
		t.Fatalf("active to active is not a transition")
	}
	done := SavingsGoal{Status: GoalCompleted}
	if done.CanTransitionTo(GoalCancelled) {
		t.Fatalf("completed goal must be final")
	}
	if GoalStatus("PAUSED").Valid() {
		t.Fatalf("unknown status reported valid")
	}
}
