package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/infrastructure/memory"
)

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultListLimit},
		{-3, DefaultListLimit},
		{7, 7},
		{500, MaxListLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Fatalf("ClampLimit(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestQueryServiceViews(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	u := seedUser(t, store, "amina@example.com")
	posting := NewPostingService(store.Ledger(), store.Users(), nil)
	for _, amt := range []string{"1.10", "2.20", "3.30", "4.40", "5.50", "6.60", "7.70"} {
		if _, err := posting.Post(ctx, u.ID, dec(amt), "spend "+amt); err != nil {
			t.Fatalf("post %s: %v", amt, err)
		}
	}
	goals := NewGoalService(store.Goals())
	later := time.Now().AddDate(0, 6, 0)
	if _, err := goals.CreateGoal(ctx, u.ID, GoalInput{Name: "Laptop", Target: dec("900"), Deadline: &later}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	dropped, err := goals.CreateGoal(ctx, u.ID, GoalInput{Name: "Trip", Target: dec("300")})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if _, err := goals.ChangeGoalStatus(ctx, u.ID, dropped.ID, entity.GoalCancelled); err != nil {
		t.Fatalf("cancel goal: %v", err)
	}

	q := NewQueryService(store.Ledger(), store.Users(), store.Goals())

	txns, err := q.ListTransactionsForUser(ctx, u.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 7 || txns[0].Description != "spend 7.70" {
		t.Fatalf("expected 7 rows newest first, got %d (first %q)", len(txns), txns[0].Description)
	}

	sum, err := q.GetUserSummary(ctx, u.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.TotalSaved.Equal(dec("4.20")) || sum.Currency != "MAD" {
		t.Fatalf("expected 4.20 MAD, got %s %s", sum.TotalSaved, sum.Currency)
	}

	d, err := q.Dashboard(ctx, u.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Recent) != DashboardRecent {
		t.Fatalf("expected %d recent rows, got %d", DashboardRecent, len(d.Recent))
	}
	if len(d.ActiveGoals) != 1 || d.ActiveGoals[0].Name != "Laptop" {
		t.Fatalf("expected only the active goal, got %+v", d.ActiveGoals)
	}
	if !d.Summary.TotalSaved.Equal(sum.TotalSaved) {
		t.Fatalf("dashboard total mismatch")
	}

	if _, err := q.GetUserSummary(ctx, "missing"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if _, err := q.Dashboard(ctx, "missing"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser from dashboard, got %v", err)
	}
	if _, err := q.ListTransactionsForUser(ctx, "missing", 5); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser from transaction list, got %v", err)
	}
	if _, err := q.ListSavings(ctx, "missing"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser from savings list, got %v", err)
	}
}
