package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

func newUser(t *testing.T, s *Store, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Name: "Test", PasswordHash: "x", Currency: "MAD"}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func post(userID, amount, rounded, saved string) repository.PostParams {
	return repository.PostParams{
		UserID:          userID,
		Amount:          decimal.RequireFromString(amount),
		AppliedRounding: decimal.RequireFromString(rounded),
		SavedAmount:     decimal.RequireFromString(saved),
		Description:     "coffee",
	}
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	s := New()
	newUser(t, s, "a@example.com")
	err := s.Users().Create(context.Background(), &entity.User{Email: "A@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPostTransactionUpdatesBothTotals(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@example.com")

	if _, err := s.Ledger().PostTransaction(ctx, post(u.ID, "7.30", "8", "0.70")); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := s.Ledger().PostTransaction(ctx, post(u.ID, "1.90", "2", "0.10")); err != nil {
		t.Fatalf("post: %v", err)
	}

	got, _ := s.Users().GetByID(ctx, u.ID)
	if !got.TotalSaved.Equal(decimal.RequireFromString("0.80")) {
		t.Fatalf("expected user total 0.80, got %s", got.TotalSaved)
	}
	rows, _ := s.Ledger().ListSavingsByUser(ctx, u.ID)
	if len(rows) != 1 || !rows[0].Total.Equal(got.TotalSaved) {
		t.Fatalf("saving aggregate out of sync: %+v", rows)
	}
}

func TestPostTransactionUnknownUserWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Ledger().PostTransaction(ctx, post("missing", "7.30", "8", "0.70"))
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if len(s.txns) != 0 || len(s.savings) != 0 {
		t.Fatalf("expected no rows, got %d txns %d savings", len(s.txns), len(s.savings))
	}
}

func TestConcurrentPostsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@example.com")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Ledger().PostTransaction(ctx, post(u.ID, "2.50", "3", "0.50")); err != nil {
				t.Errorf("post: %v", err)
			}
		}()
	}
	wg.Wait()

	rows, _ := s.Ledger().ListSavingsByUser(ctx, u.ID)
	want := decimal.NewFromInt(n).Mul(decimal.RequireFromString("0.50"))
	if len(rows) != 1 || !rows[0].Total.Equal(want) {
		t.Fatalf("expected total %s, got %+v", want, rows)
	}
}

func TestListTransactionsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return fixed }
	u := newUser(t, s, "a@example.com")
	other := newUser(t, s, "b@example.com")

	for i := 0; i < 6; i++ {
		if _, err := s.Ledger().PostTransaction(ctx, post(u.ID, "1.50", "2", "0.50")); err != nil {
			t.Fatalf("post: %v", err)
		}
		if _, err := s.Ledger().PostTransaction(ctx, post(other.ID, "1.50", "2", "0.50")); err != nil {
			t.Fatalf("post: %v", err)
		}
	}

	got, err := s.Ledger().ListTransactionsByUser(ctx, u.ID, 4)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got))
	}
	for i := range got {
		if got[i].UserID != u.ID {
			t.Fatalf("row %d belongs to %s", i, got[i].UserID)
		}
		if i > 0 && !got[i-1].CreatedAt.After(got[i].CreatedAt) {
			t.Fatalf("rows %d and %d not strictly descending", i-1, i)
		}
	}
}

func TestGoalStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@example.com")
	g := &entity.SavingsGoal{UserID: u.ID, Name: "Phone", TargetAmount: decimal.NewFromInt(100), Status: entity.GoalActive}
	if err := s.Goals().Create(ctx, g); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if err := s.Goals().UpdateStatus(ctx, u.ID, g.ID, entity.GoalActive, entity.GoalCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := s.Goals().UpdateStatus(ctx, u.ID, g.ID, entity.GoalActive, entity.GoalCompleted); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Fatalf("expected stale transition to fail, got %v", err)
	}
	active, _ := s.Goals().ListByStatus(ctx, u.ID, entity.GoalActive)
	if len(active) != 0 {
		t.Fatalf("expected no active goals, got %d", len(active))
	}
	if _, err := s.Goals().GetByID(ctx, "someone-else", g.ID); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Fatalf("expected goal hidden from other users, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	if err := s.Sessions().Save(ctx, entity.Session{UserID: "u1", SessionID: "s1"}, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Sessions().Rotate(ctx, "u1", "s2", time.Hour); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	got, ok, _ := s.Sessions().Get(ctx, "u1")
	if !ok || got.SessionID != "s2" {
		t.Fatalf("expected rotated session, got %+v ok=%v", got, ok)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := s.Sessions().Get(ctx, "u1"); ok {
		t.Fatalf("expected session to expire")
	}
}
