package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
	DashboardRecent  = 5
)

// QueryService serves read-only views of the ledger.
type QueryService struct {
	Ledger repository.LedgerRepository
	Users  repository.UserRepository
	Goals  repository.GoalRepository
}

func NewQueryService(ledger repository.LedgerRepository, users repository.UserRepository, goals repository.GoalRepository) *QueryService {
	return &QueryService{Ledger: ledger, Users: users, Goals: goals}
}

// ClampLimit maps a requested page size onto [1, MaxListLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

// requireUser fails with domain.ErrUnknownUser when userID does not resolve,
// so list reads agree with GetUserSummary on both backends.
func (s *QueryService) requireUser(ctx context.Context, userID string) error {
	_, err := s.Users.GetByID(ctx, userID)
	return err
}

// ListTransactionsForUser returns the newest transactions first.
func (s *QueryService) ListTransactionsForUser(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Ledger.ListTransactionsByUser(ctx, userID, ClampLimit(limit))
}

func (s *QueryService) GetUserSummary(ctx context.Context, userID string) (entity.UserSummary, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return entity.UserSummary{}, err
	}
	return entity.UserSummary{TotalSaved: u.TotalSaved, Currency: u.Currency}, nil
}

func (s *QueryService) ListActiveGoals(ctx context.Context, userID string) ([]entity.SavingsGoal, error) {
	return s.Goals.ListByStatus(ctx, userID, entity.GoalActive)
}

func (s *QueryService) ListSavings(ctx context.Context, userID string) ([]entity.Saving, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Ledger.ListSavingsByUser(ctx, userID)
}

// Dashboard is everything the dashboard page shows for one user.
type Dashboard struct {
	User        *entity.User
	Summary     entity.UserSummary
	Recent      []entity.Transaction
	ActiveGoals []entity.SavingsGoal
}

// Dashboard loads the user, recent transactions and active goals concurrently.
func (s *QueryService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.Users.GetByID(gctx, userID)
		if err != nil {
			return err
		}
		d.User = u
		d.Summary = entity.UserSummary{TotalSaved: u.TotalSaved, Currency: u.Currency}
		return nil
	})
	g.Go(func() error {
		txns, err := s.Ledger.ListTransactionsByUser(gctx, userID, DashboardRecent)
		d.Recent = txns
		return err
	})
	g.Go(func() error {
		goals, err := s.Goals.ListByStatus(gctx, userID, entity.GoalActive)
		d.ActiveGoals = goals
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
