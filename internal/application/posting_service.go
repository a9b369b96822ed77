package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
	"github.com/oksasatya/roundup-savings/internal/domain/roundup"
)

// PostingService records spends and moves their round-up into savings.
type PostingService struct {
	Ledger   repository.LedgerRepository
	Users    repository.UserRepository
	Indexer  TransactionIndexer // optional
	Notifier *Notifier          // optional
	Logger   *logrus.Logger
}

func NewPostingService(ledger repository.LedgerRepository, users repository.UserRepository, logger *logrus.Logger) *PostingService {
	return &PostingService{Ledger: ledger, Users: users, Logger: logger}
}

// Post validates and rounds amount, then writes the transaction and both
// savings totals in one atomic store call. Indexing and the receipt email run
// after the commit and never fail the post.
func (s *PostingService) Post(ctx context.Context, userID string, amount decimal.Decimal, description string) (*entity.Transaction, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUnknownUser
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		return nil, domain.ErrInvalidDescription
	}
	res, err := roundup.Compute(amount)
	if err != nil {
		return nil, err
	}

	t, err := s.Ledger.PostTransaction(ctx, repository.PostParams{
		UserID:          userID,
		Amount:          res.Original,
		AppliedRounding: res.Rounded,
		SavedAmount:     res.Saved,
		Description:     description,
	})
	if err != nil {
		metricPostFailures.Add(1)
		if !errors.Is(err, domain.ErrUnknownUser) && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("post transaction failed")
		}
		return nil, err
	}

	metricPosted.Add(1)
	metricSavedCents.Add(res.Saved.Shift(roundup.MinorUnits).IntPart())
	s.afterCommit(ctx, t)
	return t, nil
}

func (s *PostingService) afterCommit(ctx context.Context, t *entity.Transaction) {
	if s.Indexer != nil {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		if err := s.Indexer.IndexTransaction(c, *t); err != nil {
			metricSideEffects.Add("index", 1)
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("transaction_id", t.ID).Warn("index transaction failed")
			}
		}
		cancel()
	}
	if s.Notifier == nil || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, t.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", t.UserID).Warn("receipt lookup failed")
		}
		return
	}
	s.Notifier.RoundupReceipt(ctx, u, t)
}
