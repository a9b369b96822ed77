package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

// PostParams is a fully computed ledger entry ready to be persisted.
type PostParams struct {
	UserID          string
	Amount          decimal.Decimal
	AppliedRounding decimal.Decimal
	SavedAmount     decimal.Decimal
	Description     string
}

// LedgerRepository stores transactions and the per-user savings aggregate.
//
// PostTransaction must be atomic: the transaction row, the Saving upsert and
// the user's running total either all land or none do, and the increments
// must be applied by the store itself so concurrent posts cannot lose
// updates. It returns domain.ErrUnknownUser when UserID does not exist.
type LedgerRepository interface {
	PostTransaction(ctx context.Context, p PostParams) (*entity.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)
	ListSavingsByUser(ctx context.Context, userID string) ([]entity.Saving, error)
}
