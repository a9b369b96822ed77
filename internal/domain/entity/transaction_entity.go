package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger row. Amount is what was spent,
// AppliedRounding the amount rounded up to the next whole unit and
// SavedAmount the difference diverted to savings.
type Transaction struct {
	ID              string
	UserID          string
	Amount          decimal.Decimal
	AppliedRounding decimal.Decimal
	SavedAmount     decimal.Decimal
	Description     string
	CreatedAt       time.Time
}

// Saving is the denormalized per-user running total of SavedAmount.
type Saving struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
