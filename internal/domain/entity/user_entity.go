package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the aggregate root for the account holder.
// Passwords are stored as bcrypt hashes in PasswordHash; TotalSaved is only
// ever changed by posting a transaction.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	TotalSaved   decimal.Decimal
	Currency     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is what the session gate resolves for an authenticated request.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// UserSummary is the dashboard headline for a user.
type UserSummary struct {
	TotalSaved decimal.Decimal
	Currency   string
}
