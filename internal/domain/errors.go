// Package domain holds the error taxonomy shared by the ledger services,
// the stores and the HTTP boundary.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is a client error: non-positive, non-finite or malformed amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownUser means the referenced user id does not resolve.
	ErrUnknownUser = errors.New("unknown user")
	// ErrPersistence covers store unavailability and constraint violations.
	ErrPersistence = errors.New("persistence error")
	// ErrUnauthorized means no valid session was presented.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidGoal        = errors.New("invalid savings goal")
	ErrGoalNotFound       = errors.New("savings goal not found")
)

// Persistence wraps a store error so callers can match ErrPersistence while
// the driver error stays reachable through errors.As.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// ErrInvalidDescription rejects transaction descriptions over MaxDescriptionLen.
var ErrInvalidDescription = errors.New("invalid description")

// MaxDescriptionLen bounds a transaction description, in characters.
const MaxDescriptionLen = 200
