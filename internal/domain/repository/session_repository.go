package repository

import (
	"context"
	"time"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

// SessionRepository keeps at most one live session per user. Get reports
// false when none exists or it expired.
type SessionRepository interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (entity.Session, bool, error)
	Rotate(ctx context.Context, userID, sid string, ttl time.Duration) error
	Touch(ctx context.Context, userID, name string) error
	Delete(ctx context.Context, userID string) error
}
