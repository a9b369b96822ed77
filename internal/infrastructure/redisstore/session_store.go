// Package redisstore keeps login sessions as Redis hashes under
// user:session:<uid>.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
)

type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (s *SessionStore) Save(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	key := helpers.SessionKey(sess.UserID)
	created := sess.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"sid":        sess.SessionID,
		"email":      sess.Email,
		"name":       sess.Name,
		"logged_in":  true,
		"created_at": created.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Persistence("save session", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, userID string) (entity.Session, bool, error) {
	data, err := s.rdb.HGetAll(ctx, helpers.SessionKey(userID)).Result()
	if err != nil {
		return entity.Session{}, false, domain.Persistence("get session", err)
	}
	if len(data) == 0 || data["sid"] == "" {
		return entity.Session{}, false, nil
	}
	sess := entity.Session{
		UserID:    data["user_id"],
		SessionID: data["sid"],
		Email:     data["email"],
		Name:      data["name"],
	}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		sess.CreatedAt = t
	}
	return sess, true, nil
}

// Rotate swaps the live sid and restarts the TTL.
func (s *SessionStore) Rotate(ctx context.Context, userID, sid string, ttl time.Duration) error {
	key := helpers.SessionKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": nowRFC3339()})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Persistence("rotate session", err)
	}
	return nil
}

// Touch refreshes the cached display name and keeps the remaining TTL.
func (s *SessionStore) Touch(ctx context.Context, userID, name string) error {
	key := helpers.SessionKey(userID)
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return domain.Persistence("touch session", err)
	}
	if n == 0 {
		return nil
	}
	if err := s.rdb.HSet(ctx, key, "name", name, "updated_at", nowRFC3339()).Err(); err != nil {
		return domain.Persistence("touch session", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil {
		return domain.Persistence("delete session", err)
	}
	return nil
}

var _ repository.SessionRepository = (*SessionStore)(nil)
