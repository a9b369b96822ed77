// Package memory is a process-local ledger store used for local development
// (DATA_BACKEND=memory) and tests. One mutex guards all state, which gives
// PostTransaction the same all-or-nothing behavior as the postgres store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

type Store struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	txns    []entity.Transaction
	savings map[string]*entity.Saving
	goals   map[string]*entity.SavingsGoal
	sess    map[string]sessionEntry
	last    time.Time

	// Now is the clock; tests may replace it.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:   make(map[string]*entity.User),
		savings: make(map[string]*entity.Saving),
		goals:   make(map[string]*entity.SavingsGoal),
		sess:    make(map[string]sessionEntry),
		Now:     time.Now,
	}
}

// Users, Ledger, Goals and Sessions expose the store through the repository contracts.
func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Ledger() *LedgerRepository    { return &LedgerRepository{s: s} }
func (s *Store) Goals() *GoalRepository       { return &GoalRepository{s: s} }
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s: s} }

// tick returns a strictly increasing timestamp. Caller holds s.mu.
func (s *Store) tick() time.Time {
	now := s.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailTaken
		}
	}
	now := r.s.tick()
	u.ID = uuid.NewString()
	u.TotalSaved = decimal.Zero
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUnknownUser
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUnknownUser
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrUnknownUser
	}
	existing.Name = u.Name
	existing.Currency = u.Currency
	existing.UpdatedAt = r.s.tick()
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

type LedgerRepository struct{ s *Store }

func (r *LedgerRepository) PostTransaction(_ context.Context, p repository.PostParams) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[p.UserID]
	if !ok {
		return nil, domain.ErrUnknownUser
	}
	now := r.s.tick()
	t := entity.Transaction{
		ID:              uuid.NewString(),
		UserID:          p.UserID,
		Amount:          p.Amount,
		AppliedRounding: p.AppliedRounding,
		SavedAmount:     p.SavedAmount,
		Description:     p.Description,
		CreatedAt:       now,
	}
	r.s.txns = append(r.s.txns, t)

	u.TotalSaved = u.TotalSaved.Add(p.SavedAmount)
	u.UpdatedAt = now
	if sv, ok := r.s.savings[p.UserID]; ok {
		sv.Total = sv.Total.Add(p.SavedAmount)
		sv.UpdatedAt = now
	} else {
		r.s.savings[p.UserID] = &entity.Saving{
			ID:        uuid.NewString(),
			UserID:    p.UserID,
			Total:     p.SavedAmount,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return &t, nil
}

func (r *LedgerRepository) ListTransactionsByUser(_ context.Context, userID string, limit int) ([]entity.Transaction, error) {
	if limit <= 0 {
		return []entity.Transaction{}, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Transaction, 0, limit)
	// txns is append-only with strictly increasing CreatedAt, so walking it
	// backwards yields newest first.
	for i := len(r.s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.txns[i].UserID == userID {
			out = append(out, r.s.txns[i])
		}
	}
	return out, nil
}

func (r *LedgerRepository) ListSavingsByUser(_ context.Context, userID string) ([]entity.Saving, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sv, ok := r.s.savings[userID]; ok {
		return []entity.Saving{*sv}, nil
	}
	return []entity.Saving{}, nil
}

type GoalRepository struct{ s *Store }

func (r *GoalRepository) Create(_ context.Context, g *entity.SavingsGoal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[g.UserID]; !ok {
		return domain.ErrUnknownUser
	}
	now := r.s.tick()
	g.ID = uuid.NewString()
	g.CreatedAt, g.UpdatedAt = now, now
	cp := *g
	r.s.goals[g.ID] = &cp
	return nil
}

func (r *GoalRepository) GetByID(_ context.Context, userID, goalID string) (*entity.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *GoalRepository) ListByStatus(_ context.Context, userID string, status entity.GoalStatus) ([]entity.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.SavingsGoal, 0)
	for _, g := range r.s.goals {
		if g.UserID == userID && g.Status == status {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Deadline, out[j].Deadline
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GoalRepository) UpdateStatus(_ context.Context, userID, goalID string, from, to entity.GoalStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[goalID]
	if !ok || g.UserID != userID || g.Status != from {
		return domain.ErrGoalNotFound
	}
	g.Status = to
	g.UpdatedAt = r.s.tick()
	return nil
}

type sessionEntry struct {
	sess    entity.Session
	expires time.Time
}

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Save(_ context.Context, sess entity.Session, ttl time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	r.s.sess[sess.UserID] = sessionEntry{sess: sess, expires: now.Add(ttl)}
	return nil
}

func (r *SessionRepository) Get(_ context.Context, userID string) (entity.Session, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.sess[userID]
	if !ok || !r.s.Now().Before(e.expires) {
		delete(r.s.sess, userID)
		return entity.Session{}, false, nil
	}
	return e.sess, true, nil
}

func (r *SessionRepository) Rotate(_ context.Context, userID, sid string, ttl time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.sess[userID]
	if !ok {
		return nil
	}
	e.sess.SessionID = sid
	e.expires = r.s.Now().Add(ttl)
	r.s.sess[userID] = e
	return nil
}

func (r *SessionRepository) Touch(_ context.Context, userID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.sess[userID]; ok {
		e.sess.Name = name
		r.s.sess[userID] = e
	}
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sess, userID)
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.LedgerRepository  = (*LedgerRepository)(nil)
	_ repository.GoalRepository    = (*GoalRepository)(nil)
	_ repository.SessionRepository = (*SessionRepository)(nil)
)
