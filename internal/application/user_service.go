package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	repo "github.com/oksasatya/roundup-savings/internal/domain/repository"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
)

type UserService struct {
	Repo            repo.UserRepository
	Sessions        repo.SessionRepository // nil disables server-side session checks
	JWT             *helpers.JWTManager
	Notifier        *Notifier
	Logger          *logrus.Logger
	DefaultCurrency string
	SessionTTL      time.Duration
}

func NewUserService(users repo.UserRepository, sessions repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:            users,
		Sessions:        sessions,
		JWT:             jwt,
		Logger:          logger,
		DefaultCurrency: "MAD",
		SessionTTL:      24 * time.Hour,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Currency string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt credential hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.DefaultCurrency
	}
	u := &entity.User{
		Email:        normalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Currency:     currency,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	s.Notifier.Welcome(ctx, u)
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUnknownUser) {
		helpers.BurnPasswordCheck(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) issue(u *entity.User, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid, u.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid, u.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// IssueTokens generates access/refresh tokens and records the session. A new
// login replaces any previous session of the user.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.issue(u, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}
	if s.Sessions != nil {
		sess := entity.Session{UserID: u.ID, SessionID: sid, Email: u.Email, Name: u.Name}
		if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
			return TokenPair{}, err
		}
	}
	return pair, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		metricLogins.Add("failed", 1)
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	metricLogins.Add("ok", 1)
	return u, pair, nil
}

// Refresh exchanges a refresh token of the live session for a new pair and
// rotates the session id, which invalidates every older token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", domain.ErrUnauthorized
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUnknownUser) {
		return TokenPair{}, "", domain.ErrUnauthorized
	}
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Sessions != nil {
		sess, ok, err := s.Sessions.Get(ctx, u.ID)
		if err != nil {
			return TokenPair{}, "", err
		}
		if !ok || sess.SessionID != claims.SessionID {
			return TokenPair{}, "", domain.ErrUnauthorized
		}
	}
	sid := uuid.NewString()
	pair, err := s.issue(u, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Rotate(ctx, u.ID, sid, s.SessionTTL); err != nil {
			return TokenPair{}, "", err
		}
	}
	return pair, u.ID, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	if s.Sessions == nil || userID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, userID)
}

// Identify resolves an access token to the caller's identity. With a session
// store configured the token's sid must still be the live one.
func (s *UserService) Identify(ctx context.Context, accessToken string) (entity.Identity, error) {
	if accessToken == "" {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	id := entity.Identity{UserID: claims.UserID, Email: claims.Email}
	if s.Sessions == nil {
		return id, nil
	}
	sess, ok, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		return entity.Identity{}, err
	}
	if !ok || sess.SessionID != claims.SessionID {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	id.Name = sess.Name
	return id, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name     string
	Currency string
}

// UpdateProfile changes only the non-empty fields of in.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if cur := strings.ToUpper(strings.TrimSpace(in.Currency)); cur != "" {
		u.Currency = cur
	}
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Touch(ctx, u.ID, u.Name); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session touch failed")
		}
	}
	return u, nil
}
