package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/infrastructure/memory"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	mailtpl "github.com/oksasatya/roundup-savings/pkg/mailer/templates"
)

func newUserService(store *memory.Store) *UserService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(store.Users(), store.Sessions(), jwt, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newUserService(store)
	pub := &fakePublisher{}
	svc.Notifier = NewNotifier(pub, mailtpl.Brand{}, nil)

	u, err := svc.Register(ctx, RegisterInput{Name: " Amina ", Email: "Amina@Example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "amina@example.com" || u.Name != "Amina" || u.Currency != "MAD" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "s3cret-pass" || u.PasswordHash == "" {
		t.Fatalf("password must be hashed")
	}
	if len(pub.jobs) != 1 || pub.jobs[0].Template != mailtpl.Welcome {
		t.Fatalf("expected welcome job, got %+v", pub.jobs)
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "x", Email: "amina@example.com", Password: "another-pass"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, _, err := svc.Login(ctx, "amina@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	logged, pair, err := svc.Login(ctx, "AMINA@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	id, err := svc.Identify(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if id.UserID != logged.ID || id.Name != "Amina" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestRefreshRotatesSessionAndLogoutRevokes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newUserService(store)
	if _, err := svc.Register(ctx, RegisterInput{Name: "Sam", Email: "sam@example.com", Password: "password-1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, first, err := svc.Login(ctx, "sam@example.com", "password-1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	second, uid, err := svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.Identify(ctx, second.AccessToken); err != nil {
		t.Fatalf("new access token rejected: %v", err)
	}
	if _, err := svc.Identify(ctx, first.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("rotated-out access token accepted: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("refresh token replay accepted: %v", err)
	}

	if err := svc.Logout(ctx, uid); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Identify(ctx, second.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("token accepted after logout: %v", err)
	}
}

func TestIdentifyWithoutSessionStore(t *testing.T) {
	store := memory.New()
	svc := newUserService(store)
	svc.Sessions = nil

	if _, err := svc.Identify(context.Background(), ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Identify(context.Background(), "not.a.jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage, got %v", err)
	}
	tok, _, _ := svc.JWT.GenerateAccessToken("u1", "sid", "u1@example.com")
	id, err := svc.Identify(context.Background(), tok)
	if err != nil || id.UserID != "u1" {
		t.Fatalf("expected stateless identity, got %+v, %v", id, err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newUserService(store)
	u, err := svc.Register(ctx, RegisterInput{Name: "Sam", Email: "sam@example.com", Password: "password-1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Currency: "eur"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Sam" || got.Currency != "EUR" {
		t.Fatalf("expected name kept and currency EUR, got %+v", got)
	}
	if _, err := svc.UpdateProfile(ctx, "missing", UpdateProfileInput{Name: "x"}); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}
