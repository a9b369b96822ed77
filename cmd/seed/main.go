package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/roundup-savings/config"
	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/roundup"
	pginfra "github.com/oksasatya/roundup-savings/internal/infrastructure/postgres"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
)

// demo spends; each one goes through the normal round-up path
var spends = []struct {
	amount, description string
}{
	{"7.30", "Café Hafa"},
	{"23.45", "Marjane groceries"},
	{"4.10", "Tram ticket"},
	{"112.99", "Pharmacy"},
	{"15.00", "Cinema"},
	{"58.75", "Fuel"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	usersRepo := pginfra.NewUserRepository(pool)
	users := application.NewUserService(usersRepo, nil, nil, logger)
	users.DefaultCurrency = cfg.DefaultCurrency
	posting := application.NewPostingService(pginfra.NewLedgerRepository(pool), usersRepo, logger)
	goals := application.NewGoalService(pginfra.NewGoalRepository(pool))

	email, password := "demo@roundup.local", "password123"
	u, err := users.Register(ctx, application.RegisterInput{Name: "Demo User", Email: email, Password: password})
	if errors.Is(err, domain.ErrEmailTaken) {
		fmt.Printf("user %s already seeded; nothing to do\n", email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)

	for _, s := range spends {
		amount, err := roundup.ParseAmount(s.amount)
		if err != nil {
			log.Fatalf("bad seed amount %q: %v", s.amount, err)
		}
		t, err := posting.Post(ctx, u.ID, amount, s.description)
		if err != nil {
			log.Fatalf("failed to post %q: %v", s.description, err)
		}
		fmt.Printf("  %-20s %8s -> saved %s\n", t.Description, t.Amount.StringFixed(2), t.SavedAmount.StringFixed(2))
	}

	deadline := time.Now().UTC().AddDate(0, 6, 0)
	for _, g := range []application.GoalInput{
		{Name: "Summer trip", Target: mustAmount("1500.00"), Deadline: &deadline},
		{Name: "Emergency fund", Target: mustAmount("5000.00")},
	} {
		created, err := goals.CreateGoal(ctx, u.ID, g)
		if err != nil {
			log.Fatalf("failed to seed goal %q: %v", g.Name, err)
		}
		fmt.Printf("  goal %q target=%s status=%s\n", created.Name, created.TargetAmount.StringFixed(2), created.Status)
	}

	profile, err := users.GetProfile(ctx, u.ID)
	if err != nil {
		log.Fatalf("failed to read back user: %v", err)
	}
	fmt.Printf("total saved: %s %s\n", profile.TotalSaved.StringFixed(2), profile.Currency)
}

func mustAmount(s string) decimal.Decimal {
	v, err := roundup.ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return v
}
