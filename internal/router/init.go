package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/config"
	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/container"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
	pginfra "github.com/oksasatya/roundup-savings/internal/infrastructure/postgres"
	"github.com/oksasatya/roundup-savings/internal/infrastructure/redisstore"
	handlers "github.com/oksasatya/roundup-savings/internal/interface/http"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
	"github.com/oksasatya/roundup-savings/internal/router/modules"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	mailtpl "github.com/oksasatya/roundup-savings/pkg/mailer/templates"
)

// Deps is everything the HTTP layer needs. Optional services are left nil
// (or zero) when not configured.
type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Users    repository.UserRepository
	Ledger   repository.LedgerRepository
	Goals    repository.GoalRepository
	Sessions repository.SessionRepository

	DB        *pgxpool.Pool // readiness only
	Redis     *redis.Client
	ES        *elasticsearch.Client
	Publisher application.Publisher
	Uploader  application.ObjectUploader
}

// BuildDeps picks the store from the container: the Postgres pool when set,
// otherwise the in-memory store. Redis, when present, owns sessions.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	d := Deps{
		Config: cfg,
		Logger: container.GetLogger(),
		JWT:    container.GetJWT(),
		Redis:  container.GetRedis(),
		ES:     container.GetES(),
	}

	if pool := container.GetPGPool(); pool != nil {
		d.DB = pool
		d.Users = pginfra.NewUserRepository(pool)
		d.Ledger = pginfra.NewLedgerRepository(pool)
		d.Goals = pginfra.NewGoalRepository(pool)
	} else if mem := container.GetMemoryStore(); mem != nil {
		d.Users = mem.Users()
		d.Ledger = mem.Ledger()
		d.Goals = mem.Goals()
		d.Sessions = mem.Sessions()
	}
	if d.Redis != nil {
		d.Sessions = redisstore.NewSessionStore(d.Redis)
	}

	// typed nils must not leak into the interfaces
	if pub := container.GetRabbitPub(); pub != nil {
		d.Publisher = pub
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		d.Uploader = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}
	return d
}

// InitModules builds the services and handlers and adds every module to the
// registry. The dashboard page is mounted on the engine root.
func InitModules(r *Registry, d Deps) {
	cfg := d.Config

	var notifier *application.Notifier
	if d.Publisher != nil {
		notifier = application.NewNotifier(d.Publisher, mailtpl.Brand{
			CompanyName:  cfg.CompanyName,
			AppName:      cfg.AppName,
			SupportURL:   cfg.SupportURL,
			DashboardURL: cfg.DashboardURL,
		}, d.Logger)
	}

	users := application.NewUserService(d.Users, d.Sessions, d.JWT, d.Logger)
	users.Notifier = notifier
	users.DefaultCurrency = cfg.DefaultCurrency
	users.SessionTTL = cfg.SessionTTL

	search := application.NewTransactionSearch(d.ES, cfg.ESTransactionsIndex, d.Logger)
	posting := application.NewPostingService(d.Ledger, d.Users, d.Logger)
	posting.Notifier = notifier
	if d.ES != nil {
		posting.Indexer = search
	}
	query := application.NewQueryService(d.Ledger, d.Users, d.Goals)
	goals := application.NewGoalService(d.Goals)
	export := application.NewExportService(d.Ledger, d.Users, d.Uploader)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewLedgerModule(handlers.NewLedgerHandler(posting, query, search, export, d.Logger, cfg.RequestTimeout), users, d.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, d.Logger), d.Redis))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(users, cookies, d.Logger), users, d.Redis))
	r.Add(modules.NewGoalModule(handlers.NewGoalHandler(goals, query, d.Logger), users, d.Redis))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}

	dash := handlers.NewDashboardHandler(query, d.Logger, "")
	r.Page("/dashboard", middleware.Optional(users), dash.Show)
}
