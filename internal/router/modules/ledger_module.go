package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/roundup-savings/internal/interface/http"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
)

// LedgerModule wires transaction and savings routes.
// Public: POST /api/transactions, GET /api/savings
// Session: GET /api/transactions, GET /api/transactions/search, POST /api/transactions/export
type LedgerModule struct {
	Handler *handlers.LedgerHandler
	Gate    middleware.IdentityResolver
	RDB     *redis.Client
}

func NewLedgerModule(h *handlers.LedgerHandler, gate middleware.IdentityResolver, rdb *redis.Client) *LedgerModule {
	return &LedgerModule{Handler: h, Gate: gate, RDB: rdb}
}

func (m *LedgerModule) Register(rg *gin.RouterGroup) {
	postLimiter := middleware.RateLimit(m.RDB, 600, time.Minute, middleware.KeyByIP(), nil)
	rg.POST("/transactions", postLimiter, m.Handler.CreateTransaction)
	rg.GET("/savings", m.Handler.ListSavings)

	auth := rg.Group("/transactions")
	auth.Use(middleware.Auth(m.Gate))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.ListTransactions)
		auth.GET("/search", m.Handler.SearchTransactions)
		auth.POST("/export", middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByUserID(), nil), m.Handler.ExportStatement)
	}
}
