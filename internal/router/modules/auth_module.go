package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/roundup-savings/internal/interface/http"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
)

// AuthModule wires login, refresh, logout and the caller's profile.
// Public: POST /api/auth/login, POST /api/auth/refresh
// Session: POST /api/auth/logout, GET /api/profile, PUT /api/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	Gate    middleware.IdentityResolver
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, gate middleware.IdentityResolver, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Gate: gate, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Gate))
	auth.Use(
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
