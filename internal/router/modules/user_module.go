package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/roundup-savings/internal/interface/http"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
)

// UserModule serves GET and POST /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/users", m.Handler.List)
	rg.POST("/users", createLimiter, m.Handler.Create)
}
