package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/roundup-savings/internal/interface/http"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
)

type GoalModule struct {
	Handler *handlers.GoalHandler
	Gate    middleware.IdentityResolver
	RDB     *redis.Client
}

func NewGoalModule(h *handlers.GoalHandler, gate middleware.IdentityResolver, rdb *redis.Client) *GoalModule {
	return &GoalModule{Handler: h, Gate: gate, RDB: rdb}
}

func (m *GoalModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/goals")
	auth.Use(middleware.Auth(m.Gate))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.PATCH("/:id/status", m.Handler.ChangeStatus)
	}
}
