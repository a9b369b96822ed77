package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	"github.com/oksasatya/roundup-savings/pkg/response"
	"github.com/oksasatya/roundup-savings/pkg/validation"
	"github.com/oksasatya/roundup-savings/web"
)

// NewEngine returns a gin engine with global middleware, page templates,
// health checks and all modules registered.
func NewEngine(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	validation.Init()

	tpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	// client IPs come from RealIP, never from gin's proxy parsing
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tpl)

	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		if d.Logger != nil {
			d.Logger.WithField("panic", rec).WithField("request_id", c.GetString("request_id")).Error("handler panicked")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.Abort()
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	if cfg.HTTPLogEnabled && d.Logger != nil {
		r.Use(middleware.AccessLog(d.Logger))
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "alive", nil)
	})
	r.GET("/readyz", func(c *gin.Context) {
		if d.Redis != nil {
			if err := helpers.PingRedis(c.Request.Context(), d.Redis, time.Second); err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "redis unavailable", nil)
				return
			}
		}
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := d.DB.Ping(ctx); err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", nil)
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ready"}, "ready", nil)
	})

	reg := NewRegistry(r)
	reg.Use(middleware.RateLimit(d.Redis, 1000, time.Minute, middleware.KeyByIP(), nil))
	InitModules(reg, d)
	reg.RegisterAll()
	return r, nil
}
