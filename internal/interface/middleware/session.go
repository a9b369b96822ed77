package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	"github.com/oksasatya/roundup-savings/pkg/response"
)

const (
	ctxIdentity = "identity"
	CtxUserID   = "userID"
)

// IdentityResolver turns an access token into the caller's identity.
type IdentityResolver interface {
	Identify(ctx context.Context, accessToken string) (entity.Identity, error)
}

// accessToken reads the access_token cookie, then an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func resolve(c *gin.Context, gate IdentityResolver) (entity.Identity, error) {
	id, err := gate.Identify(c.Request.Context(), accessToken(c))
	if err != nil {
		return entity.Identity{}, err
	}
	c.Set(ctxIdentity, id)
	c.Set(CtxUserID, id.UserID)
	return id, nil
}

// Auth rejects requests without a live session with 401.
func Auth(gate IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := resolve(c, gate); err != nil {
			status, msg := http.StatusUnauthorized, "unauthorized"
			if !errors.Is(err, domain.ErrUnauthorized) {
				// session store unreachable
				status, msg = http.StatusServiceUnavailable, "session store unavailable"
				_ = c.Error(err)
			}
			response.Error[any](c, status, msg, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Optional annotates the request when a valid session is present and never aborts.
func Optional(gate IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := resolve(c, gate); err != nil && !errors.Is(err, domain.ErrUnauthorized) {
			_ = c.Error(err)
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by Auth or Optional.
func CurrentUser(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok && id.UserID != ""
}
