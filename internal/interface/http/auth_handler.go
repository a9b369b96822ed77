package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	"github.com/oksasatya/roundup-savings/pkg/response"
	"github.com/oksasatya/roundup-savings/pkg/validation"
)

// AuthHandler owns the session lifecycle and the caller's profile.
type AuthHandler struct {
	Svc     *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

func tokenMeta(pair application.TokenPair) map[string]any {
	return map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, toUser(u), "login successful", tokenMeta(pair))
}

// Refresh handles POST /api/auth/refresh using the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, uid, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"userId": uid}, "token refreshed", tokenMeta(pair))
}

// Logout handles POST /api/auth/logout. It always clears the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	if err := h.Svc.Logout(c.Request.Context(), id.UserID); err != nil {
		helpers.LogWarn(h.Logger, "logout: session delete failed", err, logrus.Fields{"user_id": id.UserID})
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Profile handles GET /api/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	u, err := h.Svc.GetProfile(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile", nil)
}

// UpdateProfile handles PUT /api/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), id.UserID, application.UpdateProfileInput{Name: req.Name, Currency: req.Currency})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile updated", nil)
}
