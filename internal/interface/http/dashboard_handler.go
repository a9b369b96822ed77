package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
)

// DashboardHandler renders the server-side dashboard page.
type DashboardHandler struct {
	Query  *application.QueryService
	Logger *logrus.Logger
	Title  string
}

func NewDashboardHandler(query *application.QueryService, logger *logrus.Logger, title string) *DashboardHandler {
	if title == "" {
		title = "Round-up Savings"
	}
	return &DashboardHandler{Query: query, Logger: logger, Title: title}
}

// Show handles GET /dashboard. Without a session it renders the login prompt.
func (h *DashboardHandler) Show(c *gin.Context) {
	id, ok := middleware.CurrentUser(c)
	if !ok {
		c.HTML(http.StatusOK, "login_required", gin.H{"Title": h.Title})
		return
	}

	d, err := h.Query.Dashboard(c.Request.Context(), id.UserID)
	if errors.Is(err, domain.ErrUnknownUser) {
		// account removed after the token was issued
		c.HTML(http.StatusOK, "login_required", gin.H{"Title": h.Title})
		return
	}
	if err != nil {
		_ = c.Error(err)
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", id.UserID).Error("dashboard load failed")
		}
		c.String(http.StatusInternalServerError, "Something went wrong loading your dashboard.")
		return
	}

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Title":   h.Title,
		"Name":    d.User.Name,
		"Summary": d.Summary,
		"Recent":  d.Recent,
		"Goals":   d.ActiveGoals,
	})
}
