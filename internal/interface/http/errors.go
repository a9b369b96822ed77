package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/pkg/helpers"
	"github.com/oksasatya/roundup-savings/pkg/response"
)

// statusFor maps service errors onto HTTP. Anything unrecognized, including
// domain.ErrPersistence, is a 500 whose detail stays in the logs.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid amount"
	case errors.Is(err, domain.ErrInvalidDescription):
		return http.StatusBadRequest, "description is too long"
	case errors.Is(err, domain.ErrUnknownUser):
		return http.StatusNotFound, "unknown user"
	case errors.Is(err, domain.ErrInvalidGoal):
		return http.StatusBadRequest, "invalid savings goal"
	case errors.Is(err, domain.ErrGoalNotFound):
		return http.StatusNotFound, "savings goal not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, application.ErrExportUnavailable):
		return http.StatusServiceUnavailable, "statement export is not configured"
	}
	return http.StatusInternalServerError, "internal error"
}

func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := statusFor(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
	}
	response.Error[any](c, status, msg, nil)
}
