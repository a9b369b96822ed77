package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/roundup"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
	"github.com/oksasatya/roundup-savings/pkg/response"
	"github.com/oksasatya/roundup-savings/pkg/validation"
)

type GoalHandler struct {
	Goals  *application.GoalService
	Query  *application.QueryService
	Logger *logrus.Logger
}

func NewGoalHandler(goals *application.GoalService, query *application.QueryService, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{Goals: goals, Query: query, Logger: logger}
}

type createGoalRequest struct {
	Name         string      `json:"name" binding:"required,max=100"`
	TargetAmount json.Number `json:"targetAmount" binding:"required"`
	Deadline     string      `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

type goalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED CANCELLED"`
}

// List handles GET /api/goals and returns the caller's active goals.
func (h *GoalHandler) List(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	goals, err := h.Query.ListActiveGoals(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoal(g))
	}
	response.Success(c, http.StatusOK, out, "active goals", nil)
}

// Create handles POST /api/goals.
func (h *GoalHandler) Create(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	target, err := roundup.ParseAmount(req.TargetAmount.String())
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"targetAmount": "must be a positive amount with at most 2 decimals"})
		return
	}
	in := application.GoalInput{Name: req.Name, Target: target}
	if req.Deadline != "" {
		d, _ := time.Parse(dateLayout, req.Deadline)
		in.Deadline = &d
	}

	g, err := h.Goals.CreateGoal(c.Request.Context(), id.UserID, in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toGoal(*g), "goal created", nil)
}

// ChangeStatus handles PATCH /api/goals/:id/status.
func (h *GoalHandler) ChangeStatus(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	var req goalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Goals.ChangeGoalStatus(c.Request.Context(), id.UserID, c.Param("id"), entity.GoalStatus(req.Status))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoal(*g), "goal updated", nil)
}
