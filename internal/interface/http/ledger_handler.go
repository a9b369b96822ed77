package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/application"
	"github.com/oksasatya/roundup-savings/internal/domain/roundup"
	"github.com/oksasatya/roundup-savings/internal/interface/middleware"
	"github.com/oksasatya/roundup-savings/pkg/response"
	"github.com/oksasatya/roundup-savings/pkg/validation"
)

// LedgerHandler serves transactions and savings.
type LedgerHandler struct {
	Posting *application.PostingService
	Query   *application.QueryService
	Search  *application.TransactionSearch
	Export  *application.ExportService
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewLedgerHandler(posting *application.PostingService, query *application.QueryService, search *application.TransactionSearch, export *application.ExportService, logger *logrus.Logger, timeout time.Duration) *LedgerHandler {
	return &LedgerHandler{Posting: posting, Query: query, Search: search, Export: export, Logger: logger, Timeout: timeout}
}

func (h *LedgerHandler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

type createTransactionRequest struct {
	UserID      string      `json:"userId" binding:"required,uuid"`
	Amount      json.Number `json:"amount" binding:"required"`
	Description string      `json:"description" binding:"description"`
}

// CreateTransaction handles POST /api/transactions.
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	amount, err := roundup.ParseAmount(req.Amount.String())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	t, err := h.Posting.Post(ctx, req.UserID, amount, req.Description)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toTransaction(*t), "transaction recorded", nil)
}

// ListTransactions handles GET /api/transactions for the signed-in user.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	// ?limit may shrink the page but never past the 10 most recent
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > application.DefaultListLimit {
		limit = application.DefaultListLimit
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	txns, err := h.Query.ListTransactionsForUser(ctx, id.UserID, limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTransactions(txns), "transactions", nil)
}

type savingsQuery struct {
	UserID string `form:"userId" binding:"required,uuid"`
}

// ListSavings handles GET /api/savings?userId=.
func (h *LedgerHandler) ListSavings(c *gin.Context) {
	var q savingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	rows, err := h.Query.ListSavings(ctx, q.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toSavings(rows), "savings", nil)
}

// SearchTransactions handles GET /api/transactions/search?q=.
func (h *LedgerHandler) SearchTransactions(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	ctx, cancel := h.ctx(c)
	defer cancel()
	hits, err := h.Search.Search(ctx, id.UserID, q, size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// ExportStatement handles POST /api/transactions/export.
func (h *LedgerHandler) ExportStatement(c *gin.Context) {
	id, _ := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	url, err := h.Export.ExportStatement(ctx, id.UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "statement exported", nil)
}
