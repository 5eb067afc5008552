// Package handler provides the HTTP handlers for the history feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/feature/history/transport/http/dto"
	"incrementum/internal/shared/apperr"
)

// HistoryUsecase defines the OHLCV operations the handler depends on.
type HistoryUsecase interface {
	Append(ctx context.Context, bar entity.Bar) error
	AppendBatch(ctx context.Context, bars []entity.Bar, upsert bool) error
	Query(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error)
	Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error)
}

// HistoryHandler handles HTTP requests for OHLCV history.
type HistoryHandler struct {
	history HistoryUsecase
}

// NewHistoryHandler creates a new HistoryHandler with the given usecase.
func NewHistoryHandler(history HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Append handles the single-row append endpoint.
//
// Endpoint: POST /history
func (h *HistoryHandler) Append(c *gin.Context) {
	var req dto.BarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("history append validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.history.Append(c.Request.Context(), req.ToEntity()); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

// AppendBatch handles the atomic batch append endpoint.
//
// Endpoint: POST /history/batch
func (h *HistoryHandler) AppendBatch(c *gin.Context) {
	var req dto.BatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("history batch validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	bars := make([]entity.Bar, 0, len(req.Bars))
	for _, b := range req.Bars {
		bars = append(bars, b.ToEntity())
	}
	if err := h.history.AppendBatch(c.Request.Context(), bars, req.Upsert); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ok", "count": len(bars)})
}

// Query handles the time-range query endpoint.
//
// Endpoint: GET /history/:symbol?from=...&to=...&hourly=true
func (h *HistoryHandler) Query(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
		return
	}
	hourly, _ := strconv.ParseBool(c.DefaultQuery("hourly", "false"))

	bars, err := h.history.Query(c.Request.Context(), c.Param("symbol"), from, to, hourly)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.BarRes, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.FromEntity(b))
	}
	c.JSON(http.StatusOK, out)
}

// Latest handles the newest-row lookup endpoint ingestion workers use to
// resume fetching.
//
// Endpoint: GET /history/:symbol/latest?hourly=true
func (h *HistoryHandler) Latest(c *gin.Context) {
	hourly, _ := strconv.ParseBool(c.DefaultQuery("hourly", "false"))

	bar, err := h.history.Latest(c.Request.Context(), c.Param("symbol"), hourly)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*bar))
}
