package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/feature/history/transport/http/dto"
	"incrementum/internal/shared/apperr"
)

// GapUsecase defines the gap-detection and blacklist operations the handler
// depends on.
type GapUsecase interface {
	CheckForGaps(ctx context.Context, symbol string) ([]entity.Gap, error)
	Blacklist(ctx context.Context, symbol string, ts time.Time, isHourly bool) error
	ListBlacklist(ctx context.Context, symbol string) ([]entity.BlacklistEntry, error)
	ClearBlacklist(ctx context.Context, symbol string) (int64, error)
}

// GapHandler handles HTTP requests for gap detection and the gap blacklist.
type GapHandler struct {
	gaps GapUsecase
}

// NewGapHandler creates a new GapHandler with the given usecase.
func NewGapHandler(gaps GapUsecase) *GapHandler {
	return &GapHandler{gaps: gaps}
}

// CheckForGaps handles the gap-detection endpoint. The response always has a
// gaps array, empty when the series is complete or the symbol is unknown.
//
// Endpoint: GET /gaps/:symbol
func (h *GapHandler) CheckForGaps(c *gin.Context) {
	gaps, err := h.gaps.CheckForGaps(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if gaps == nil {
		gaps = []entity.Gap{}
	}
	c.JSON(http.StatusOK, gin.H{"gaps": gaps})
}

// Blacklist handles the endpoint workers call when a gap turns out to be
// unfillable upstream.
//
// Endpoint: POST /blacklist
func (h *GapHandler) Blacklist(c *gin.Context) {
	var req dto.BlacklistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("blacklist validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.gaps.Blacklist(c.Request.Context(), req.Symbol, req.Timestamp, req.IsHourly); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

// ListBlacklist handles the blacklist listing endpoint, optionally filtered
// by symbol.
//
// Endpoint: GET /blacklist?symbol=AAPL
func (h *GapHandler) ListBlacklist(c *gin.Context) {
	entries, err := h.gaps.ListBlacklist(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []entity.BlacklistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ClearBlacklist handles the blacklist purge endpoint, optionally filtered
// by symbol.
//
// Endpoint: DELETE /blacklist?symbol=AAPL
func (h *GapHandler) ClearBlacklist(c *gin.Context) {
	removed, err := h.gaps.ClearBlacklist(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
