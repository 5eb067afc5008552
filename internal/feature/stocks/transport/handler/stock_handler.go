// Package handler provides the HTTP handlers for the stocks feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/stocks/domain/entity"
	"incrementum/internal/feature/stocks/transport/http/dto"
	"incrementum/internal/shared/apperr"
)

// StocksUsecase defines the stock metadata operations the handler depends on.
type StocksUsecase interface {
	Upsert(ctx context.Context, s entity.Stock) (*entity.Stock, error)
	Get(ctx context.Context, symbol string) (*entity.Stock, error)
	List(ctx context.Context, limit, offset int) ([]entity.Stock, error)
}

// StockHandler handles HTTP requests for stock metadata.
type StockHandler struct {
	stocks StocksUsecase
}

// NewStockHandler creates a new StockHandler with the given usecase.
func NewStockHandler(stocks StocksUsecase) *StockHandler {
	return &StockHandler{stocks: stocks}
}

// Upsert handles the stock create-or-refresh endpoint.
//
// Endpoint: PUT /stocks
func (h *StockHandler) Upsert(c *gin.Context) {
	var req dto.StockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("stock upsert validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s, err := h.stocks.Upsert(c.Request.Context(), req.ToEntity())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// Get handles the single-stock lookup endpoint.
//
// Endpoint: GET /stocks/:symbol
func (h *StockHandler) Get(c *gin.Context) {
	s, err := h.stocks.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}

// List handles the paged listing endpoint.
//
// Endpoint: GET /stocks?limit=100&offset=0
func (h *StockHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	stocks, err := h.stocks.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.StockRes, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.FromEntity(s))
	}
	c.JSON(http.StatusOK, out)
}
