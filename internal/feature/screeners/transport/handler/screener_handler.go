// Package handler provides the HTTP handlers for the screeners feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"incrementum/internal/feature/screeners/domain/entity"
	"incrementum/internal/feature/screeners/transport/http/dto"
	jwtmw "incrementum/internal/platform/jwt"
	"incrementum/internal/shared/apperr"
)

// ScreenersUsecase defines the screener operations the handler depends on.
type ScreenersUsecase interface {
	ListSystem(ctx context.Context) ([]entity.Screener, error)
	CreateCustom(ctx context.Context, accountID uint, name, description string, filter datatypes.JSON) (*entity.CustomScreener, error)
	ListCustom(ctx context.Context, accountID uint) ([]entity.CustomScreener, error)
	GetCustom(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error)
	UpdateCustom(ctx context.Context, accountID, id uint, name, description string, filter datatypes.JSON) (*entity.CustomScreener, error)
	DeleteCustom(ctx context.Context, accountID, id uint) error
}

// ScreenerHandler handles HTTP requests for system and custom screeners.
type ScreenerHandler struct {
	screeners ScreenersUsecase
}

// NewScreenerHandler creates a new ScreenerHandler with the given usecase.
func NewScreenerHandler(screeners ScreenersUsecase) *ScreenerHandler {
	return &ScreenerHandler{screeners: screeners}
}

// accountID reads the authenticated account's ID placed by the auth middleware.
func accountID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextAccountID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListSystem handles the built-in screener listing endpoint.
//
// Endpoint: GET /screeners
func (h *ScreenerHandler) ListSystem(c *gin.Context) {
	screeners, err := h.screeners.ListSystem(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ScreenerRes, 0, len(screeners))
	for _, s := range screeners {
		out = append(out, dto.FromScreener(s))
	}
	c.JSON(http.StatusOK, out)
}

// CreateCustom handles the custom screener creation endpoint.
//
// Endpoint: POST /screeners/custom
func (h *ScreenerHandler) CreateCustom(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.CustomScreenerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("screener create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s, err := h.screeners.CreateCustom(c.Request.Context(), acct, req.Name, req.Description, req.FilterJSON())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromCustomScreener(*s))
}

// ListCustom handles the custom screener listing endpoint.
//
// Endpoint: GET /screeners/custom
func (h *ScreenerHandler) ListCustom(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	screeners, err := h.screeners.ListCustom(c.Request.Context(), acct)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.CustomScreenerRes, 0, len(screeners))
	for _, s := range screeners {
		out = append(out, dto.FromCustomScreener(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetCustom handles the single custom screener lookup endpoint.
//
// Endpoint: GET /screeners/custom/:id
func (h *ScreenerHandler) GetCustom(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s, err := h.screeners.GetCustom(c.Request.Context(), acct, id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromCustomScreener(*s))
}

// UpdateCustom handles the custom screener update endpoint.
//
// Endpoint: PUT /screeners/custom/:id
func (h *ScreenerHandler) UpdateCustom(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.CustomScreenerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("screener update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s, err := h.screeners.UpdateCustom(c.Request.Context(), acct, id, req.Name, req.Description, req.FilterJSON())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromCustomScreener(*s))
}

// DeleteCustom handles the custom screener deletion endpoint.
//
// Endpoint: DELETE /screeners/custom/:id
func (h *ScreenerHandler) DeleteCustom(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.screeners.DeleteCustom(c.Request.Context(), acct, id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
