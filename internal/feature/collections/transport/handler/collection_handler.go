// Package handler provides the HTTP handlers for the collections feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/collections/domain/entity"
	"incrementum/internal/feature/collections/transport/http/dto"
	"incrementum/internal/feature/collections/usecase"
	jwtmw "incrementum/internal/platform/jwt"
	"incrementum/internal/shared/apperr"
)

// CollectionsUsecase defines the collection operations the handler depends on.
type CollectionsUsecase interface {
	Create(ctx context.Context, accountID uint, name, description string, date time.Time, symbols []string) (*entity.CustomCollection, error)
	Get(ctx context.Context, accountID, id uint) (*usecase.CollectionWithMembers, error)
	ListByAccount(ctx context.Context, accountID uint) ([]entity.CustomCollection, error)
	AddStock(ctx context.Context, accountID, collectionID uint, symbol string) error
	RemoveStock(ctx context.Context, accountID, collectionID uint, symbol string) error
	Delete(ctx context.Context, accountID, id uint) error
}

// CollectionHandler handles HTTP requests for account-owned collections.
type CollectionHandler struct {
	collections CollectionsUsecase
}

// NewCollectionHandler creates a new CollectionHandler with the given usecase.
func NewCollectionHandler(collections CollectionsUsecase) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

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

// Create handles the collection creation endpoint.
//
// Endpoint: POST /collections
func (h *CollectionHandler) Create(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.CreateCollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("collection create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	col, err := h.collections.Create(c.Request.Context(), acct, req.Name, req.Description, req.Date, req.Symbols)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*col, nil))
}

// List handles the per-account collection listing endpoint.
//
// Endpoint: GET /collections
func (h *CollectionHandler) List(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	collections, err := h.collections.ListByAccount(c.Request.Context(), acct)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.CollectionRes, 0, len(collections))
	for _, col := range collections {
		out = append(out, dto.FromEntity(col, nil))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles the single-collection lookup endpoint, returning the collection
// together with its member symbols.
//
// Endpoint: GET /collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
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

	cwm, err := h.collections.Get(c.Request.Context(), acct, id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(cwm.Collection, cwm.Symbols))
}

// AddStock handles the membership-add endpoint. Adding a symbol that is
// already a member succeeds without duplicating it.
//
// Endpoint: POST /collections/:id/stocks
func (h *CollectionHandler) AddStock(c *gin.Context) {
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

	var req dto.AddStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("collection add-stock validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.collections.AddStock(c.Request.Context(), acct, id, req.Symbol); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// RemoveStock handles the membership-remove endpoint.
//
// Endpoint: DELETE /collections/:id/stocks/:symbol
func (h *CollectionHandler) RemoveStock(c *gin.Context) {
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

	if err := h.collections.RemoveStock(c.Request.Context(), acct, id, c.Param("symbol")); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Delete handles the collection deletion endpoint. Memberships are removed
// with the collection; the stocks themselves are untouched.
//
// Endpoint: DELETE /collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
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

	if err := h.collections.Delete(c.Request.Context(), acct, id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
