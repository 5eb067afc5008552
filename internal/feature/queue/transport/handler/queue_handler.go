// Package handler provides the HTTP handlers for the worker queue feature.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	queueuc "incrementum/internal/feature/queue/usecase"
	"incrementum/internal/shared/apperr"
)

// QueueService defines the queue operations the handler depends on.
type QueueService interface {
	Refresh(ctx context.Context) (queueuc.Status, error)
	NextHistoryBatch(n int) ([]string, error)
	NextGapBatch(n int) ([]string, error)
	Status() queueuc.Status
	Reset()
}

// QueueHandler handles HTTP requests from ingestion workers asking for work.
type QueueHandler struct {
	queue QueueService
}

// NewQueueHandler creates a new QueueHandler with the given service.
func NewQueueHandler(queue QueueService) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// Refresh rebuilds both queues from the current symbol universe.
//
// Endpoint: POST /queue/refresh
func (h *QueueHandler) Refresh(c *gin.Context) {
	status, err := h.queue.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// NextHistoryBatch hands up to n symbols to a history-fetching worker. An
// empty batch means the round is drained.
//
// Endpoint: POST /queue/history/next?n=10
func (h *QueueHandler) NextHistoryBatch(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "0"))
	batch, err := h.queue.NextHistoryBatch(n)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if batch == nil {
		batch = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"symbols": batch})
}

// NextGapBatch hands up to n symbols to a gap-detection worker.
//
// Endpoint: POST /queue/gaps/next?n=10
func (h *QueueHandler) NextGapBatch(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "0"))
	batch, err := h.queue.NextGapBatch(n)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if batch == nil {
		batch = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"symbols": batch})
}

// Status reports how much work remains in both queues.
//
// Endpoint: GET /queue/status
func (h *QueueHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.queue.Status())
}

// Reset empties both queues.
//
// Endpoint: POST /queue/reset
func (h *QueueHandler) Reset(c *gin.Context) {
	h.queue.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
