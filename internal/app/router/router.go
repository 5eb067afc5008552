// Package router assembles the HTTP route table.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accounthandler "incrementum/internal/feature/accounts/transport/handler"
	collectionhandler "incrementum/internal/feature/collections/transport/handler"
	historyhandler "incrementum/internal/feature/history/transport/handler"
	queuehandler "incrementum/internal/feature/queue/transport/handler"
	screenerhandler "incrementum/internal/feature/screeners/transport/handler"
	stockhandler "incrementum/internal/feature/stocks/transport/handler"
	jwtmw "incrementum/internal/platform/jwt"
)

// Handlers bundles every transport handler the router mounts.
type Handlers struct {
	Accounts    *accounthandler.AccountHandler
	Stocks      *stockhandler.StockHandler
	History     *historyhandler.HistoryHandler
	Gaps        *historyhandler.GapHandler
	Screeners   *screenerhandler.ScreenerHandler
	Collections *collectionhandler.CollectionHandler
	Queue       *queuehandler.QueueHandler
}

// NewRouter builds the route table. Reads of reference data are open,
// account-scoped routes require a bearer token, and machine-writer routes
// require an API key.
func NewRouter(h Handlers, apiKeys jwtmw.APIKeyAuthenticator) *gin.Engine {
	r := gin.Default()

	// Liveness probe.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// No authentication needed.
	r.POST("/signup", h.Accounts.Signup)
	r.POST("/login", h.Accounts.Login)
	r.GET("/stocks", h.Stocks.List)
	r.GET("/stocks/:symbol", h.Stocks.Get)
	r.GET("/history/:symbol", h.History.Query)
	r.GET("/history/:symbol/latest", h.History.Latest)
	r.GET("/screeners", h.Screeners.ListSystem)

	// Account-scoped routes carry a bearer token.
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/screeners/custom", h.Screeners.CreateCustom)
		auth.GET("/screeners/custom", h.Screeners.ListCustom)
		auth.GET("/screeners/custom/:id", h.Screeners.GetCustom)
		auth.PUT("/screeners/custom/:id", h.Screeners.UpdateCustom)
		auth.DELETE("/screeners/custom/:id", h.Screeners.DeleteCustom)

		auth.POST("/collections", h.Collections.Create)
		auth.GET("/collections", h.Collections.List)
		auth.GET("/collections/:id", h.Collections.Get)
		auth.DELETE("/collections/:id", h.Collections.Delete)
		auth.POST("/collections/:id/stocks", h.Collections.AddStock)
		auth.DELETE("/collections/:id/stocks/:symbol", h.Collections.RemoveStock)
	}

	// Machine-writer routes carry an API key. Ingestion workers use these.
	machine := r.Group("/")
	machine.Use(jwtmw.APIKeyRequired(apiKeys))
	{
		machine.PUT("/stocks", h.Stocks.Upsert)
		machine.POST("/history", h.History.Append)
		machine.POST("/history/batch", h.History.AppendBatch)

		machine.GET("/gaps/:symbol", h.Gaps.CheckForGaps)
		machine.POST("/blacklist", h.Gaps.Blacklist)
		machine.GET("/blacklist", h.Gaps.ListBlacklist)
		machine.DELETE("/blacklist", h.Gaps.ClearBlacklist)

		machine.POST("/queue/refresh", h.Queue.Refresh)
		machine.POST("/queue/history/next", h.Queue.NextHistoryBatch)
		machine.POST("/queue/gaps/next", h.Queue.NextGapBatch)
		machine.GET("/queue/status", h.Queue.Status)
		machine.POST("/queue/reset", h.Queue.Reset)
	}

	return r
}
