// Package handler provides the HTTP handlers for the accounts feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/feature/accounts/transport/http/dto"
	"incrementum/internal/shared/apperr"
)

// AccountsUsecase defines the account operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AccountsUsecase interface {
	Register(ctx context.Context, name, phone, email, password string) (*entity.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// AccountHandler handles HTTP requests for account registration and login.
type AccountHandler struct {
	accounts AccountsUsecase
}

// NewAccountHandler creates a new AccountHandler with the given usecase.
func NewAccountHandler(accounts AccountsUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Signup handles the account registration endpoint. The generated API key is
// returned once in the response and never again.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	a, err := h.accounts.Register(c.Request.Context(), req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		// The real error is not exposed, to avoid account enumeration.
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": "signup failed"})
		return
	}

	slog.Info("account signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{
		ID:     a.ID,
		Name:   a.Name,
		Email:  a.Email,
		APIKey: a.APIKey,
	})
}

// Login handles the login endpoint and returns a bearer token on success.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	slog.Info("account login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token})
}
