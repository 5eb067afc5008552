package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"incrementum/internal/feature/accounts/domain/entity"
)

const (
	// ContextAccountID is the gin context key carrying the authenticated
	// account's ID.
	ContextAccountID = "accountID"

	// HeaderAPIKey carries the machine-writer credential.
	HeaderAPIKey = "X-API-Key"
)

// APIKeyAuthenticator resolves an API key to the account that owns it.
// Satisfied by the accounts usecase.
type APIKeyAuthenticator interface {
	GetByAPIKey(ctx context.Context, key string) (*entity.Account, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated accounts only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWT numbers decode as float64
				c.Set(ContextAccountID, uint(sub))
			}
		}
		c.Next()
	}
}

// APIKeyRequired returns a Gin middleware function that validates the
// X-API-Key header against the account store. Ingestion workers authenticate
// this way instead of carrying a login session.
func APIKeyRequired(accounts APIKeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing api key"})
			return
		}

		account, err := accounts.GetByAPIKey(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		c.Set(ContextAccountID, account.ID)
		c.Next()
	}
}
