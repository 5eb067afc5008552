package jwtmw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/shared/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		id, _ := c.Get(ContextAccountID)
		c.JSON(http.StatusOK, gin.H{"account_id": id})
	})
	return r
}

func TestAuthRequired_MissingBearer(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequired_MissingSecret(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "")
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")
	r := authTestRouter()

	gen := NewGenerator("test-secret", time.Hour)
	token, err := gen.GenerateToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired_SecretMismatch(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "server-secret")
	r := authTestRouter()

	gen := NewGenerator("other-secret", time.Hour)
	token, err := gen.GenerateToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// mockAPIKeyAuthenticator is a function-field mock of APIKeyAuthenticator.
type mockAPIKeyAuthenticator struct {
	getFn func(ctx context.Context, key string) (*entity.Account, error)
}

func (m *mockAPIKeyAuthenticator) GetByAPIKey(ctx context.Context, key string) (*entity.Account, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, apperr.NotFoundf("no account")
}

func apiKeyTestRouter(auth APIKeyAuthenticator) *gin.Engine {
	r := gin.New()
	r.POST("/machine", APIKeyRequired(auth), func(c *gin.Context) {
		id, _ := c.Get(ContextAccountID)
		c.JSON(http.StatusOK, gin.H{"account_id": id})
	})
	return r
}

func TestAPIKeyRequired_MissingKey(t *testing.T) {
	r := apiKeyTestRouter(&mockAPIKeyAuthenticator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/machine", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyRequired_UnknownKey(t *testing.T) {
	r := apiKeyTestRouter(&mockAPIKeyAuthenticator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/machine", nil)
	req.Header.Set(HeaderAPIKey, "bogus")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyRequired_ValidKey(t *testing.T) {
	auth := &mockAPIKeyAuthenticator{
		getFn: func(ctx context.Context, key string) (*entity.Account, error) {
			if key != "valid-key" {
				t.Errorf("unexpected key %q", key)
			}
			return &entity.Account{ID: 3}, nil
		},
	}
	r := apiKeyTestRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/machine", nil)
	req.Header.Set(HeaderAPIKey, "valid-key")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
