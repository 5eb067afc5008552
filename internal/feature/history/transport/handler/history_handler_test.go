package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/shared/apperr"
)

// mockHistoryUsecase is a mock implementation of the HistoryUsecase interface.
type mockHistoryUsecase struct {
	AppendFunc      func(ctx context.Context, bar entity.Bar) error
	AppendBatchFunc func(ctx context.Context, bars []entity.Bar, upsert bool) error
	QueryFunc       func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error)
	LatestFunc      func(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error)
}

func (m *mockHistoryUsecase) Append(ctx context.Context, bar entity.Bar) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, bar)
	}
	return nil
}

func (m *mockHistoryUsecase) AppendBatch(ctx context.Context, bars []entity.Bar, upsert bool) error {
	if m.AppendBatchFunc != nil {
		return m.AppendBatchFunc(ctx, bars, upsert)
	}
	return nil
}

func (m *mockHistoryUsecase) Query(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, symbol, from, to, isHourly)
	}
	return nil, nil
}

func (m *mockHistoryUsecase) Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, symbol, isHourly)
	}
	return nil, apperr.NotFoundf("empty series")
}

func newHistoryRouter(uc *mockHistoryUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHistoryHandler(uc)
	r.POST("/history", h.Append)
	r.POST("/history/batch", h.AppendBatch)
	r.GET("/history/:symbol", h.Query)
	r.GET("/history/:symbol/latest", h.Latest)
	return r
}

func barBody() gin.H {
	return gin.H{
		"symbol":       "AAPL",
		"day_and_time": "2026-08-20T00:00:00Z",
		"is_hourly":    false,
		"open":         15000,
		"close":        15100,
		"high":         15200,
		"low":          14900,
		"volume":       1000,
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHistoryHandler_Append(t *testing.T) {
	t.Run("successful append", func(t *testing.T) {
		var got entity.Bar
		uc := &mockHistoryUsecase{
			AppendFunc: func(ctx context.Context, bar entity.Bar) error {
				got = bar
				return nil
			},
		}
		w := postJSON(t, newHistoryRouter(uc), "/history", barBody())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "AAPL", got.StockSymbol)
		assert.Equal(t, int64(15100), got.ClosePrice)
	})

	t.Run("duplicate row maps to 409", func(t *testing.T) {
		uc := &mockHistoryUsecase{
			AppendFunc: func(ctx context.Context, bar entity.Bar) error {
				return apperr.Conflictf("row exists")
			},
		}
		w := postJSON(t, newHistoryRouter(uc), "/history", barBody())

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing timestamp is 400", func(t *testing.T) {
		body := barBody()
		delete(body, "day_and_time")
		w := postJSON(t, newHistoryRouter(&mockHistoryUsecase{}), "/history", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHistoryHandler_AppendBatch(t *testing.T) {
	t.Run("upsert flag reaches the usecase", func(t *testing.T) {
		uc := &mockHistoryUsecase{
			AppendBatchFunc: func(ctx context.Context, bars []entity.Bar, upsert bool) error {
				assert.True(t, upsert)
				assert.Len(t, bars, 2)
				return nil
			},
		}
		body := gin.H{"bars": []gin.H{barBody(), barBody()}, "upsert": true}
		w := postJSON(t, newHistoryRouter(uc), "/history/batch", body)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("empty bars array is 400", func(t *testing.T) {
		w := postJSON(t, newHistoryRouter(&mockHistoryUsecase{}), "/history/batch", gin.H{"bars": []gin.H{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHistoryHandler_Query(t *testing.T) {
	t.Run("returns rows for the window", func(t *testing.T) {
		uc := &mockHistoryUsecase{
			QueryFunc: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
				assert.Equal(t, "AAPL", symbol)
				assert.True(t, isHourly)
				return []entity.Bar{{StockSymbol: symbol, DayAndTime: from, IsHourly: true, ClosePrice: 15100}}, nil
			},
		}
		r := newHistoryRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/history/AAPL?from=2026-08-01T00:00:00Z&to=2026-08-20T00:00:00Z&hourly=true", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 1)
		assert.Equal(t, "AAPL", res[0]["symbol"])
	})

	t.Run("unparseable from is 400", func(t *testing.T) {
		r := newHistoryRouter(&mockHistoryUsecase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history/AAPL?from=yesterday&to=2026-08-20T00:00:00Z", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inverted window maps to 400 via the usecase", func(t *testing.T) {
		uc := &mockHistoryUsecase{
			QueryFunc: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
				return nil, apperr.Validationf("start after end")
			},
		}
		r := newHistoryRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/history/AAPL?from=2026-08-20T00:00:00Z&to=2026-08-01T00:00:00Z", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHistoryHandler_Latest(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		uc := &mockHistoryUsecase{
			LatestFunc: func(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
				return &entity.Bar{StockSymbol: symbol, ClosePrice: 15100}, nil
			},
		}
		r := newHistoryRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history/AAPL/latest", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty series is 404", func(t *testing.T) {
		r := newHistoryRouter(&mockHistoryUsecase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history/AAPL/latest", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
