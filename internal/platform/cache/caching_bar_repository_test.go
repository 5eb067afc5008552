package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incrementum/internal/feature/history/domain/entity"
)

// mockBarRepository is a function-field mock of the decorated repository.
type mockBarRepository struct {
	insertFn    func(ctx context.Context, bar *entity.Bar) error
	saveBatchFn func(ctx context.Context, bars []entity.Bar, upsert bool) error
	rangeFn     func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error)
	latestFn    func(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error)
}

func (m *mockBarRepository) Insert(ctx context.Context, bar *entity.Bar) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, bar)
	}
	return nil
}

func (m *mockBarRepository) SaveBatch(ctx context.Context, bars []entity.Bar, upsert bool) error {
	if m.saveBatchFn != nil {
		return m.saveBatchFn(ctx, bars, upsert)
	}
	return nil
}

func (m *mockBarRepository) Range(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, symbol, from, to, isHourly)
	}
	return nil, nil
}

func (m *mockBarRepository) Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, symbol, isHourly)
	}
	return nil, nil
}

func sampleBars() []entity.Bar {
	return []entity.Bar{{
		StockSymbol: "AAPL",
		DayAndTime:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		IsHourly:    false,
		OpenPrice:   15000,
		ClosePrice:  15100,
		High:        15200,
		Low:         14900,
		Volume:      1000,
	}}
}

func TestNewCachingBarRepository_Defaults(t *testing.T) {
	t.Run("zero ttl falls back to five minutes", func(t *testing.T) {
		c := NewCachingBarRepository(nil, 0, &mockBarRepository{}, "")
		assert.Equal(t, 5*time.Minute, c.ttl)
		assert.Equal(t, "bars", c.namespace)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		c := NewCachingBarRepository(nil, time.Hour, &mockBarRepository{}, "history")
		assert.Equal(t, time.Hour, c.ttl)
		assert.Equal(t, "history", c.namespace)
	})
}

func TestCachingBarRepository_NilRedisBypasses(t *testing.T) {
	innerCalled := false
	inner := &mockBarRepository{
		rangeFn: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
			innerCalled = true
			return sampleBars(), nil
		},
	}
	c := NewCachingBarRepository(nil, time.Minute, inner, "bars")

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got, err := c.Range(context.Background(), "AAPL", from, from.AddDate(0, 0, 30), false)

	require.NoError(t, err)
	assert.True(t, innerCalled)
	assert.Len(t, got, 1)
}

func TestCachingBarRepository_Range(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)
	bars := sampleBars()
	payload, err := json.Marshal(bars)
	require.NoError(t, err)

	t.Run("cache miss falls back and populates", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockBarRepository{
			rangeFn: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
				return bars, nil
			},
		}
		c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")
		key := c.rangeKey("AAPL", from, to, false)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, payload, time.Minute).SetVal("OK")

		got, err := c.Range(context.Background(), "AAPL", from, to, false)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit never touches the database", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockBarRepository{
			rangeFn: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
				t.Fatal("database must not be queried on a cache hit")
				return nil, nil
			},
		}
		c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")
		key := c.rangeKey("AAPL", from, to, false)

		mock.ExpectGet(key).SetVal(string(payload))

		got, err := c.Range(context.Background(), "AAPL", from, to, false)

		require.NoError(t, err)
		assert.Equal(t, bars, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure is returned, not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockBarRepository{
			rangeFn: func(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
				return nil, errors.New("db down")
			},
		}
		c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")

		mock.ExpectGet(c.rangeKey("AAPL", from, to, false)).RedisNil()

		_, err := c.Range(context.Background(), "AAPL", from, to, false)

		assert.Error(t, err)
	})
}

func TestCachingBarRepository_InsertInvalidates(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBarRepository{}
	c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")

	b := sampleBars()[0]
	staleKey := c.latestKey("AAPL", false)

	mock.ExpectScan(0, c.symbolPrefix("AAPL", false)+"*", 200).SetVal([]string{staleKey}, 0)
	mock.ExpectDel(staleKey).SetVal(1)

	require.NoError(t, c.Insert(context.Background(), &b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingBarRepository_SaveBatchInvalidatesPerSeries(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBarRepository{}
	c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")

	bars := []entity.Bar{
		sampleBars()[0],
		sampleBars()[0], // same series twice: one invalidation
	}

	mock.ExpectScan(0, c.symbolPrefix("AAPL", false)+"*", 200).SetVal([]string{}, 0)

	require.NoError(t, c.SaveBatch(context.Background(), bars, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingBarRepository_WriteFailureSkipsInvalidation(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBarRepository{
		insertFn: func(ctx context.Context, bar *entity.Bar) error {
			return errors.New("conflict")
		},
	}
	c := NewCachingBarRepository(rdb, time.Minute, inner, "bars")

	b := sampleBars()[0]
	err := c.Insert(context.Background(), &b)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "no cache traffic on a failed write")
}
