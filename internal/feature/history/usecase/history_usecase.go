// Package usecase implements the business logic for OHLCV history operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/shared/apperr"
)

// BarRepository abstracts the persistence layer for history rows.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type BarRepository interface {
	// Insert appends one bar. Returns a conflict error when a row with the
	// same (symbol, time, granularity) already exists. A placeholder Stock
	// row is created in the same transaction when the symbol is unknown.
	Insert(ctx context.Context, bar *entity.Bar) error

	// SaveBatch appends many bars in one transaction. With upsert set,
	// existing rows are overwritten instead of conflicting.
	SaveBatch(ctx context.Context, bars []entity.Bar, upsert bool) error

	// Range returns bars for one symbol and granularity with
	// from <= day_and_time <= to, ascending by time.
	Range(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error)

	// Latest returns the most recent bar for a symbol and granularity,
	// or a not-found error when the series is empty.
	Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error)
}

// HistoryUsecase provides append and query operations over stock history.
type HistoryUsecase struct {
	bars BarRepository
}

// NewHistoryUsecase creates a new HistoryUsecase with the given repository.
func NewHistoryUsecase(bars BarRepository) *HistoryUsecase {
	return &HistoryUsecase{bars: bars}
}

func validateBar(bar *entity.Bar) error {
	bar.StockSymbol = strings.ToUpper(strings.TrimSpace(bar.StockSymbol))
	if bar.StockSymbol == "" {
		return apperr.Validationf("symbol must not be empty")
	}
	if bar.DayAndTime.IsZero() {
		return apperr.Validationf("timestamp must be set")
	}
	if bar.Volume < 0 {
		return apperr.Validationf("volume must not be negative")
	}
	if bar.High < bar.Low {
		return apperr.Validationf("high %d below low %d", bar.High, bar.Low)
	}
	return nil
}

// Append stores one immutable history row. A duplicate
// (symbol, time, granularity) is a conflict, never a silent overwrite.
func (u *HistoryUsecase) Append(ctx context.Context, bar entity.Bar) error {
	if err := validateBar(&bar); err != nil {
		return err
	}
	return u.bars.Insert(ctx, &bar)
}

// AppendBatch stores many rows atomically: either every row is visible or
// none is. With upsert set, rows that already exist are overwritten, which
// callers use to re-ingest corrected data.
func (u *HistoryUsecase) AppendBatch(ctx context.Context, bars []entity.Bar, upsert bool) error {
	if len(bars) == 0 {
		return nil
	}
	for i := range bars {
		if err := validateBar(&bars[i]); err != nil {
			return err
		}
	}
	return u.bars.SaveBatch(ctx, bars, upsert)
}

// Query returns the bars for a symbol and granularity within [from, to],
// ascending by timestamp. An empty result is not an error. The query is
// restartable: re-issuing it returns the same rows.
func (u *HistoryUsecase) Query(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperr.Validationf("symbol must not be empty")
	}
	if from.After(to) {
		return nil, apperr.Validationf("time range start %s after end %s", from, to)
	}
	return u.bars.Range(ctx, symbol, from, to, isHourly)
}

// Latest returns the newest bar for a symbol and granularity. Ingestion
// callers use it to resume fetching where the series left off.
func (u *HistoryUsecase) Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperr.Validationf("symbol must not be empty")
	}
	return u.bars.Latest(ctx, symbol, isHourly)
}
