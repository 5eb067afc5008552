// Package adapters provides the repository implementations for the history feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/feature/history/usecase"
	stockentity "incrementum/internal/feature/stocks/domain/entity"
	platformdb "incrementum/internal/platform/db"
)

// barPostgres implements BarRepository, BarTimeReader and StockChecker on gorm.
type barPostgres struct {
	db *gorm.DB
}

var (
	_ usecase.BarRepository = (*barPostgres)(nil)
	_ usecase.BarTimeReader = (*barPostgres)(nil)
	_ usecase.StockChecker  = (*barPostgres)(nil)
)

// NewBarRepository creates a new history repository on the given connection.
func NewBarRepository(db *gorm.DB) *barPostgres {
	return &barPostgres{db: db}
}

// ensureStock creates a placeholder stock row for the symbol when none
// exists, so history rows never dangle. The placeholder carries the symbol
// as its company name until a metadata refresh overwrites it.
func ensureStock(tx *gorm.DB, symbol string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&stockentity.Stock{
		Symbol:      symbol,
		CompanyName: symbol,
		UpdatedAt:   time.Now().UTC(),
	}).Error
}

// Insert appends one bar, creating a placeholder stock in the same
// transaction when needed. A duplicate (symbol, time, granularity) surfaces
// as a conflict error; exactly one of two racing inserts wins.
func (r *barPostgres) Insert(ctx context.Context, bar *entity.Bar) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureStock(tx, bar.StockSymbol); err != nil {
			return err
		}
		return tx.Create(bar).Error
	})
	return platformdb.Translate(err)
}

// SaveBatch appends many bars in one transaction. With upsert set, existing
// rows are overwritten; otherwise a duplicate aborts the whole batch so no
// partial write is ever visible.
func (r *barPostgres) SaveBatch(ctx context.Context, bars []entity.Bar, upsert bool) error {
	if len(bars) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := map[string]struct{}{}
		for i := range bars {
			if _, ok := seen[bars[i].StockSymbol]; ok {
				continue
			}
			seen[bars[i].StockSymbol] = struct{}{}
			if err := ensureStock(tx, bars[i].StockSymbol); err != nil {
				return err
			}
		}

		q := tx
		if upsert {
			q = q.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "stock_symbol"}, {Name: "day_and_time"}, {Name: "is_hourly"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"open_price", "close_price", "high", "low", "volume",
				}),
			})
		}
		return q.Create(&bars).Error
	})
	return platformdb.Translate(err)
}

// Range returns bars within [from, to] for one symbol and granularity,
// ascending by time.
func (r *barPostgres) Range(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
	var bars []entity.Bar
	err := r.db.WithContext(ctx).
		Where("stock_symbol = ? AND is_hourly = ? AND day_and_time >= ? AND day_and_time <= ?",
			symbol, isHourly, from, to).
		Order("day_and_time ASC").
		Find(&bars).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return bars, nil
}

// Latest returns the most recent bar of a series.
func (r *barPostgres) Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
	var bar entity.Bar
	err := r.db.WithContext(ctx).
		Where("stock_symbol = ? AND is_hourly = ?", symbol, isHourly).
		Order("day_and_time DESC").
		First(&bar).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return &bar, nil
}

// ListTimes returns the timestamps of a series, ascending. Used by the gap
// detector, which only needs the time axis.
func (r *barPostgres) ListTimes(ctx context.Context, symbol string, isHourly bool) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&entity.Bar{}).
		Where("stock_symbol = ? AND is_hourly = ?", symbol, isHourly).
		Order("day_and_time ASC").
		Pluck("day_and_time", &times).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return times, nil
}

// SymbolExists reports whether the stock table knows the symbol.
func (r *barPostgres) SymbolExists(ctx context.Context, symbol string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&stockentity.Stock{}).
		Where("symbol = ?", symbol).
		Count(&count).Error
	if err != nil {
		return false, platformdb.Translate(err)
	}
	return count > 0, nil
}
