// Package entity defines the domain models for the history feature.
package entity

import (
	"time"

	stockentity "incrementum/internal/feature/stocks/domain/entity"
)

// PriceScale is the fixed-point scale for OHLC prices: values are stored as
// integers in minor currency units (cents), i.e. dollars * 100. Integers
// avoid the rounding drift of floating point across ingest/re-ingest cycles.
const PriceScale = 100

// Bar is one immutable OHLCV history row for a stock symbol. Identity is the
// composite (StockSymbol, DayAndTime, IsHourly); rows are append-only and
// never mutated after insert.
type Bar struct {
	// StockSymbol references an existing Stock row.
	StockSymbol string `gorm:"column:stock_symbol;primaryKey;size:20"`

	// DayAndTime is the start of the bucket this bar covers.
	DayAndTime time.Time `gorm:"column:day_and_time;primaryKey"`

	// IsHourly is the granularity flag: true for hourly buckets, false for
	// daily or other coarse buckets.
	// No default tag: gorm would silently replace an explicit false with
	// the column default on insert.
	IsHourly bool `gorm:"column:is_hourly;primaryKey"`

	// OHLC prices in cents (see PriceScale).
	OpenPrice  int64 `gorm:"column:open_price;not null"`
	ClosePrice int64 `gorm:"column:close_price;not null"`
	High       int64 `gorm:"column:high;not null"`
	Low        int64 `gorm:"column:low;not null"`

	// Volume is the traded share count for the bucket.
	Volume int64 `gorm:"column:volume;not null"`

	// Stock declares the foreign key to the referenced instrument; it is
	// never loaded or serialized.
	Stock *stockentity.Stock `gorm:"foreignKey:StockSymbol;references:Symbol;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps the entity onto the stock_history table.
func (Bar) TableName() string {
	return "stock_history"
}
