package entity

import "time"

// Gap is a span of missing history for a symbol at one granularity, as
// reported by the gap detector.
type Gap struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	IsHourly bool      `json:"is_hourly"`
}

// BlacklistEntry suppresses a known-unfillable gap so workers stop re-fetching
// it. Entries expire: after the expiration window the gap is reported again.
type BlacklistEntry struct {
	ID          uint      `gorm:"primaryKey"`
	StockSymbol string    `gorm:"column:stock_symbol;size:10;not null;index"`
	Timestamp   time.Time `gorm:"column:timestamp;not null"`
	TimeAdded   time.Time `gorm:"column:time_added;not null"`
	IsHourly    bool      `gorm:"column:is_hourly;not null"`
}

// TableName maps the entity onto the blacklist table.
func (BlacklistEntry) TableName() string {
	return "blacklist"
}
