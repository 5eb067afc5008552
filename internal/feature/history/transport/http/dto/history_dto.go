// Package dto defines data transfer objects for the history feature's HTTP
// transport layer.
package dto

import (
	"time"

	"incrementum/internal/feature/history/domain/entity"
)

// BarReq represents one OHLCV row in append requests. Prices are integer
// cents, matching the storage representation.
type BarReq struct {
	Symbol     string    `json:"symbol" binding:"required"`
	DayAndTime time.Time `json:"day_and_time" binding:"required"`
	IsHourly   bool      `json:"is_hourly"`
	Open       int64     `json:"open"`
	Close      int64     `json:"close"`
	High       int64     `json:"high"`
	Low        int64     `json:"low"`
	Volume     int64     `json:"volume"`
}

// ToEntity converts the request into the domain model.
func (r BarReq) ToEntity() entity.Bar {
	return entity.Bar{
		StockSymbol: r.Symbol,
		DayAndTime:  r.DayAndTime,
		IsHourly:    r.IsHourly,
		OpenPrice:   r.Open,
		ClosePrice:  r.Close,
		High:        r.High,
		Low:         r.Low,
		Volume:      r.Volume,
	}
}

// BatchReq represents the request body for the batch append endpoint.
// With upsert set, rows that already exist are overwritten.
type BatchReq struct {
	Bars   []BarReq `json:"bars" binding:"required,min=1,dive"`
	Upsert bool     `json:"upsert"`
}

// BarRes represents one OHLCV row in responses.
type BarRes struct {
	Symbol     string    `json:"symbol"`
	DayAndTime time.Time `json:"day_and_time"`
	IsHourly   bool      `json:"is_hourly"`
	Open       int64     `json:"open"`
	Close      int64     `json:"close"`
	High       int64     `json:"high"`
	Low        int64     `json:"low"`
	Volume     int64     `json:"volume"`
}

// FromEntity converts the domain model into a response.
func FromEntity(b entity.Bar) BarRes {
	return BarRes{
		Symbol:     b.StockSymbol,
		DayAndTime: b.DayAndTime,
		IsHourly:   b.IsHourly,
		Open:       b.OpenPrice,
		Close:      b.ClosePrice,
		High:       b.High,
		Low:        b.Low,
		Volume:     b.Volume,
	}
}

// BlacklistReq represents the request body for blacklisting a gap start.
type BlacklistReq struct {
	Symbol    string    `json:"symbol" binding:"required"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	IsHourly  bool      `json:"is_hourly"`
}
