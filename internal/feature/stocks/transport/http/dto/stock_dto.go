// Package dto defines data transfer objects for the stocks feature's HTTP
// transport layer.
package dto

import (
	"time"

	"incrementum/internal/feature/stocks/domain/entity"
)

// StockReq represents the request body for the stock upsert endpoint.
// Optional metadata fields stay nil when absent, so the store can tell
// "not provided" from a zero value.
type StockReq struct {
	Symbol            string     `json:"symbol" binding:"required"`
	CompanyName       string     `json:"company_name"`
	Description       *string    `json:"description"`
	MarketCap         *int64     `json:"market_cap"`
	PrimaryExchange   *string    `json:"primary_exchange"`
	Type              *string    `json:"type"`
	CurrencyName      *string    `json:"currency_name"`
	CIK               *string    `json:"cik"`
	CompositeFIGI     *string    `json:"composite_figi"`
	ShareClassFIGI    *string    `json:"share_class_figi"`
	OutstandingShares *int64     `json:"outstanding_shares"`
	EPS               *float64   `json:"eps"`
	HomepageURL       *string    `json:"homepage_url"`
	TotalEmployees    *int       `json:"total_employees"`
	ListDate          *time.Time `json:"list_date"`
	Locale            *string    `json:"locale"`
	SICCode           *string    `json:"sic_code"`
	SICDescription    *string    `json:"sic_description"`
}

// ToEntity converts the request into the domain model.
func (r StockReq) ToEntity() entity.Stock {
	return entity.Stock{
		Symbol:            r.Symbol,
		CompanyName:       r.CompanyName,
		Description:       r.Description,
		MarketCap:         r.MarketCap,
		PrimaryExchange:   r.PrimaryExchange,
		Type:              r.Type,
		CurrencyName:      r.CurrencyName,
		CIK:               r.CIK,
		CompositeFIGI:     r.CompositeFIGI,
		ShareClassFIGI:    r.ShareClassFIGI,
		OutstandingShares: r.OutstandingShares,
		EPS:               r.EPS,
		HomepageURL:       r.HomepageURL,
		TotalEmployees:    r.TotalEmployees,
		ListDate:          r.ListDate,
		Locale:            r.Locale,
		SICCode:           r.SICCode,
		SICDescription:    r.SICDescription,
	}
}

// StockRes represents one stock in responses.
type StockRes struct {
	Symbol            string     `json:"symbol"`
	CompanyName       string     `json:"company_name"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Description       *string    `json:"description,omitempty"`
	MarketCap         *int64     `json:"market_cap,omitempty"`
	PrimaryExchange   *string    `json:"primary_exchange,omitempty"`
	Type              *string    `json:"type,omitempty"`
	CurrencyName      *string    `json:"currency_name,omitempty"`
	CIK               *string    `json:"cik,omitempty"`
	CompositeFIGI     *string    `json:"composite_figi,omitempty"`
	ShareClassFIGI    *string    `json:"share_class_figi,omitempty"`
	OutstandingShares *int64     `json:"outstanding_shares,omitempty"`
	EPS               *float64   `json:"eps,omitempty"`
	HomepageURL       *string    `json:"homepage_url,omitempty"`
	TotalEmployees    *int       `json:"total_employees,omitempty"`
	ListDate          *time.Time `json:"list_date,omitempty"`
	Locale            *string    `json:"locale,omitempty"`
	SICCode           *string    `json:"sic_code,omitempty"`
	SICDescription    *string    `json:"sic_description,omitempty"`
}

// FromEntity converts the domain model into a response.
func FromEntity(s entity.Stock) StockRes {
	return StockRes{
		Symbol:            s.Symbol,
		CompanyName:       s.CompanyName,
		UpdatedAt:         s.UpdatedAt,
		Description:       s.Description,
		MarketCap:         s.MarketCap,
		PrimaryExchange:   s.PrimaryExchange,
		Type:              s.Type,
		CurrencyName:      s.CurrencyName,
		CIK:               s.CIK,
		CompositeFIGI:     s.CompositeFIGI,
		ShareClassFIGI:    s.ShareClassFIGI,
		OutstandingShares: s.OutstandingShares,
		EPS:               s.EPS,
		HomepageURL:       s.HomepageURL,
		TotalEmployees:    s.TotalEmployees,
		ListDate:          s.ListDate,
		Locale:            s.Locale,
		SICCode:           s.SICCode,
		SICDescription:    s.SICDescription,
	}
}
