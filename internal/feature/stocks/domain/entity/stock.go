// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock holds the reference metadata for one listed instrument.
// The ticker symbol is the primary key and is stored uppercase. Everything
// beyond symbol, company name and updated_at arrived through additive
// migrations and is therefore nullable.
type Stock struct {
	// Symbol is the ticker symbol, e.g. "AAPL". Immutable once history or
	// collection rows reference it.
	Symbol string `gorm:"column:symbol;primaryKey;size:10"`

	// CompanyName is the issuer's name. For placeholder rows created by
	// history ingestion it equals the symbol until metadata is refreshed.
	CompanyName string `gorm:"column:company_name;size:100;not null"`

	// UpdatedAt records the last metadata refresh.
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`

	Description       *string    `gorm:"column:description;type:text"`
	MarketCap         *int64     `gorm:"column:market_cap"`
	PrimaryExchange   *string    `gorm:"column:primary_exchange;size:100"`
	Type              *string    `gorm:"column:type;size:50"`
	CurrencyName      *string    `gorm:"column:currency_name;size:50"`
	CIK               *string    `gorm:"column:cik;size:50"`
	CompositeFIGI     *string    `gorm:"column:composite_figi;size:50"`
	ShareClassFIGI    *string    `gorm:"column:share_class_figi;size:50"`
	OutstandingShares *int64     `gorm:"column:outstanding_shares"`
	EPS               *float64   `gorm:"column:eps;type:numeric(20,6)"`
	HomepageURL       *string    `gorm:"column:homepage_url;size:255"`
	TotalEmployees    *int       `gorm:"column:total_employees"`
	ListDate          *time.Time `gorm:"column:list_date"`
	Locale            *string    `gorm:"column:locale;size:20"`
	SICCode           *string    `gorm:"column:sic_code;size:20"`
	SICDescription    *string    `gorm:"column:sic_description;size:255"`
}

// TableName maps the entity onto the stock table of the incrementum schema.
func (Stock) TableName() string {
	return "stock"
}
