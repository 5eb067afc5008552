// Package entity defines the domain models for the collections feature.
package entity

import (
	"time"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
	stockentity "incrementum/internal/feature/stocks/domain/entity"
)

// CustomCollection is an account-owned, named grouping of stocks.
type CustomCollection struct {
	ID          uint      `gorm:"primaryKey"`
	AccountID   uint      `gorm:"column:account_id;not null;index"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"column:date;not null"`

	// Account declares the foreign key to the owning account; it is never
	// loaded or serialized.
	Account *accountentity.Account `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps the entity onto the custom_collection table.
func (CustomCollection) TableName() string {
	return "custom_collection"
}

// CustomCollectionStock is the membership join between a collection and a
// stock. A given (collection, symbol) pair appears at most once, enforced by
// a uniqueness constraint rather than application checks.
type CustomCollectionStock struct {
	ID                 uint   `gorm:"primaryKey"`
	CustomCollectionID uint   `gorm:"column:custom_collection_id;not null;uniqueIndex:ccs_collection_symbol,priority:1"`
	StockSymbol        string `gorm:"column:stock_symbol;size:10;not null;uniqueIndex:ccs_collection_symbol,priority:2"`

	// Foreign key declarations; never loaded or serialized.
	Collection *CustomCollection  `gorm:"foreignKey:CustomCollectionID;constraint:OnDelete:RESTRICT" json:"-"`
	Stock      *stockentity.Stock `gorm:"foreignKey:StockSymbol;references:Symbol;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps the entity onto the custom_collection_stock table.
func (CustomCollectionStock) TableName() string {
	return "custom_collection_stock"
}
