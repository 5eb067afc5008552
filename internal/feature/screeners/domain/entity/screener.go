// Package entity defines the domain models for the screeners feature.
package entity

import (
	"time"

	"gorm.io/datatypes"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
)

// Screener is a system-defined, read-only filter over stocks.
type Screener struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName maps the entity onto the screener table.
func (Screener) TableName() string {
	return "screener"
}

// CustomScreener is an account-owned filter. The filter document is
// semi-structured JSON: the store persists it opaquely and never inspects or
// validates its internal shape, since filter shapes vary per screener.
type CustomScreener struct {
	ID          uint           `gorm:"primaryKey"`
	AccountID   uint           `gorm:"column:account_id;not null;index"`
	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null"`
	Filter      datatypes.JSON `gorm:"column:filter;type:jsonb"`

	// Account declares the foreign key to the owning account; it is never
	// loaded or serialized.
	Account *accountentity.Account `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps the entity onto the custom_screener table.
func (CustomScreener) TableName() string {
	return "custom_screener"
}
