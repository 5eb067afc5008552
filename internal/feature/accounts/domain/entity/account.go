// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// Account represents a registered account in the system.
// Phone, email and API key are globally unique; the password is only ever
// persisted as a one-way bcrypt hash.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Name is the display name for the account.
	Name string `gorm:"size:255;not null"`

	// Phone is the account's phone number. Unique across all accounts.
	Phone string `gorm:"size:32;not null;uniqueIndex"`

	// Email is the account's email address. Unique across all accounts.
	Email string `gorm:"size:255;not null;uniqueIndex"`

	// PasswordHash is the bcrypt hash of the account password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:255;not null"`

	// APIKey authenticates machine callers acting for this account.
	// Unique across all accounts.
	APIKey string `gorm:"size:128;not null;uniqueIndex"`

	// AuthProviderID optionally references an external identity provider.
	AuthProviderID *string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName maps the entity onto the account table of the incrementum schema.
func (Account) TableName() string {
	return "account"
}
