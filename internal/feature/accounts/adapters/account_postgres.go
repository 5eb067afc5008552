// Package adapters provides the repository implementations for the accounts feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/feature/accounts/usecase"
	platformdb "incrementum/internal/platform/db"
)

// accountPostgres implements the AccountRepository interface on gorm.
type accountPostgres struct {
	db *gorm.DB
}

var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountRepository creates a new account repository on the given connection.
func NewAccountRepository(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// Create inserts the account. Duplicate phone, email or API key surfaces as a
// conflict error via the platform error translation.
func (r *accountPostgres) Create(ctx context.Context, a *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return platformdb.Translate(err)
	}
	return nil
}

// FindByEmail returns the account with the given email.
func (r *accountPostgres) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return &a, nil
}

// FindByID returns the account with the given id.
func (r *accountPostgres) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return &a, nil
}

// FindByAPIKey returns the account owning the given API key.
func (r *accountPostgres) FindByAPIKey(ctx context.Context, key string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("api_key = ?", key).First(&a).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return &a, nil
}
