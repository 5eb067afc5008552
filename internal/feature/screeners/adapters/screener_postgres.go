// Package adapters provides the repository implementations for the screeners feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/feature/screeners/domain/entity"
	"incrementum/internal/feature/screeners/usecase"
	"incrementum/internal/shared/apperr"
	platformdb "incrementum/internal/platform/db"
)

// screenerPostgres implements the ScreenerRepository interface on gorm.
type screenerPostgres struct {
	db *gorm.DB
}

var _ usecase.ScreenerRepository = (*screenerPostgres)(nil)

// NewScreenerRepository creates a new screener repository on the given connection.
func NewScreenerRepository(db *gorm.DB) *screenerPostgres {
	return &screenerPostgres{db: db}
}

// ListSystem returns the built-in screeners ordered by name.
func (r *screenerPostgres) ListSystem(ctx context.Context) ([]entity.Screener, error) {
	var screeners []entity.Screener
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&screeners).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return screeners, nil
}

// CreateCustom stores a new custom screener after checking that the owning
// account exists. The check and insert share a transaction so the foreign key
// cannot silently dangle on engines without enforcement.
func (r *screenerPostgres) CreateCustom(ctx context.Context, s *entity.CustomScreener) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&accountentity.Account{}).Where("id = ?", s.AccountID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFoundf("account %d not found", s.AccountID)
		}
		return tx.Create(s).Error
	})
	return platformdb.Translate(err)
}

// ListCustom returns the account's custom screeners, newest first.
func (r *screenerPostgres) ListCustom(ctx context.Context, accountID uint) ([]entity.CustomScreener, error) {
	var screeners []entity.CustomScreener
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&screeners).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return screeners, nil
}

// FindCustom returns one screener owned by the account.
func (r *screenerPostgres) FindCustom(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error) {
	var s entity.CustomScreener
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&s).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return &s, nil
}

// UpdateCustom overwrites the mutable columns of a screener.
func (r *screenerPostgres) UpdateCustom(ctx context.Context, s *entity.CustomScreener) error {
	err := r.db.WithContext(ctx).
		Model(&entity.CustomScreener{}).
		Where("id = ? AND account_id = ?", s.ID, s.AccountID).
		Updates(map[string]any{
			"name":        s.Name,
			"description": s.Description,
			"filter":      s.Filter,
		}).Error
	return platformdb.Translate(err)
}

// DeleteCustom removes one screener owned by the account.
func (r *screenerPostgres) DeleteCustom(ctx context.Context, accountID, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&entity.CustomScreener{})
	if res.Error != nil {
		return 0, platformdb.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
