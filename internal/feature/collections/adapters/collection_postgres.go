// Package adapters provides the repository implementations for the collections feature.
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/feature/collections/domain/entity"
	"incrementum/internal/feature/collections/usecase"
	stockentity "incrementum/internal/feature/stocks/domain/entity"
	"incrementum/internal/shared/apperr"
	platformdb "incrementum/internal/platform/db"
)

// collectionPostgres implements the CollectionRepository interface on gorm.
type collectionPostgres struct {
	db *gorm.DB
}

var _ usecase.CollectionRepository = (*collectionPostgres)(nil)

// NewCollectionRepository creates a new collection repository on the given connection.
func NewCollectionRepository(db *gorm.DB) *collectionPostgres {
	return &collectionPostgres{db: db}
}

func requireStock(tx *gorm.DB, symbol string) error {
	var count int64
	if err := tx.Model(&stockentity.Stock{}).Where("symbol = ?", symbol).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFoundf("stock %s not found", symbol)
	}
	return nil
}

// Create stores the collection and its initial memberships in one
// transaction. An unknown account or symbol rolls everything back.
func (r *collectionPostgres) Create(ctx context.Context, c *entity.CustomCollection, symbols []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&accountentity.Account{}).Where("id = ?", c.AccountID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFoundf("account %d not found", c.AccountID)
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for _, symbol := range symbols {
			if err := requireStock(tx, symbol); err != nil {
				return err
			}
			member := entity.CustomCollectionStock{
				CustomCollectionID: c.ID,
				StockSymbol:        symbol,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return platformdb.Translate(err)
}

// FindByID returns one collection owned by the account.
func (r *collectionPostgres) FindByID(ctx context.Context, accountID, id uint) (*entity.CustomCollection, error) {
	var c entity.CustomCollection
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&c).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return &c, nil
}

// ListByAccount returns the account's collections, newest first.
func (r *collectionPostgres) ListByAccount(ctx context.Context, accountID uint) ([]entity.CustomCollection, error) {
	var collections []entity.CustomCollection
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC").
		Find(&collections).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return collections, nil
}

// ListMembers returns the member symbols of a collection, ascending.
func (r *collectionPostgres) ListMembers(ctx context.Context, collectionID uint) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.CustomCollectionStock{}).
		Where("custom_collection_id = ?", collectionID).
		Order("stock_symbol ASC").
		Pluck("stock_symbol", &symbols).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return symbols, nil
}

// AddStock adds a membership. A symbol already in the collection is left
// alone, so the operation is safe to retry.
func (r *collectionPostgres) AddStock(ctx context.Context, collectionID uint, symbol string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireStock(tx, symbol); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "custom_collection_id"}, {Name: "stock_symbol"}},
			DoNothing: true,
		}).Create(&entity.CustomCollectionStock{
			CustomCollectionID: collectionID,
			StockSymbol:        symbol,
		}).Error
	})
	return platformdb.Translate(err)
}

// RemoveStock removes a membership and reports how many rows were removed.
func (r *collectionPostgres) RemoveStock(ctx context.Context, collectionID uint, symbol string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("custom_collection_id = ? AND stock_symbol = ?", collectionID, symbol).
		Delete(&entity.CustomCollectionStock{})
	if res.Error != nil {
		return 0, platformdb.Translate(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the collection and its memberships in one transaction.
func (r *collectionPostgres) Delete(ctx context.Context, accountID, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.CustomCollection{}).
			Where("id = ? AND account_id = ?", id, accountID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if err := tx.Where("custom_collection_id = ?", id).
			Delete(&entity.CustomCollectionStock{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND account_id = ?", id, accountID).
			Delete(&entity.CustomCollection{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, platformdb.Translate(err)
	}
	return removed, nil
}
