package adapters

import (
	"context"

	"gorm.io/gorm"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/feature/history/usecase"
	platformdb "incrementum/internal/platform/db"
)

// blacklistPostgres implements the BlacklistRepository interface on gorm.
type blacklistPostgres struct {
	db *gorm.DB
}

var _ usecase.BlacklistRepository = (*blacklistPostgres)(nil)

// NewBlacklistRepository creates a new blacklist repository on the given connection.
func NewBlacklistRepository(db *gorm.DB) *blacklistPostgres {
	return &blacklistPostgres{db: db}
}

// Add stores a new blacklist entry.
func (r *blacklistPostgres) Add(ctx context.Context, e *entity.BlacklistEntry) error {
	return platformdb.Translate(r.db.WithContext(ctx).Create(e).Error)
}

// List returns blacklist entries, filtered by symbol when one is given.
func (r *blacklistPostgres) List(ctx context.Context, symbol string) ([]entity.BlacklistEntry, error) {
	var entries []entity.BlacklistEntry
	q := r.db.WithContext(ctx).Order("time_added DESC")
	if symbol != "" {
		q = q.Where("stock_symbol = ?", symbol)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return entries, nil
}

// Clear removes blacklist entries, filtered by symbol when one is given, and
// returns how many rows were removed.
func (r *blacklistPostgres) Clear(ctx context.Context, symbol string) (int64, error) {
	q := r.db.WithContext(ctx)
	if symbol != "" {
		q = q.Where("stock_symbol = ?", symbol)
	} else {
		q = q.Where("1 = 1")
	}
	res := q.Delete(&entity.BlacklistEntry{})
	if res.Error != nil {
		return 0, platformdb.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
