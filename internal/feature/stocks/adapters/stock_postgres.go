// Package adapters provides the repository implementations for the stocks feature.
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"incrementum/internal/feature/stocks/domain/entity"
	"incrementum/internal/feature/stocks/usecase"
	platformdb "incrementum/internal/platform/db"
)

// stockPostgres implements the StockRepository interface on gorm.
type stockPostgres struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockPostgres)(nil)

// NewStockRepository creates a new stock repository on the given connection.
func NewStockRepository(db *gorm.DB) *stockPostgres {
	return &stockPostgres{db: db}
}

// Upsert inserts the stock or, when the symbol exists, overwrites only the
// columns the caller supplied. Omitted metadata keeps its stored value, and
// the symbol itself is never rewritten, so rows referenced by history or
// collections keep their identity.
func (r *stockPostgres) Upsert(ctx context.Context, s *entity.Stock) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns(suppliedColumns(s)),
	}).Create(s).Error
	return platformdb.Translate(err)
}

// suppliedColumns lists the columns an upsert may overwrite: company_name and
// updated_at always, plus each metadata field the caller actually set.
func suppliedColumns(s *entity.Stock) []string {
	cols := []string{"company_name", "updated_at"}
	optional := []struct {
		column string
		set    bool
	}{
		{"description", s.Description != nil},
		{"market_cap", s.MarketCap != nil},
		{"primary_exchange", s.PrimaryExchange != nil},
		{"type", s.Type != nil},
		{"currency_name", s.CurrencyName != nil},
		{"cik", s.CIK != nil},
		{"composite_figi", s.CompositeFIGI != nil},
		{"share_class_figi", s.ShareClassFIGI != nil},
		{"outstanding_shares", s.OutstandingShares != nil},
		{"eps", s.EPS != nil},
		{"homepage_url", s.HomepageURL != nil},
		{"total_employees", s.TotalEmployees != nil},
		{"list_date", s.ListDate != nil},
		{"locale", s.Locale != nil},
		{"sic_code", s.SICCode != nil},
		{"sic_description", s.SICDescription != nil},
	}
	for _, o := range optional {
		if o.set {
			cols = append(cols, o.column)
		}
	}
	return cols
}

// FindBySymbol returns the stock with the given symbol.
func (r *stockPostgres) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&s).Error; err != nil {
		return nil, platformdb.Translate(err)
	}
	return &s, nil
}

// List returns a page of stocks ordered by symbol.
func (r *stockPostgres) List(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Limit(limit).
		Offset(offset).
		Find(&stocks).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return stocks, nil
}

// ListSymbols returns every known symbol ordered ascending.
func (r *stockPostgres) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, platformdb.Translate(err)
	}
	return symbols, nil
}
