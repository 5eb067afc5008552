// Package usecase implements the business logic for stock metadata operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"incrementum/internal/feature/stocks/domain/entity"
	"incrementum/internal/shared/apperr"
)

const (
	// DefaultListLimit is the page size used when the caller does not set one.
	DefaultListLimit = 100
	// MaxListLimit caps a single listing page.
	MaxListLimit = 1000
)

// StockRepository abstracts the persistence layer for stock metadata.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type StockRepository interface {
	// Upsert inserts the stock or updates the metadata of the existing row.
	Upsert(ctx context.Context, s *entity.Stock) error

	// FindBySymbol returns the stock with the given symbol, or a not-found error.
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)

	// List returns a page of stocks ordered by symbol.
	List(ctx context.Context, limit, offset int) ([]entity.Stock, error)

	// ListSymbols returns every known symbol ordered ascending.
	ListSymbols(ctx context.Context) ([]string, error)
}

// StocksUsecase provides business logic for stock metadata operations.
type StocksUsecase struct {
	stocks StockRepository
}

// NewStocksUsecase creates a new StocksUsecase with the given repository.
func NewStocksUsecase(stocks StockRepository) *StocksUsecase {
	return &StocksUsecase{stocks: stocks}
}

// Upsert normalizes and validates the stock, then inserts it or refreshes the
// metadata of the existing row. UpdatedAt is always set to the current time.
func (u *StocksUsecase) Upsert(ctx context.Context, s entity.Stock) (*entity.Stock, error) {
	s.Symbol = strings.ToUpper(strings.TrimSpace(s.Symbol))
	if s.Symbol == "" {
		return nil, apperr.Validationf("symbol must not be empty")
	}
	if s.CompanyName == "" {
		// Placeholder rows carry the symbol as their name until metadata
		// is refreshed by an ingestion caller.
		s.CompanyName = s.Symbol
	}
	if s.MarketCap != nil && *s.MarketCap < 0 {
		return nil, apperr.Validationf("market_cap must not be negative")
	}
	if s.OutstandingShares != nil && *s.OutstandingShares < 0 {
		return nil, apperr.Validationf("outstanding_shares must not be negative")
	}
	if s.TotalEmployees != nil && *s.TotalEmployees < 0 {
		return nil, apperr.Validationf("total_employees must not be negative")
	}
	s.UpdatedAt = time.Now().UTC()

	if err := u.stocks.Upsert(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns one stock by symbol.
func (u *StocksUsecase) Get(ctx context.Context, symbol string) (*entity.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperr.Validationf("symbol must not be empty")
	}
	return u.stocks.FindBySymbol(ctx, symbol)
}

// List returns a page of stocks ordered by symbol.
func (u *StocksUsecase) List(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return u.stocks.List(ctx, limit, offset)
}

// ListSymbols returns every known symbol. Used by the worker queue to build
// its allocation rounds.
func (u *StocksUsecase) ListSymbols(ctx context.Context) ([]string, error) {
	return u.stocks.ListSymbols(ctx)
}
