// Package usecase implements the business logic for screener operations.
package usecase

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"incrementum/internal/feature/screeners/domain/entity"
	"incrementum/internal/shared/apperr"
)

// ScreenerRepository abstracts the persistence layer for screeners.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ScreenerRepository interface {
	// ListSystem returns the built-in screeners ordered by name.
	ListSystem(ctx context.Context) ([]entity.Screener, error)

	// CreateCustom stores a new account-owned screener. Returns a not-found
	// error when the account does not exist.
	CreateCustom(ctx context.Context, s *entity.CustomScreener) error

	// ListCustom returns the screeners owned by the account, newest first.
	ListCustom(ctx context.Context, accountID uint) ([]entity.CustomScreener, error)

	// FindCustom returns one screener owned by the account.
	FindCustom(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error)

	// UpdateCustom overwrites the name, description and filter of a screener
	// owned by the account.
	UpdateCustom(ctx context.Context, s *entity.CustomScreener) error

	// DeleteCustom removes one screener owned by the account. Returns the
	// number of rows removed.
	DeleteCustom(ctx context.Context, accountID, id uint) (int64, error)
}

// ScreenersUsecase provides business logic for system and custom screeners.
// Filter documents are stored opaquely: the store persists and returns them
// without interpreting their contents.
type ScreenersUsecase struct {
	screeners ScreenerRepository
}

// NewScreenersUsecase creates a new ScreenersUsecase with the given repository.
func NewScreenersUsecase(screeners ScreenerRepository) *ScreenersUsecase {
	return &ScreenersUsecase{screeners: screeners}
}

// ListSystem returns the built-in screeners.
func (u *ScreenersUsecase) ListSystem(ctx context.Context) ([]entity.Screener, error) {
	return u.screeners.ListSystem(ctx)
}

// CreateCustom stores a new custom screener for the account.
func (u *ScreenersUsecase) CreateCustom(ctx context.Context, accountID uint, name, description string, filter datatypes.JSON) (*entity.CustomScreener, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("name must not be empty")
	}
	s := &entity.CustomScreener{
		AccountID:   accountID,
		Name:        name,
		Description: description,
		Filter:      filter,
	}
	if err := u.screeners.CreateCustom(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListCustom returns the custom screeners owned by the account.
func (u *ScreenersUsecase) ListCustom(ctx context.Context, accountID uint) ([]entity.CustomScreener, error) {
	return u.screeners.ListCustom(ctx, accountID)
}

// GetCustom returns one custom screener owned by the account.
func (u *ScreenersUsecase) GetCustom(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error) {
	return u.screeners.FindCustom(ctx, accountID, id)
}

// UpdateCustom overwrites the name, description and filter of a screener the
// account owns.
func (u *ScreenersUsecase) UpdateCustom(ctx context.Context, accountID, id uint, name, description string, filter datatypes.JSON) (*entity.CustomScreener, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("name must not be empty")
	}
	s, err := u.screeners.FindCustom(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	s.Name = name
	s.Description = description
	s.Filter = filter
	if err := u.screeners.UpdateCustom(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteCustom removes a screener the account owns.
func (u *ScreenersUsecase) DeleteCustom(ctx context.Context, accountID, id uint) error {
	n, err := u.screeners.DeleteCustom(ctx, accountID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf("screener %d not found", id)
	}
	return nil
}
