package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"incrementum/internal/feature/screeners/domain/entity"
	"incrementum/internal/shared/apperr"
)

// mockScreenerRepository is a function-field mock of ScreenerRepository.
type mockScreenerRepository struct {
	listSystemFn   func(ctx context.Context) ([]entity.Screener, error)
	createCustomFn func(ctx context.Context, s *entity.CustomScreener) error
	listCustomFn   func(ctx context.Context, accountID uint) ([]entity.CustomScreener, error)
	findCustomFn   func(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error)
	updateCustomFn func(ctx context.Context, s *entity.CustomScreener) error
	deleteCustomFn func(ctx context.Context, accountID, id uint) (int64, error)
}

func (m *mockScreenerRepository) ListSystem(ctx context.Context) ([]entity.Screener, error) {
	if m.listSystemFn != nil {
		return m.listSystemFn(ctx)
	}
	return nil, nil
}

func (m *mockScreenerRepository) CreateCustom(ctx context.Context, s *entity.CustomScreener) error {
	if m.createCustomFn != nil {
		return m.createCustomFn(ctx, s)
	}
	return nil
}

func (m *mockScreenerRepository) ListCustom(ctx context.Context, accountID uint) ([]entity.CustomScreener, error) {
	if m.listCustomFn != nil {
		return m.listCustomFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockScreenerRepository) FindCustom(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error) {
	if m.findCustomFn != nil {
		return m.findCustomFn(ctx, accountID, id)
	}
	return nil, apperr.NotFoundf("no screener")
}

func (m *mockScreenerRepository) UpdateCustom(ctx context.Context, s *entity.CustomScreener) error {
	if m.updateCustomFn != nil {
		return m.updateCustomFn(ctx, s)
	}
	return nil
}

func (m *mockScreenerRepository) DeleteCustom(ctx context.Context, accountID, id uint) (int64, error) {
	if m.deleteCustomFn != nil {
		return m.deleteCustomFn(ctx, accountID, id)
	}
	return 0, nil
}

func TestScreenersUsecase_CreateCustom(t *testing.T) {
	t.Run("stores the filter without inspecting it", func(t *testing.T) {
		filter := datatypes.JSON(`{"anything":["goes",1,null]}`)
		var stored *entity.CustomScreener
		repo := &mockScreenerRepository{
			createCustomFn: func(ctx context.Context, s *entity.CustomScreener) error {
				s.ID = 1
				stored = s
				return nil
			},
		}
		uc := NewScreenersUsecase(repo)

		s, err := uc.CreateCustom(context.Background(), 7, "mine", "desc", filter)

		require.NoError(t, err)
		assert.Equal(t, uint(7), s.AccountID)
		assert.Equal(t, string(filter), string(stored.Filter))
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		uc := NewScreenersUsecase(&mockScreenerRepository{})

		_, err := uc.CreateCustom(context.Background(), 7, "   ", "", nil)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("missing account passes through as not found", func(t *testing.T) {
		repo := &mockScreenerRepository{
			createCustomFn: func(ctx context.Context, s *entity.CustomScreener) error {
				return apperr.NotFoundf("account missing")
			},
		}
		uc := NewScreenersUsecase(repo)

		_, err := uc.CreateCustom(context.Background(), 999, "mine", "", nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestScreenersUsecase_UpdateCustom(t *testing.T) {
	t.Run("overwrites fields on the loaded screener", func(t *testing.T) {
		existing := &entity.CustomScreener{ID: 4, AccountID: 7, Name: "before"}
		var updated *entity.CustomScreener
		repo := &mockScreenerRepository{
			findCustomFn: func(ctx context.Context, accountID, id uint) (*entity.CustomScreener, error) {
				return existing, nil
			},
			updateCustomFn: func(ctx context.Context, s *entity.CustomScreener) error {
				updated = s
				return nil
			},
		}
		uc := NewScreenersUsecase(repo)

		s, err := uc.UpdateCustom(context.Background(), 7, 4, "after", "new desc", datatypes.JSON(`{}`))

		require.NoError(t, err)
		assert.Equal(t, "after", s.Name)
		assert.Equal(t, "after", updated.Name)
	})

	t.Run("screener owned by someone else is not found", func(t *testing.T) {
		uc := NewScreenersUsecase(&mockScreenerRepository{})

		_, err := uc.UpdateCustom(context.Background(), 8, 4, "after", "", nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestScreenersUsecase_DeleteCustom(t *testing.T) {
	t.Run("zero rows removed is not found", func(t *testing.T) {
		uc := NewScreenersUsecase(&mockScreenerRepository{})

		err := uc.DeleteCustom(context.Background(), 7, 4)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("one row removed succeeds", func(t *testing.T) {
		repo := &mockScreenerRepository{
			deleteCustomFn: func(ctx context.Context, accountID, id uint) (int64, error) {
				return 1, nil
			},
		}
		uc := NewScreenersUsecase(repo)

		assert.NoError(t, uc.DeleteCustom(context.Background(), 7, 4))
	})
}
