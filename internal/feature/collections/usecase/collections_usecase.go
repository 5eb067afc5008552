// Package usecase implements the business logic for collection operations.
package usecase

import (
	"context"
	"strings"
	"time"

	"incrementum/internal/feature/collections/domain/entity"
	"incrementum/internal/shared/apperr"
)

// CollectionRepository abstracts the persistence layer for collections and
// their stock memberships. Following Go convention: interfaces are defined by
// the consumer (usecase), not the provider (adapters).
type CollectionRepository interface {
	// Create stores a new collection and its initial memberships in one
	// transaction. Returns a not-found error when the account or any symbol
	// does not exist.
	Create(ctx context.Context, c *entity.CustomCollection, symbols []string) error

	// FindByID returns one collection owned by the account.
	FindByID(ctx context.Context, accountID, id uint) (*entity.CustomCollection, error)

	// ListByAccount returns the collections owned by the account.
	ListByAccount(ctx context.Context, accountID uint) ([]entity.CustomCollection, error)

	// ListMembers returns the symbols in a collection, ascending.
	ListMembers(ctx context.Context, collectionID uint) ([]string, error)

	// AddStock adds a symbol to a collection. Adding a symbol that is
	// already a member is a no-op.
	AddStock(ctx context.Context, collectionID uint, symbol string) error

	// RemoveStock removes a symbol from a collection. Returns the number of
	// memberships removed.
	RemoveStock(ctx context.Context, collectionID uint, symbol string) (int64, error)

	// Delete removes a collection owned by the account together with its
	// memberships, in one transaction. Returns the number of collections
	// removed.
	Delete(ctx context.Context, accountID, id uint) (int64, error)
}

// CollectionWithMembers pairs a collection with its member symbols.
type CollectionWithMembers struct {
	Collection entity.CustomCollection `json:"collection"`
	Symbols    []string                `json:"symbols"`
}

// CollectionsUsecase provides business logic for account-owned stock
// collections.
type CollectionsUsecase struct {
	collections CollectionRepository
}

// NewCollectionsUsecase creates a new CollectionsUsecase with the given repository.
func NewCollectionsUsecase(collections CollectionRepository) *CollectionsUsecase {
	return &CollectionsUsecase{collections: collections}
}

func normalizeSymbols(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	seen := map[string]struct{}{}
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			return nil, apperr.Validationf("symbol must not be empty")
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// Create stores a new collection. Initial symbols, when given, become members
// in the same transaction so a failed membership leaves no half-built
// collection behind.
func (u *CollectionsUsecase) Create(ctx context.Context, accountID uint, name, description string, date time.Time, symbols []string) (*entity.CustomCollection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("name must not be empty")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	normalized, err := normalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}
	c := &entity.CustomCollection{
		AccountID:   accountID,
		Name:        name,
		Description: description,
		Date:        date,
	}
	if err := u.collections.Create(ctx, c, normalized); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a collection owned by the account along with its member symbols.
func (u *CollectionsUsecase) Get(ctx context.Context, accountID, id uint) (*CollectionWithMembers, error) {
	c, err := u.collections.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	symbols, err := u.collections.ListMembers(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &CollectionWithMembers{Collection: *c, Symbols: symbols}, nil
}

// ListByAccount returns the collections the account owns.
func (u *CollectionsUsecase) ListByAccount(ctx context.Context, accountID uint) ([]entity.CustomCollection, error) {
	return u.collections.ListByAccount(ctx, accountID)
}

// AddStock adds a symbol to a collection the account owns. Adding a symbol
// that is already a member succeeds without creating a second membership.
func (u *CollectionsUsecase) AddStock(ctx context.Context, accountID, collectionID uint, symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return apperr.Validationf("symbol must not be empty")
	}
	if _, err := u.collections.FindByID(ctx, accountID, collectionID); err != nil {
		return err
	}
	return u.collections.AddStock(ctx, collectionID, symbol)
}

// RemoveStock removes a symbol from a collection the account owns.
func (u *CollectionsUsecase) RemoveStock(ctx context.Context, accountID, collectionID uint, symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return apperr.Validationf("symbol must not be empty")
	}
	if _, err := u.collections.FindByID(ctx, accountID, collectionID); err != nil {
		return err
	}
	n, err := u.collections.RemoveStock(ctx, collectionID, symbol)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf("symbol %s not in collection %d", symbol, collectionID)
	}
	return nil
}

// Delete removes a collection the account owns together with its memberships.
func (u *CollectionsUsecase) Delete(ctx context.Context, accountID, id uint) error {
	n, err := u.collections.Delete(ctx, accountID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf("collection %d not found", id)
	}
	return nil
}
