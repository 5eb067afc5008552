package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountentity "incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/feature/collections/domain/entity"
	stockentity "incrementum/internal/feature/stocks/domain/entity"
	"incrementum/internal/platform/schema"
	"incrementum/internal/shared/apperr"
)

// setupTestDB prepares an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, schema.EnsureSchema(db), "failed to migrate schema")

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	a := accountentity.Account{
		Name:         "Owner",
		Phone:        "+1555" + email[:4],
		Email:        email,
		PasswordHash: "hash",
		APIKey:       "key-" + email,
	}
	require.NoError(t, db.Create(&a).Error)
	return a.ID
}

func seedStocks(t *testing.T, db *gorm.DB, symbols ...string) {
	t.Helper()
	for _, sym := range symbols {
		require.NoError(t, db.Create(&stockentity.Stock{
			Symbol: sym, CompanyName: sym, UpdatedAt: time.Now().UTC(),
		}).Error)
	}
}

func memberCount(t *testing.T, db *gorm.DB, collectionID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entity.CustomCollectionStock{}).
		Where("custom_collection_id = ?", collectionID).Count(&count).Error)
	return count
}

func TestCollectionPostgres_Create(t *testing.T) {
	now := time.Now().UTC()

	t.Run("with initial symbols", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCollectionRepository(db)
		acct := seedAccount(t, db, "a@example.com")
		seedStocks(t, db, "AAPL", "MSFT")

		c := &entity.CustomCollection{AccountID: acct, Name: "tech", Date: now}
		require.NoError(t, repo.Create(context.Background(), c, []string{"AAPL", "MSFT"}))
		require.NotZero(t, c.ID)

		symbols, err := repo.ListMembers(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
	})

	t.Run("unknown account rolls back", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCollectionRepository(db)

		c := &entity.CustomCollection{AccountID: 999, Name: "orphan", Date: now}
		err := repo.Create(context.Background(), c, nil)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("unknown symbol rolls back the collection too", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCollectionRepository(db)
		acct := seedAccount(t, db, "b@example.com")
		seedStocks(t, db, "AAPL")

		c := &entity.CustomCollection{AccountID: acct, Name: "broken", Date: now}
		err := repo.Create(context.Background(), c, []string{"AAPL", "NOPE"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&entity.CustomCollection{}).Count(&count).Error)
		assert.Zero(t, count, "failed create must leave no collection behind")
	})
}

func TestCollectionPostgres_AddStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepository(db)
	acct := seedAccount(t, db, "c@example.com")
	seedStocks(t, db, "AAPL")

	c := &entity.CustomCollection{AccountID: acct, Name: "watch", Date: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), c, nil))

	t.Run("adds a membership", func(t *testing.T) {
		require.NoError(t, repo.AddStock(context.Background(), c.ID, "AAPL"))
		assert.Equal(t, int64(1), memberCount(t, db, c.ID))
	})

	t.Run("second add of the same symbol is a no-op", func(t *testing.T) {
		require.NoError(t, repo.AddStock(context.Background(), c.ID, "AAPL"))
		assert.Equal(t, int64(1), memberCount(t, db, c.ID), "membership must stay unique")
	})

	t.Run("unknown symbol is not found", func(t *testing.T) {
		err := repo.AddStock(context.Background(), c.ID, "NOPE")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCollectionPostgres_RemoveStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepository(db)
	acct := seedAccount(t, db, "d@example.com")
	seedStocks(t, db, "AAPL")

	c := &entity.CustomCollection{AccountID: acct, Name: "watch", Date: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), c, []string{"AAPL"}))

	removed, err := repo.RemoveStock(context.Background(), c.ID, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Removing a membership never removes the stock itself.
	var s stockentity.Stock
	assert.NoError(t, db.First(&s, "symbol = ?", "AAPL").Error)

	removed, err = repo.RemoveStock(context.Background(), c.ID, "AAPL")
	require.NoError(t, err)
	assert.Zero(t, removed, "second remove finds nothing")
}

func TestCollectionPostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepository(db)
	acct := seedAccount(t, db, "e@example.com")
	other := seedAccount(t, db, "f@example.com")
	seedStocks(t, db, "AAPL", "MSFT")

	c := &entity.CustomCollection{AccountID: acct, Name: "doomed", Date: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), c, []string{"AAPL", "MSFT"}))

	t.Run("other account cannot delete, memberships stay", func(t *testing.T) {
		removed, err := repo.Delete(context.Background(), other, c.ID)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Equal(t, int64(2), memberCount(t, db, c.ID))
	})

	t.Run("owner delete removes memberships with the collection", func(t *testing.T) {
		removed, err := repo.Delete(context.Background(), acct, c.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
		assert.Zero(t, memberCount(t, db, c.ID))

		// The stocks themselves survive.
		var count int64
		require.NoError(t, db.Model(&stockentity.Stock{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}

func TestCollectionPostgres_ListByAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepository(db)
	acct := seedAccount(t, db, "g@example.com")
	other := seedAccount(t, db, "h@example.com")

	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(),
		&entity.CustomCollection{AccountID: acct, Name: "old", Date: now.AddDate(0, -1, 0)}, nil))
	require.NoError(t, repo.Create(context.Background(),
		&entity.CustomCollection{AccountID: acct, Name: "new", Date: now}, nil))
	require.NoError(t, repo.Create(context.Background(),
		&entity.CustomCollection{AccountID: other, Name: "theirs", Date: now}, nil))

	list, err := repo.ListByAccount(context.Background(), acct)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Name, "newest first")
}
