// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	historyadapters "incrementum/internal/feature/history/adapters"
	historyusecase "incrementum/internal/feature/history/usecase"
	"incrementum/internal/platform/cache"
)

// historyCacheTTL bounds how stale a cached range or latest-row answer may be.
const historyCacheTTL = 5 * time.Minute

// NewBarRepository creates the BarRepository implementation. When Redis is
// available the database repository is wrapped with a read-through cache;
// otherwise queries go straight to the database.
func NewBarRepository(rdb *redis.Client, db *gorm.DB) historyusecase.BarRepository {
	repo := historyadapters.NewBarRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingBarRepository(rdb, historyCacheTTL, repo, "bars")
}
