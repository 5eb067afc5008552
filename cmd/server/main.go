package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"incrementum/internal/app/di"
	"incrementum/internal/app/router"
	accountadapters "incrementum/internal/feature/accounts/adapters"
	accounthandler "incrementum/internal/feature/accounts/transport/handler"
	accountusecase "incrementum/internal/feature/accounts/usecase"
	collectionadapters "incrementum/internal/feature/collections/adapters"
	collectionhandler "incrementum/internal/feature/collections/transport/handler"
	collectionusecase "incrementum/internal/feature/collections/usecase"
	historyadapters "incrementum/internal/feature/history/adapters"
	historyhandler "incrementum/internal/feature/history/transport/handler"
	historyusecase "incrementum/internal/feature/history/usecase"
	queuehandler "incrementum/internal/feature/queue/transport/handler"
	queueusecase "incrementum/internal/feature/queue/usecase"
	screeneradapters "incrementum/internal/feature/screeners/adapters"
	screenerhandler "incrementum/internal/feature/screeners/transport/handler"
	screenerusecase "incrementum/internal/feature/screeners/usecase"
	stockadapters "incrementum/internal/feature/stocks/adapters"
	stockhandler "incrementum/internal/feature/stocks/transport/handler"
	stockusecase "incrementum/internal/feature/stocks/usecase"
	platformdb "incrementum/internal/platform/db"
	jwtmw "incrementum/internal/platform/jwt"
	platformredis "incrementum/internal/platform/redis"
	"incrementum/internal/platform/schema"
	"incrementum/internal/shared/ratelimiter"
)

const (
	tokenExpiration = 24 * time.Hour

	// queueRefreshLimit caps queue rebuilds so a looping worker cannot hammer
	// the symbol listing.
	queueRefreshLimit    = 5
	queueRefreshInterval = time.Minute
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	db := platformdb.OpenDB()
	if err := schema.EnsureSchema(db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	accountRepo := accountadapters.NewAccountRepository(db)
	stockRepo := stockadapters.NewStockRepository(db)
	barRepo := historyadapters.NewBarRepository(db)
	cachedBarRepo := di.NewBarRepository(rdb, db)
	blacklistRepo := historyadapters.NewBlacklistRepository(db)
	screenerRepo := screeneradapters.NewScreenerRepository(db)
	collectionRepo := collectionadapters.NewCollectionRepository(db)

	// Usecase
	accountsUC := accountusecase.NewAccountsUsecase(accountRepo, jwtmw.NewGenerator(secret, tokenExpiration))
	stocksUC := stockusecase.NewStocksUsecase(stockRepo)
	historyUC := historyusecase.NewHistoryUsecase(cachedBarRepo)
	gapsUC := historyusecase.NewGapDetector(barRepo, barRepo, blacklistRepo, historyusecase.DefaultBlacklistExpiration)
	screenersUC := screenerusecase.NewScreenersUsecase(screenerRepo)
	collectionsUC := collectionusecase.NewCollectionsUsecase(collectionRepo)
	queueSvc := queueusecase.NewStockQueueService(stocksUC,
		ratelimiter.NewRateLimiter(queueRefreshLimit, queueRefreshInterval))

	// Handler
	handlers := router.Handlers{
		Accounts:    accounthandler.NewAccountHandler(accountsUC),
		Stocks:      stockhandler.NewStockHandler(stocksUC),
		History:     historyhandler.NewHistoryHandler(historyUC),
		Gaps:        historyhandler.NewGapHandler(gapsUC),
		Screeners:   screenerhandler.NewScreenerHandler(screenersUC),
		Collections: collectionhandler.NewCollectionHandler(collectionsUC),
		Queue:       queuehandler.NewQueueHandler(queueSvc),
	}

	r := router.NewRouter(handlers, accountsUC)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
