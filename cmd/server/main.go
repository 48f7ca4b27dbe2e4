package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"kis_backend/internal/app/di"
	"kis_backend/internal/app/router"
	chartadapters "kis_backend/internal/feature/chart/adapters"
	charthandler "kis_backend/internal/feature/chart/transport/handler"
	chartusecase "kis_backend/internal/feature/chart/usecase"
	indicatorhandler "kis_backend/internal/feature/indicator/transport/handler"
	indicatorusecase "kis_backend/internal/feature/indicator/usecase"
	quotehandler "kis_backend/internal/feature/quote/transport/handler"
	quoteusecase "kis_backend/internal/feature/quote/usecase"
	symbollistadapters "kis_backend/internal/feature/symbollist/adapters"
	symbollisthandler "kis_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "kis_backend/internal/feature/symbollist/usecase"
	tokenhandler "kis_backend/internal/feature/token/transport/handler"
	tokenusecase "kis_backend/internal/feature/token/usecase"
	"kis_backend/internal/platform/cache"
	infradb "kis_backend/internal/platform/db"
	infraredis "kis_backend/internal/platform/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Upstream clients
	kisClients := di.NewKISClients()

	// Repository
	barRepo := chartadapters.NewBarRepository(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	credStore := di.NewCredentialStore(db)

	// Wrap the bar store with the Redis cache, expiring after the daily close
	ttl := cache.TimeUntilNext6PMKST()
	cachedBarRepo := cache.NewCachingBarRepository(rdb, ttl, barRepo, "bars")

	// Usecase
	tokenUC := tokenusecase.NewTokenUsecase(credStore, kisClients.Auth)
	syncUC := chartusecase.NewSyncUsecase(cachedBarRepo, kisClients.Market, tokenUC, chartusecase.DefaultSyncConfig())
	indicatorUC := indicatorusecase.NewIndicatorUsecase(cachedBarRepo)
	quoteUC := quoteusecase.NewQuoteUsecase(kisClients.Quote, tokenUC)
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)

	// Handler
	tokenH := tokenhandler.NewTokenHandler(tokenUC)
	chartH := charthandler.NewChartHandler(syncUC)
	indicatorH := indicatorhandler.NewIndicatorHandler(indicatorUC)
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	r := router.NewRouter(tokenH, chartH, indicatorH, quoteH, symbolH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
