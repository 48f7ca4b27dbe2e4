// Command ingest refreshes the cached price history for every active symbol.
// It is meant to run after the market close, so interactive requests the next
// morning are served from the database without touching the upstream API.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"kis_backend/internal/app/di"
	chartadapters "kis_backend/internal/feature/chart/adapters"
	chartentity "kis_backend/internal/feature/chart/domain/entity"
	chartusecase "kis_backend/internal/feature/chart/usecase"
	symbollistadapters "kis_backend/internal/feature/symbollist/adapters"
	tokenusecase "kis_backend/internal/feature/token/usecase"
	infradb "kis_backend/internal/platform/db"
	"kis_backend/internal/shared/ratelimiter"
)

func main() {
	_ = godotenv.Load()

	db := infradb.OpenDB()
	kisClients := di.NewKISClients()

	barRepo := chartadapters.NewBarRepository(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	tokenUC := tokenusecase.NewTokenUsecase(di.NewCredentialStore(db), kisClients.Auth)
	syncUC := chartusecase.NewSyncUsecase(barRepo, kisClients.Market, tokenUC, chartusecase.DefaultSyncConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	symbols, err := symbolRepo.ListActiveCodes(ctx)
	if err != nil {
		log.Fatal("failed to load symbols:", err)
	}

	// The KIS API allows a small number of calls per second per app key.
	// Each sync can spend many calls during a backfill, so throttle at the
	// symbol level rather than per call.
	limiter := ratelimiter.NewRateLimiter(15, time.Minute)

	intervals := []chartentity.Interval{
		chartentity.IntervalDay,
		chartentity.IntervalWeek,
		chartentity.IntervalMonth,
	}

	var failed int
	for _, code := range symbols {
		for _, interval := range intervals {
			limiter.WaitIfNeeded()
			if _, err := syncUC.Sync(ctx, code, interval, chartusecase.FullyCached); err != nil {
				log.Printf("sync failed: symbol=%s interval=%s err=%v", code, interval, err)
				failed++
			}
		}
	}

	if failed > 0 {
		log.Fatalf("ingest finished with %d failures", failed)
	}
	log.Println("ingest ok")
}
