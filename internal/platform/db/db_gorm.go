// Package db opens the gorm database connection used by the whole service.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	chartadapters "kis_backend/internal/feature/chart/adapters"
	symbolentity "kis_backend/internal/feature/symbollist/domain/entity"
	tokenadapters "kis_backend/internal/feature/token/adapters"
)

// OpenDB connects to Postgres when DB_HOST is set, and falls back to a local
// SQLite file otherwise so the service runs without any infrastructure.
// Connection attempts retry for up to 60 seconds to ride out container
// start-up ordering.
func OpenDB() *gorm.DB {
	dialector := selectDialector()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&chartadapters.BarModel{},
			&tokenadapters.CredentialModel{},
			&symbolentity.Symbol{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

func selectDialector() gorm.Dialector {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "./stock.db"
		}
		return gsqlite.Open(path)
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Seoul",
		host, port,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
	)
	return gpostgres.Open(dsn)
}
