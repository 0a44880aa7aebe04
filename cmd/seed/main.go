package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/config"
	"github.com/robotopup/backend/internal/infrastructure/database"
	"github.com/robotopup/backend/internal/logger"
	"github.com/robotopup/backend/internal/usecase"
)

// Resets the storefront catalog to the default category and product set.
// Destructive: existing catalog rows are replaced.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)
	catalog := usecase.NewProductService(repos.Product, repos.Category, zapLogger)

	categories, products, err := catalog.SeedCatalog(context.Background())
	if err != nil {
		zapLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	zapLogger.Info("Catalog seed finished",
		zap.Int("categories", categories),
		zap.Int("products", products))
}
